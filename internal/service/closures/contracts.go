package closures

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Repository интерфейс репозитория закрытий
type Repository interface {
	GetByCompanyAndDate(ctx context.Context, companyID uuid.UUID, date time.Time) ([]domain.Closure, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
