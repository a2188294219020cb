package conflicts

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	HasOverlap(ctx context.Context, q domain.OverlapQuery) (bool, error)
	HasOverlapForClient(ctx context.Context, q domain.ClientOverlapQuery) (bool, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
