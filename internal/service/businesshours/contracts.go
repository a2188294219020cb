package businesshours

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Repository интерфейс репозитория рабочих часов
type Repository interface {
	GetByCompanyAndDay(ctx context.Context, companyID uuid.UUID, dayOfWeek int) ([]domain.BusinessHour, error)
	GetByCompany(ctx context.Context, companyID uuid.UUID) ([]domain.BusinessHour, error)
}

// HoursCache кэш интервалов по (компания, день недели)
type HoursCache interface {
	Get(key Key) ([]domain.BusinessHour, bool)
	Add(key Key, value []domain.BusinessHour)
	RemoveFunc(match func(Key) bool) int
	Purge()
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
