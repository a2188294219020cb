package slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Validator проверка доступности окна
type Validator interface {
	Check(ctx context.Context, q domain.SlotQuery) (domain.Availability, error)
}

// BusinessHours интервалы работы компании на дату
type BusinessHours interface {
	HoursForDate(ctx context.Context, companyID uuid.UUID, date time.Time) ([]domain.BusinessHour, error)
}

// ProviderResolver подбор специалистов
type ProviderResolver interface {
	AvailableProviders(ctx context.Context, companyID, specialtyID uuid.UUID, start, end time.Time) ([]domain.Provider, error)
	ProvidersWithSpecialty(ctx context.Context, companyID, specialtyID uuid.UUID) ([]domain.Provider, error)
	LeastLoaded(ctx context.Context, providers []domain.Provider, date time.Time) (*domain.Provider, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Metrics метрики поиска
type Metrics interface {
	ObserveSlotSearch(strategy, outcome string, duration time.Duration)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
