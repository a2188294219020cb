package next_available_times

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Tenants интерфейс загрузки данных компании
type Tenants interface {
	Company(ctx context.Context, id uuid.UUID) (*domain.Company, *time.Location, error)
	Services(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]domain.Service, error)
}

// SlotSearch интерфейс движка поиска слотов
type SlotSearch interface {
	FindNextAvailableTimes(ctx context.Context, companyID uuid.UUID, date time.Time, duration time.Duration) (*domain.DayTimes, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
