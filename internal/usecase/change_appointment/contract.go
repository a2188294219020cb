package change_appointment

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/calendar"
)

// Tenants интерфейс загрузки данных компании
type Tenants interface {
	Company(ctx context.Context, id uuid.UUID) (*domain.Company, *time.Location, error)
	Client(ctx context.Context, companyID, id uuid.UUID) (*domain.Client, error)
	Services(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]domain.Service, error)
}

// SlotValidator интерфейс проверки доступности окна
type SlotValidator interface {
	Validate(ctx context.Context, q domain.SlotQuery) error
	ValidateClient(ctx context.Context, clientID uuid.UUID, start, end time.Time, exclude *uuid.UUID) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	Update(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
}

// ProviderRepository интерфейс репозитория специалистов
type ProviderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error)
}

// CalendarNotifier интерфейс уведомления внешнего календаря
type CalendarNotifier interface {
	Notify(ctx context.Context, ev calendar.Event) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// Metrics интерфейс бизнес-метрик
type Metrics interface {
	RecordAppointment(operation string)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
