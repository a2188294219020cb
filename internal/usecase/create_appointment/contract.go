package create_appointment

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

// ProviderResolver интерфейс подбора специалиста
type ProviderResolver interface {
	ResolveSpecialty(ctx context.Context, companyID uuid.UUID, explicit *uuid.UUID, serviceIDs []uuid.UUID) (uuid.UUID, error)
	ProviderForSpecialty(ctx context.Context, companyID, providerID, specialtyID uuid.UUID) (*domain.Provider, error)
	ProviderWithLeastLoad(ctx context.Context, companyID, specialtyID uuid.UUID, date time.Time) (*domain.Provider, error)
}

// SlotValidator интерфейс проверки доступности окна
type SlotValidator interface {
	Validate(ctx context.Context, q domain.SlotQuery) error
	ValidateClient(ctx context.Context, clientID uuid.UUID, start, end time.Time, exclude *uuid.UUID) error
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	Create(ctx context.Context, a *domain.Appointment) (*domain.Appointment, error)
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
