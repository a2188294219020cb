package check_availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
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
	ProviderInCompany(ctx context.Context, companyID, providerID uuid.UUID) (*domain.Provider, error)
	ProviderForSpecialty(ctx context.Context, companyID, providerID, specialtyID uuid.UUID) (*domain.Provider, error)
	ProviderWithLeastLoad(ctx context.Context, companyID, specialtyID uuid.UUID, date time.Time) (*domain.Provider, error)
}

// SlotValidator интерфейс проверки доступности окна
type SlotValidator interface {
	Check(ctx context.Context, q domain.SlotQuery) (domain.Availability, error)
	CheckClient(ctx context.Context, clientID uuid.UUID, start, end time.Time, exclude *uuid.UUID) (domain.Availability, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
