package find_best_slot

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots"
)

// Tenants интерфейс загрузки данных компании
type Tenants interface {
	Company(ctx context.Context, id uuid.UUID) (*domain.Company, *time.Location, error)
	Services(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]domain.Service, error)
}

// ProviderResolver интерфейс подбора специалиста
type ProviderResolver interface {
	ResolveSpecialty(ctx context.Context, companyID uuid.UUID, explicit *uuid.UUID, serviceIDs []uuid.UUID) (uuid.UUID, error)
	ProviderInCompany(ctx context.Context, companyID, providerID uuid.UUID) (*domain.Provider, error)
	ProviderForSpecialty(ctx context.Context, companyID, providerID, specialtyID uuid.UUID) (*domain.Provider, error)
}

// SlotSearch интерфейс движка поиска слотов
type SlotSearch interface {
	FindBestSlot(ctx context.Context, req *slots.Request) (*domain.Slot, error)
}

// ProviderRepository интерфейс репозитория специалистов
type ProviderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
