package specialties

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// CatalogRepository интерфейс репозитория каталога
type CatalogRepository interface {
	FindCommonSpecialty(ctx context.Context, companyID uuid.UUID, serviceIDs []uuid.UUID) (uuid.UUID, error)
	SpecialtyExists(ctx context.Context, companyID, specialtyID uuid.UUID) (bool, error)
}

// ProviderRepository интерфейс репозитория специалистов
type ProviderRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Provider, error)
	HasSpecialty(ctx context.Context, providerID, specialtyID uuid.UUID) (bool, error)
	GetBySpecialty(ctx context.Context, companyID, specialtyID uuid.UUID) ([]domain.Provider, error)
	GetAvailable(ctx context.Context, companyID, specialtyID uuid.UUID, start, end time.Time) ([]domain.Provider, error)
	GetWithLeastLoad(ctx context.Context, companyID, specialtyID uuid.UUID, dayStart, dayEnd time.Time) (*domain.Provider, error)
}

// AppointmentCounter считает загрузку специалиста
type AppointmentCounter interface {
	CountByProviderInRange(ctx context.Context, providerID uuid.UUID, from, to time.Time) (int, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
