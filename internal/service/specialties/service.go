package specialties

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	catalogRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/catalog"
	providerRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/provider"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service определяет специальность записи и подбирает специалистов
type Service struct {
	catalogRepo  CatalogRepository
	providerRepo ProviderRepository
	counter      AppointmentCounter
	logger       Logger
}

// NewService создает новый экземпляр сервиса специальностей
func NewService(
	catalogRepo CatalogRepository,
	providerRepo ProviderRepository,
	counter AppointmentCounter,
	logger Logger,
) *Service {
	return &Service{
		catalogRepo:  catalogRepo,
		providerRepo: providerRepo,
		counter:      counter,
		logger:       logger,
	}
}

// ResolveSpecialty возвращает явно указанную специальность (после проверки принадлежности компании)
// или специальность, общую для наибольшего числа услуг
func (s *Service) ResolveSpecialty(ctx context.Context, companyID uuid.UUID, explicit *uuid.UUID, serviceIDs []uuid.UUID) (uuid.UUID, error) {
	if explicit != nil {
		exists, err := s.catalogRepo.SpecialtyExists(ctx, companyID, *explicit)
		if err != nil {
			s.logger.Error("ResolveSpecialty: failed to check specialty id=%s: %v", *explicit, err)
			return uuid.Nil, fmt.Errorf("%w: ResolveSpecialty - repository error: %w", ErrInternal, err)
		}
		if !exists {
			s.logger.Warn("ResolveSpecialty: specialty id=%s not found in company=%s", *explicit, companyID)
			return uuid.Nil, fmt.Errorf("%w: specialty id=%s", domain.ErrNotFound, *explicit)
		}
		return *explicit, nil
	}

	specialtyID, err := s.catalogRepo.FindCommonSpecialty(ctx, companyID, serviceIDs)
	if err != nil {
		if errors.Is(err, catalogRepo.ErrSpecialtyNotInferred) {
			s.logger.Warn("ResolveSpecialty: no common specialty for %d services in company=%s", len(serviceIDs), companyID)
			return uuid.Nil, domain.ErrAmbiguousSpecialty
		}
		s.logger.Error("ResolveSpecialty: failed to infer specialty: %v", err)
		return uuid.Nil, fmt.Errorf("%w: ResolveSpecialty - repository error: %w", ErrInternal, err)
	}

	return specialtyID, nil
}

// ProviderInCompany получает специалиста и проверяет, что он принимает в компании
func (s *Service) ProviderInCompany(ctx context.Context, companyID, providerID uuid.UUID) (*domain.Provider, error) {
	p, err := s.providerRepo.GetByID(ctx, providerID)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, fmt.Errorf("%w: provider id=%s", domain.ErrNotFound, providerID)
		}
		s.logger.Error("ProviderInCompany: failed to get provider id=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: ProviderInCompany - repository error: %w", ErrInternal, err)
	}

	if p.CompanyID != companyID {
		s.logger.Warn("ProviderInCompany: provider id=%s belongs to another company", providerID)
		return nil, fmt.Errorf("%w: provider id=%s", domain.ErrNotFound, providerID)
	}
	if !p.Active {
		s.logger.Warn("ProviderInCompany: provider id=%s is inactive", providerID)
		return nil, domain.ErrNoProviderAvailable
	}

	return p, nil
}

// ProviderForSpecialty как ProviderInCompany, но дополнительно требует специальность.
// Специалист без нее записи не принимает: ErrNoProviderAvailable.
func (s *Service) ProviderForSpecialty(ctx context.Context, companyID, providerID, specialtyID uuid.UUID) (*domain.Provider, error) {
	p, err := s.ProviderInCompany(ctx, companyID, providerID)
	if err != nil {
		return nil, err
	}

	ok, err := s.providerRepo.HasSpecialty(ctx, providerID, specialtyID)
	if err != nil {
		s.logger.Error("ProviderForSpecialty: provider id=%s specialty=%s: %v", providerID, specialtyID, err)
		return nil, fmt.Errorf("%w: ProviderForSpecialty - repository error: %w", ErrInternal, err)
	}
	if !ok {
		s.logger.Warn("ProviderForSpecialty: provider id=%s has no specialty=%s", providerID, specialtyID)
		return nil, domain.ErrNoProviderAvailable
	}

	return p, nil
}

// AvailableProviders специалисты со специальностью без пересекающихся записей в [start, end)
func (s *Service) AvailableProviders(ctx context.Context, companyID, specialtyID uuid.UUID, start, end time.Time) ([]domain.Provider, error) {
	providers, err := s.providerRepo.GetAvailable(ctx, companyID, specialtyID, start, end)
	if err != nil {
		s.logger.Error("AvailableProviders: company=%s specialty=%s: %v", companyID, specialtyID, err)
		return nil, fmt.Errorf("%w: AvailableProviders - repository error: %w", ErrInternal, err)
	}
	return providers, nil
}

// ProvidersWithSpecialty специалисты со специальностью без учета занятости
func (s *Service) ProvidersWithSpecialty(ctx context.Context, companyID, specialtyID uuid.UUID) ([]domain.Provider, error) {
	providers, err := s.providerRepo.GetBySpecialty(ctx, companyID, specialtyID)
	if err != nil {
		s.logger.Error("ProvidersWithSpecialty: company=%s specialty=%s: %v", companyID, specialtyID, err)
		return nil, fmt.Errorf("%w: ProvidersWithSpecialty - repository error: %w", ErrInternal, err)
	}
	return providers, nil
}

// ProviderWithLeastLoad специалист с наименьшим числом незавершенных записей в день date.
// Возвращает nil без ошибки, если специальности нет ни у одного специалиста.
func (s *Service) ProviderWithLeastLoad(ctx context.Context, companyID, specialtyID uuid.UUID, date time.Time) (*domain.Provider, error) {
	dayStart := types.StartOfDate(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	p, err := s.providerRepo.GetWithLeastLoad(ctx, companyID, specialtyID, dayStart, dayEnd)
	if err != nil {
		if errors.Is(err, providerRepo.ErrProviderNotFound) {
			return nil, nil
		}
		s.logger.Error("ProviderWithLeastLoad: company=%s specialty=%s: %v", companyID, specialtyID, err)
		return nil, fmt.Errorf("%w: ProviderWithLeastLoad - repository error: %w", ErrInternal, err)
	}
	return p, nil
}

// LeastLoaded выбирает из списка специалиста с наименьшей загрузкой в день date.
// При равенстве побеждает первый в списке.
func (s *Service) LeastLoaded(ctx context.Context, providers []domain.Provider, date time.Time) (*domain.Provider, error) {
	if len(providers) == 0 {
		return nil, nil
	}

	dayStart := types.StartOfDate(date)
	dayEnd := dayStart.AddDate(0, 0, 1)

	best, bestLoad := -1, 0
	for i, p := range providers {
		load, err := s.counter.CountByProviderInRange(ctx, p.ID, dayStart, dayEnd)
		if err != nil {
			s.logger.Error("LeastLoaded: failed to count load of provider id=%s: %v", p.ID, err)
			return nil, fmt.Errorf("%w: LeastLoaded - repository error: %w", ErrInternal, err)
		}
		if best < 0 || load < bestLoad {
			best, bestLoad = i, load
		}
	}

	chosen := providers[best]
	return &chosen, nil
}
