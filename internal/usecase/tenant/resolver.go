// Package tenant загружает данные компании, нужные use case записей:
// саму компанию с часовым поясом, клиента и услуги
package tenant

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	clientRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/client"
	companyRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/company"
)

// Resolver загружает сущности компании и переводит "не найдено" в domain.ErrNotFound
type Resolver struct {
	companies  CompanyRepository
	catalog    CatalogRepository
	clients    ClientRepository
	defaultLoc *time.Location
	logger     Logger
}

// NewResolver создает новый экземпляр. defaultLoc используется для компаний без пояса.
func NewResolver(
	companies CompanyRepository,
	catalog CatalogRepository,
	clients ClientRepository,
	defaultLoc *time.Location,
	logger Logger,
) *Resolver {
	if defaultLoc == nil {
		defaultLoc = time.UTC
	}
	return &Resolver{
		companies:  companies,
		catalog:    catalog,
		clients:    clients,
		defaultLoc: defaultLoc,
		logger:     logger,
	}
}

// Company возвращает компанию и её часовой пояс
func (r *Resolver) Company(ctx context.Context, id uuid.UUID) (*domain.Company, *time.Location, error) {
	company, err := r.companies.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, companyRepo.ErrCompanyNotFound) {
			r.logger.Warn("Tenant: company id=%s not found", id)
			return nil, nil, fmt.Errorf("%w: company id=%s", domain.ErrNotFound, id)
		}
		r.logger.Error("Tenant: failed to get company id=%s: %v", id, err)
		return nil, nil, fmt.Errorf("%w: failed to get company: %w", ErrInternal, err)
	}

	return company, company.Location(r.defaultLoc), nil
}

// Client возвращает клиента компании. Клиент другой компании считается ненайденным.
func (r *Resolver) Client(ctx context.Context, companyID, id uuid.UUID) (*domain.Client, error) {
	client, err := r.clients.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, clientRepo.ErrClientNotFound) {
			r.logger.Warn("Tenant: client id=%s not found", id)
			return nil, fmt.Errorf("%w: client id=%s", domain.ErrNotFound, id)
		}
		r.logger.Error("Tenant: failed to get client id=%s: %v", id, err)
		return nil, fmt.Errorf("%w: failed to get client: %w", ErrInternal, err)
	}

	if client.CompanyID != companyID {
		r.logger.Warn("Tenant: client id=%s belongs to another company", id)
		return nil, fmt.Errorf("%w: client id=%s", domain.ErrNotFound, id)
	}

	return client, nil
}

// Services возвращает услуги компании в порядке запроса, повторы отбрасываются.
// Если хотя бы одной услуги нет, возвращается domain.ErrNotFound.
func (r *Resolver) Services(ctx context.Context, companyID uuid.UUID, ids []uuid.UUID) ([]domain.Service, error) {
	unique := make([]uuid.UUID, 0, len(ids))
	seen := make(map[uuid.UUID]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		unique = append(unique, id)
	}

	found, err := r.catalog.GetServicesByIDs(ctx, companyID, unique)
	if err != nil {
		r.logger.Error("Tenant: failed to get services for company=%s: %v", companyID, err)
		return nil, fmt.Errorf("%w: failed to get services: %w", ErrInternal, err)
	}

	byID := make(map[uuid.UUID]domain.Service, len(found))
	for _, s := range found {
		byID[s.ID] = s
	}

	services := make([]domain.Service, 0, len(unique))
	for _, id := range unique {
		s, ok := byID[id]
		if !ok {
			r.logger.Warn("Tenant: service id=%s not found in company=%s", id, companyID)
			return nil, fmt.Errorf("%w: service id=%s", domain.ErrNotFound, id)
		}
		services = append(services, s)
	}

	return services, nil
}
