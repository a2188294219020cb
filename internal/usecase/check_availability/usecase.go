package check_availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase проверяет, можно ли записаться на окно, без записи.
// Любое нарушение правил дает Available=false с видом отказа в Reason.
type UseCase struct {
	tenants   Tenants
	resolver  ProviderResolver
	validator SlotValidator
	logger    Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(tenants Tenants, resolver ProviderResolver, validator SlotValidator, logger Logger) *UseCase {
	return &UseCase{
		tenants:   tenants,
		resolver:  resolver,
		validator: validator,
		logger:    logger,
	}
}

// Execute выполняет проверку
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CheckAvailability: company=%s, start=%s", req.CompanyID, types.FormatLocal(req.Start))

	// 1. Валидация входных данных
	p, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CheckAvailability: validation failed: %v", err)
		return nil, err
	}

	// 2. Окно в поясе компании
	_, loc, err := uc.tenants.Company(ctx, p.companyID)
	if err != nil {
		return nil, uc.fail("get company", err)
	}
	services, err := uc.tenants.Services(ctx, p.companyID, p.serviceIDs)
	if err != nil {
		return nil, uc.fail("get services", err)
	}

	start := types.WallClockIn(req.Start, loc)
	end := start.Add(time.Duration(domain.TotalDuration(services)) * time.Minute)
	resp := &Response{Start: start, End: end}

	// 3. Специалист
	provider, err := uc.pickProvider(ctx, p, start)
	if errors.Is(err, domain.ErrNoProviderAvailable) {
		resp.Reason = domain.ErrNoProviderAvailable
		return resp, nil
	}
	if err != nil {
		return nil, err
	}
	resp.ProviderID = &provider.ID

	// 4. Правила доступности окна
	res, err := uc.validator.Check(ctx, domain.SlotQuery{
		CompanyID:  p.companyID,
		ProviderID: &provider.ID,
		Start:      start,
		End:        end,
	})
	if err != nil {
		return nil, uc.fail("check slot", err)
	}

	// 5. Записи клиента
	if res.Ok() && p.clientID != nil {
		if _, err := uc.tenants.Client(ctx, p.companyID, *p.clientID); err != nil {
			return nil, uc.fail("get client", err)
		}
		res, err = uc.validator.CheckClient(ctx, *p.clientID, start, end, nil)
		if err != nil {
			return nil, uc.fail("check client", err)
		}
	}

	resp.Available = res.Ok()
	resp.Reason = res.Reason()
	uc.logger.Info("CheckAvailability: provider=%s start=%s available=%t", provider.ID, types.FormatLocal(start), resp.Available)
	return resp, nil
}

func (uc *UseCase) pickProvider(ctx context.Context, p *parsedRequest, start time.Time) (*domain.Provider, error) {
	// специалист без услуг и специальности проверяется только на принадлежность компании
	if p.providerID != nil && p.specialtyID == nil && len(p.serviceIDs) == 0 {
		provider, err := uc.resolver.ProviderInCompany(ctx, p.companyID, *p.providerID)
		if err != nil {
			return nil, uc.fail("get provider", err)
		}
		return provider, nil
	}

	specialtyID, err := uc.resolver.ResolveSpecialty(ctx, p.companyID, p.specialtyID, p.serviceIDs)
	if err != nil {
		return nil, uc.fail("resolve specialty", err)
	}
	if p.providerID != nil {
		provider, err := uc.resolver.ProviderForSpecialty(ctx, p.companyID, *p.providerID, specialtyID)
		if err != nil {
			return nil, uc.fail("get provider", err)
		}
		return provider, nil
	}

	provider, err := uc.resolver.ProviderWithLeastLoad(ctx, p.companyID, specialtyID, start)
	if err != nil {
		return nil, uc.fail("pick provider", err)
	}
	if provider == nil {
		return nil, domain.ErrNoProviderAvailable
	}
	return provider, nil
}

func (uc *UseCase) fail(step string, err error) error {
	if domain.IsBusinessError(err) {
		return err
	}
	uc.logger.Error("CheckAvailability: %s: %v", step, err)
	return fmt.Errorf("%w: %s: %w", ErrInternal, step, err)
}
