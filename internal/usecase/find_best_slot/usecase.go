package find_best_slot

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/service/slots"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase подбирает лучший слот для записи
type UseCase struct {
	tenants      Tenants
	resolver     ProviderResolver
	search       SlotSearch
	providerRepo ProviderRepository
	logger       Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	tenants Tenants,
	resolver ProviderResolver,
	search SlotSearch,
	providerRepo ProviderRepository,
	logger Logger,
) *UseCase {
	return &UseCase{
		tenants:      tenants,
		resolver:     resolver,
		search:       search,
		providerRepo: providerRepo,
		logger:       logger,
	}
}

// Execute выполняет поиск. nil без ошибки означает, что слот не найден.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("FindBestSlot: company=%s, services=%d, provider=%v, start=%v",
		req.CompanyID, len(req.ServiceIDs), req.ProviderID != nil, req.Start != nil)

	// 1. Валидация входных данных
	p, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("FindBestSlot: validation failed: %v", err)
		return nil, err
	}

	// 2. Пояс компании и длительность по услугам
	_, loc, err := uc.tenants.Company(ctx, p.companyID)
	if err != nil {
		return nil, uc.fail("get company", err)
	}
	services, err := uc.tenants.Services(ctx, p.companyID, p.serviceIDs)
	if err != nil {
		return nil, uc.fail("get services", err)
	}

	search := &slots.Request{
		CompanyID: p.companyID,
		Duration:  time.Duration(domain.TotalDuration(services)) * time.Minute,
		Location:  loc,
	}
	if req.Start != nil {
		start := types.WallClockIn(*req.Start, loc)
		search.Start = &start
	}

	// 3. Специальность определяется всегда, кроме запроса только по специалисту.
	// Явный специалист должен ею владеть.
	if p.providerID != nil && p.specialtyID == nil && len(p.serviceIDs) == 0 {
		provider, err := uc.resolver.ProviderInCompany(ctx, p.companyID, *p.providerID)
		if err != nil {
			return nil, uc.fail("get provider", err)
		}
		search.ProviderID = &provider.ID
	} else {
		specialtyID, err := uc.resolver.ResolveSpecialty(ctx, p.companyID, p.specialtyID, p.serviceIDs)
		if err != nil {
			return nil, uc.fail("resolve specialty", err)
		}
		search.SpecialtyID = specialtyID

		if p.providerID != nil {
			provider, err := uc.resolver.ProviderForSpecialty(ctx, p.companyID, *p.providerID, specialtyID)
			if err != nil {
				return nil, uc.fail("get provider", err)
			}
			search.ProviderID = &provider.ID
		}
	}

	// 4. Поиск
	slot, err := uc.search.FindBestSlot(ctx, search)
	if err != nil {
		return nil, uc.fail("search", err)
	}
	if slot == nil {
		return nil, nil
	}

	resp := &Response{
		ProviderID: slot.ProviderID,
		Start:      slot.Start,
		End:        slot.End,
	}
	resp.ProviderName = uc.providerName(ctx, slot.ProviderID)
	return resp, nil
}

func (uc *UseCase) providerName(ctx context.Context, id uuid.UUID) string {
	provider, err := uc.providerRepo.GetByID(ctx, id)
	if err != nil {
		uc.logger.Warn("FindBestSlot: failed to get provider name id=%s: %v", id, err)
		return ""
	}
	return provider.Name
}

func (uc *UseCase) fail(step string, err error) error {
	if domain.IsBusinessError(err) {
		return err
	}
	uc.logger.Error("FindBestSlot: %s: %v", step, err)
	return fmt.Errorf("%w: %s: %w", ErrInternal, step, err)
}
