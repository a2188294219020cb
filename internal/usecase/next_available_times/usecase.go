package next_available_times

import (
	"context"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase ищет ближайший день со свободным временем по компании
type UseCase struct {
	tenants Tenants
	search  SlotSearch
	logger  Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(tenants Tenants, search SlotSearch, logger Logger) *UseCase {
	return &UseCase{
		tenants: tenants,
		search:  search,
		logger:  logger,
	}
}

// Execute nil без ошибки означает, что свободного времени в пределах поиска нет
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("NextAvailableTimes: company=%s, services=%d, date=%s",
		req.CompanyID, len(req.ServiceIDs), req.Date.Format("2006-01-02"))

	// 1. Валидация
	companyID, serviceIDs, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("NextAvailableTimes: validation failed: %v", err)
		return nil, err
	}

	// 2. Пояс компании и длительность
	_, loc, err := uc.tenants.Company(ctx, companyID)
	if err != nil {
		return nil, uc.fail("get company", err)
	}
	services, err := uc.tenants.Services(ctx, companyID, serviceIDs)
	if err != nil {
		return nil, uc.fail("get services", err)
	}
	duration := time.Duration(domain.TotalDuration(services)) * time.Minute

	// 3. Поиск от даты запроса в поясе компании
	date := types.StartOfDate(types.WallClockIn(req.Date, loc))
	day, err := uc.search.FindNextAvailableTimes(ctx, companyID, date, duration)
	if err != nil {
		return nil, uc.fail("search", err)
	}
	if day == nil {
		uc.logger.Info("NextAvailableTimes: nothing found company=%s", companyID)
		return nil, nil
	}

	resp := &Response{Date: day.Date, Times: make([]string, 0, len(day.Times))}
	for _, t := range day.Times {
		resp.Times = append(resp.Times, t.String())
	}
	return resp, nil
}

func (uc *UseCase) fail(step string, err error) error {
	if domain.IsBusinessError(err) {
		return err
	}
	uc.logger.Error("NextAvailableTimes: %s: %v", step, err)
	return fmt.Errorf("%w: %s: %w", ErrInternal, step, err)
}
