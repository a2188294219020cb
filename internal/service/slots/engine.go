package slots

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Engine движок поиска свободных слотов.
// Отказ по правилам доступности означает "кандидат не подходит" и поиск продолжается,
// ошибка хранилища прерывает поиск.
type Engine struct {
	validator    Validator
	hours        BusinessHours
	resolver     ProviderResolver
	timeProvider TimeProvider
	metrics      Metrics
	logger       Logger
	opts         Options
}

// NewEngine создает новый экземпляр движка поиска
func NewEngine(
	validator Validator,
	hours BusinessHours,
	resolver ProviderResolver,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
	opts Options,
) *Engine {
	if opts.SlotInterval <= 0 {
		opts.SlotInterval = domain.SlotIntervalMinutes * time.Minute
	}
	if opts.HorizonDays <= 0 {
		opts.HorizonDays = domain.SearchHorizonDays
	}
	if opts.NextTimesDaysAhead <= 0 {
		opts.NextTimesDaysAhead = domain.NextAvailableDaysAhead
	}

	return &Engine{
		validator:    validator,
		hours:        hours,
		resolver:     resolver,
		timeProvider: timeProvider,
		metrics:      metrics,
		logger:       logger,
		opts:         opts,
	}
}

// FindBestSlot подбирает пару (специалист, начало) по форме запроса.
// nil без ошибки означает, что за горизонт поиска ничего не нашлось.
func (e *Engine) FindBestSlot(ctx context.Context, req *Request) (*domain.Slot, error) {
	if req.Duration <= 0 {
		return nil, ErrInvalidDuration
	}

	started := time.Now()
	strategy := req.strategy()

	var (
		slot *domain.Slot
		err  error
	)
	switch strategy {
	case StrategyTimeAndProvider:
		slot, err = e.findWithTimeAndProvider(ctx, req)
	case StrategyTimeOnly:
		slot, err = e.findWithTime(ctx, req)
	case StrategyProviderOnly:
		slot, err = e.NextAvailableForProvider(ctx, req.CompanyID, *req.ProviderID, e.today(req.location()), req.Duration)
	default:
		slot, err = e.findExhaustive(ctx, req)
	}

	outcome := "found"
	switch {
	case errors.Is(err, domain.ErrNoProviderAvailable):
		outcome = "empty"
	case err != nil:
		outcome = "error"
	case slot == nil:
		outcome = "empty"
	}
	if e.metrics != nil {
		e.metrics.ObserveSlotSearch(strategy, outcome, time.Since(started))
	}

	if err != nil {
		return nil, err
	}
	if slot == nil {
		e.logger.Info("FindBestSlot: strategy=%s company=%s found nothing", strategy, req.CompanyID)
		return nil, nil
	}

	e.logger.Info("FindBestSlot: strategy=%s company=%s provider=%s start=%s",
		strategy, req.CompanyID, slot.ProviderID, types.FormatLocal(slot.Start))
	return slot, nil
}

// findWithTimeAndProvider проверяет запрошенное время, при отказе ищет ближайшее у того же специалиста
func (e *Engine) findWithTimeAndProvider(ctx context.Context, req *Request) (*domain.Slot, error) {
	start := req.Start.In(req.location())
	end := start.Add(req.Duration)

	res, err := e.validator.Check(ctx, domain.SlotQuery{
		CompanyID:   req.CompanyID,
		ProviderID:  req.ProviderID,
		SpecialtyID: &req.SpecialtyID,
		Start:       start,
		End:         end,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: findWithTimeAndProvider: %w", ErrInternal, err)
	}
	if res.Ok() {
		return &domain.Slot{ProviderID: *req.ProviderID, Start: start, End: end}, nil
	}

	e.logger.Info("FindBestSlot: requested time rejected (%v), scanning provider=%s", res.Reason(), *req.ProviderID)
	return e.NextAvailableForProvider(ctx, req.CompanyID, *req.ProviderID, start, req.Duration)
}

// findWithTime выбирает наименее загруженного из свободных в запрошенное время специалистов
func (e *Engine) findWithTime(ctx context.Context, req *Request) (*domain.Slot, error) {
	start := req.Start.In(req.location())
	end := start.Add(req.Duration)

	providers, err := e.resolver.AvailableProviders(ctx, req.CompanyID, req.SpecialtyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("%w: findWithTime: %w", ErrInternal, err)
	}
	if len(providers) == 0 {
		e.logger.Warn("FindBestSlot: no provider free at %s for specialty=%s", types.FormatLocal(start), req.SpecialtyID)
		return nil, domain.ErrNoProviderAvailable
	}

	best, err := e.resolver.LeastLoaded(ctx, providers, start)
	if err != nil {
		return nil, fmt.Errorf("%w: findWithTime: %w", ErrInternal, err)
	}
	return &domain.Slot{ProviderID: best.ID, Start: start, End: end}, nil
}

// findExhaustive перебирает дни, затем время, затем специалистов в порядке списка
func (e *Engine) findExhaustive(ctx context.Context, req *Request) (*domain.Slot, error) {
	providers, err := e.resolver.ProvidersWithSpecialty(ctx, req.CompanyID, req.SpecialtyID)
	if err != nil {
		return nil, fmt.Errorf("%w: findExhaustive: %w", ErrInternal, err)
	}
	if len(providers) == 0 {
		return nil, nil
	}

	today := e.today(req.location())
	for day := 0; day < e.opts.HorizonDays; day++ {
		date := today.AddDate(0, 0, day)

		candidates, err := e.SlotsForDay(ctx, req.CompanyID, date, req.Duration)
		if err != nil {
			return nil, err
		}

		for _, start := range candidates {
			end := start.Add(req.Duration)
			for _, p := range providers {
				providerID := p.ID
				res, err := e.validator.Check(ctx, domain.SlotQuery{
					CompanyID:   req.CompanyID,
					ProviderID:  &providerID,
					SpecialtyID: &req.SpecialtyID,
					Start:       start,
					End:         end,
				})
				if err != nil {
					return nil, fmt.Errorf("%w: findExhaustive: %w", ErrInternal, err)
				}
				if res.Ok() {
					return &domain.Slot{ProviderID: providerID, Start: start, End: end}, nil
				}
			}
		}
	}

	return nil, nil
}

// NextAvailableForProvider ищет первое свободное время специалиста, начиная с даты from
// (прошедшая дата заменяется сегодняшней). nil без ошибки, если горизонт исчерпан.
func (e *Engine) NextAvailableForProvider(ctx context.Context, companyID, providerID uuid.UUID, from time.Time, duration time.Duration) (*domain.Slot, error) {
	today := e.today(from.Location())
	date := types.StartOfDate(from)
	if date.Before(today) {
		date = today
	}

	for day := 0; day < e.opts.HorizonDays; day++ {
		times, err := e.AvailableTimesForDay(ctx, companyID, date.AddDate(0, 0, day), duration, &providerID)
		if err != nil {
			return nil, err
		}
		if len(times) > 0 {
			return &domain.Slot{ProviderID: providerID, Start: times[0], End: times[0].Add(duration)}, nil
		}
	}

	return nil, nil
}

// FindNextAvailableTimes возвращает первый день (из NextTimesDaysAhead, начиная с date),
// в котором есть свободное время без привязки к специалисту
func (e *Engine) FindNextAvailableTimes(ctx context.Context, companyID uuid.UUID, date time.Time, duration time.Duration) (*domain.DayTimes, error) {
	if duration <= 0 {
		return nil, ErrInvalidDuration
	}

	day := types.StartOfDate(date)
	for i := 0; i < e.opts.NextTimesDaysAhead; i++ {
		times, err := e.AvailableTimesForDay(ctx, companyID, day, duration, nil)
		if err != nil {
			return nil, err
		}
		if len(times) > 0 {
			result := &domain.DayTimes{Date: day, Times: make([]types.TimeString, 0, len(times))}
			for _, t := range times {
				result.Times = append(result.Times, types.NewTimeString(t))
			}
			return result, nil
		}
		day = day.AddDate(0, 0, 1)
	}

	return nil, nil
}

// AvailableTimesForDay кандидаты дня, прошедшие проверку доступности.
// Без providerID пересечения проверяются по всей компании.
func (e *Engine) AvailableTimesForDay(ctx context.Context, companyID uuid.UUID, date time.Time, duration time.Duration, providerID *uuid.UUID) ([]time.Time, error) {
	candidates, err := e.SlotsForDay(ctx, companyID, date, duration)
	if err != nil {
		return nil, err
	}

	available := make([]time.Time, 0, len(candidates))
	for _, start := range candidates {
		res, err := e.validator.Check(ctx, domain.SlotQuery{
			CompanyID:  companyID,
			ProviderID: providerID,
			Start:      start,
			End:        start.Add(duration),
		})
		if err != nil {
			return nil, fmt.Errorf("%w: AvailableTimesForDay: %w", ErrInternal, err)
		}
		if res.Ok() {
			available = append(available, start)
		}
	}
	return available, nil
}

// SlotsForDay генерирует кандидатов: от начала каждого интервала с шагом SlotInterval,
// пока начало + duration не выходит за конец интервала. Шаг не зависит от длительности.
// Шаг идет по настенным часам, поэтому в дни перехода на летнее время и обратно
// каждое время суток встречается один раз.
func (e *Engine) SlotsForDay(ctx context.Context, companyID uuid.UUID, date time.Time, duration time.Duration) ([]time.Time, error) {
	hours, err := e.hours.HoursForDate(ctx, companyID, date)
	if err != nil {
		return nil, fmt.Errorf("%w: SlotsForDay: %w", ErrInternal, err)
	}

	step := int(e.opts.SlotInterval / time.Minute)
	if step <= 0 {
		step = domain.SlotIntervalMinutes
	}

	day := types.StartOfDate(date)
	candidates := make([]time.Time, 0)
	for _, bh := range hours {
		closesAt := bh.EndTime.On(day)
		for wall := bh.StartTime; ; {
			start := wall.On(day)
			if start.Add(duration).After(closesAt) {
				break
			}
			candidates = append(candidates, start)

			next, err := wall.AddMinutes(step)
			if err != nil {
				break
			}
			wall = next
		}
	}

	sort.Slice(candidates, func(i, j int) bool { return candidates[i].Before(candidates[j]) })

	// несуществующее время при переходе на летнее совпадает со следующим
	unique := candidates[:0]
	for _, c := range candidates {
		if n := len(unique); n > 0 && c.Equal(unique[n-1]) {
			continue
		}
		unique = append(unique, c)
	}
	return unique, nil
}

// today начало сегодняшнего дня в поясе loc
func (e *Engine) today(loc *time.Location) time.Time {
	return types.StartOfDate(e.timeProvider.Now().In(loc))
}
