package businesshours

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

const daysInWeek = 7

// Key ключ кэша рабочих часов
type Key struct {
	CompanyID uuid.UUID
	Day       int
}

// IsoToStoreDay переводит день недели ISO (1 = понедельник .. 7 = воскресенье)
// в формат хранения (0 = воскресенье .. 6 = суббота)
func IsoToStoreDay(isoDay int) int {
	return isoDay % daysInWeek
}

// Service сервис рабочих часов компании.
// Кэш опционален: при nil каждый вызов идет в репозиторий.
type Service struct {
	repo   Repository
	cache  HoursCache
	logger Logger
}

// NewService создает новый экземпляр сервиса рабочих часов
func NewService(repo Repository, cache HoursCache, logger Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// HoursFor возвращает интервалы работы на день недели (0 = воскресенье), упорядоченные по началу.
// Пустой список означает, что компания в этот день закрыта.
func (s *Service) HoursFor(ctx context.Context, companyID uuid.UUID, day int) ([]domain.BusinessHour, error) {
	if day < 0 || day >= daysInWeek {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidDay, day)
	}

	if s.cache == nil {
		hours, err := s.repo.GetByCompanyAndDay(ctx, companyID, day)
		if err != nil {
			s.logger.Error("HoursFor: failed to get hours company=%s day=%d: %v", companyID, day, err)
			return nil, fmt.Errorf("%w: HoursFor - repository error: %w", ErrInternal, err)
		}
		return hours, nil
	}

	key := Key{CompanyID: companyID, Day: day}
	if hours, ok := s.cache.Get(key); ok {
		return hours, nil
	}

	week, err := s.loadWeek(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return week[day], nil
}

// HoursForDate возвращает интервалы работы на день недели даты
func (s *Service) HoursForDate(ctx context.Context, companyID uuid.UUID, date time.Time) ([]domain.BusinessHour, error) {
	// time.Weekday уже совпадает с форматом хранения
	return s.HoursFor(ctx, companyID, int(date.Weekday()))
}

// IsWithin проверяет, что [start, end) целиком помещается в один из интервалов дня start.
// Два смежных интервала не склеиваются.
func (s *Service) IsWithin(ctx context.Context, companyID uuid.UUID, start, end time.Time) (bool, error) {
	hours, err := s.HoursForDate(ctx, companyID, start)
	if err != nil {
		return false, err
	}

	for _, bh := range hours {
		if bh.Contains(start, end) {
			return true, nil
		}
	}
	return false, nil
}

// Invalidate сбрасывает кэш компании после изменения ее расписания
func (s *Service) Invalidate(companyID uuid.UUID) {
	if s.cache == nil {
		return
	}
	removed := s.cache.RemoveFunc(func(k Key) bool { return k.CompanyID == companyID })
	s.logger.Info("Invalidate: dropped %d cached days for company=%s", removed, companyID)
}

// InvalidateAll очищает кэш целиком
func (s *Service) InvalidateAll() {
	if s.cache == nil {
		return
	}
	s.cache.Purge()
}

// loadWeek загружает всю неделю одним запросом и кладет в кэш каждый день,
// включая выходные (пустой список)
func (s *Service) loadWeek(ctx context.Context, companyID uuid.UUID) ([daysInWeek][]domain.BusinessHour, error) {
	var week [daysInWeek][]domain.BusinessHour

	hours, err := s.repo.GetByCompany(ctx, companyID)
	if err != nil {
		s.logger.Error("HoursFor: failed to load week company=%s: %v", companyID, err)
		return week, fmt.Errorf("%w: loadWeek - repository error: %w", ErrInternal, err)
	}

	for day := range week {
		week[day] = make([]domain.BusinessHour, 0)
	}
	for _, bh := range hours {
		if bh.DayOfWeek < 0 || bh.DayOfWeek >= daysInWeek {
			s.logger.Warn("HoursFor: skipping interval id=%s with day=%d", bh.ID, bh.DayOfWeek)
			continue
		}
		week[bh.DayOfWeek] = append(week[bh.DayOfWeek], bh)
	}

	for day, dayHours := range week {
		s.cache.Add(Key{CompanyID: companyID, Day: day}, dayHours)
	}
	return week, nil
}
