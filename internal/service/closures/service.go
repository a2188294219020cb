package closures

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Service сервис закрытий компании
type Service struct {
	repo   Repository
	logger Logger
}

// NewService создает новый экземпляр сервиса закрытий
func NewService(repo Repository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// ClosuresFor возвращает закрытия компании на дату
func (s *Service) ClosuresFor(ctx context.Context, companyID uuid.UUID, date time.Time) ([]domain.Closure, error) {
	closures, err := s.repo.GetByCompanyAndDate(ctx, companyID, date)
	if err != nil {
		s.logger.Error("ClosuresFor: failed to get closures company=%s date=%s: %v",
			companyID, date.Format(types.DateFormat), err)
		return nil, fmt.Errorf("%w: ClosuresFor - repository error: %w", ErrInternal, err)
	}
	return closures, nil
}

// IsClosed проверяет окно [start, end) по закрытиям на дату start.
// Закрытия следующего дня не учитываются, даже если окно переходит через полночь.
func (s *Service) IsClosed(ctx context.Context, companyID uuid.UUID, start, end time.Time) (bool, error) {
	closures, err := s.ClosuresFor(ctx, companyID, start)
	if err != nil {
		return false, err
	}

	for _, c := range closures {
		if c.Overlaps(start, end) {
			return true, nil
		}
	}
	return false, nil
}
