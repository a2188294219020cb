package conflicts

import (
	"context"
	"fmt"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Service детектор пересечений с незавершенными записями.
// Интервалы полуоткрытые: запись, заканчивающаяся ровно в начале окна, не мешает.
type Service struct {
	repo   AppointmentRepository
	logger Logger
}

// NewService создает новый экземпляр детектора пересечений
func NewService(repo AppointmentRepository, logger Logger) *Service {
	return &Service{
		repo:   repo,
		logger: logger,
	}
}

// HasOverlap есть ли у компании (или у конкретного специалиста) пересекающаяся запись
func (s *Service) HasOverlap(ctx context.Context, q domain.OverlapQuery) (bool, error) {
	if !q.End.After(q.Start) {
		return false, ErrInvalidRange
	}

	overlap, err := s.repo.HasOverlap(ctx, q)
	if err != nil {
		s.logger.Error("HasOverlap: company=%s: %v", q.CompanyID, err)
		return false, fmt.Errorf("%w: HasOverlap - repository error: %w", ErrInternal, err)
	}
	return overlap, nil
}

// HasOverlapForClient есть ли у клиента пересекающаяся запись у любого специалиста
func (s *Service) HasOverlapForClient(ctx context.Context, q domain.ClientOverlapQuery) (bool, error) {
	if !q.End.After(q.Start) {
		return false, ErrInvalidRange
	}

	overlap, err := s.repo.HasOverlapForClient(ctx, q)
	if err != nil {
		s.logger.Error("HasOverlapForClient: client=%s: %v", q.ClientID, err)
		return false, fmt.Errorf("%w: HasOverlapForClient - repository error: %w", ErrInternal, err)
	}
	return overlap, nil
}
