package availability

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Validator проверяет, можно ли занять окно.
// Правила проверяются по порядку до первого нарушения:
// прошлое, рабочие часы, закрытия, пересечение с записями.
type Validator struct {
	hours        BusinessHours
	closures     Closures
	conflicts    Conflicts
	timeProvider TimeProvider
}

// NewValidator создает новый экземпляр валидатора
func NewValidator(
	hours BusinessHours,
	closures Closures,
	conflicts Conflicts,
	timeProvider TimeProvider,
) *Validator {
	return &Validator{
		hours:        hours,
		closures:     closures,
		conflicts:    conflicts,
		timeProvider: timeProvider,
	}
}

// Check возвращает Ok или Rejected с видом нарушения.
// Ошибка означает, что проверку не удалось выполнить.
func (v *Validator) Check(ctx context.Context, q domain.SlotQuery) (domain.Availability, error) {
	if !q.End.After(q.Start) {
		return domain.Availability{}, ErrInvalidRange
	}

	now := v.timeProvider.Now().In(q.Start.Location())
	if q.Start.Before(now) {
		return domain.Rejected(domain.ErrSlotInPast), nil
	}

	within, err := v.hours.IsWithin(ctx, q.CompanyID, q.Start, q.End)
	if err != nil {
		return domain.Availability{}, fmt.Errorf("%w: business hours: %w", ErrInternal, err)
	}
	if !within {
		return domain.Rejected(domain.ErrOutsideBusinessHours), nil
	}

	closed, err := v.closures.IsClosed(ctx, q.CompanyID, q.Start, q.End)
	if err != nil {
		return domain.Availability{}, fmt.Errorf("%w: closures: %w", ErrInternal, err)
	}
	if closed {
		return domain.Rejected(domain.ErrCompanyClosed), nil
	}

	taken, err := v.conflicts.HasOverlap(ctx, domain.OverlapQuery{
		CompanyID:            q.CompanyID,
		ProviderID:           q.ProviderID,
		Start:                q.Start,
		End:                  q.End,
		ExcludeAppointmentID: q.ExcludeAppointmentID,
	})
	if err != nil {
		return domain.Availability{}, fmt.Errorf("%w: conflicts: %w", ErrInternal, err)
	}
	if taken {
		return domain.Rejected(domain.ErrSlotTaken), nil
	}

	return domain.Available(), nil
}

// CheckClient проверяет, что у клиента нет пересекающейся записи
func (v *Validator) CheckClient(ctx context.Context, clientID uuid.UUID, start, end time.Time, exclude *uuid.UUID) (domain.Availability, error) {
	if !end.After(start) {
		return domain.Availability{}, ErrInvalidRange
	}

	busy, err := v.conflicts.HasOverlapForClient(ctx, domain.ClientOverlapQuery{
		ClientID:             clientID,
		Start:                start,
		End:                  end,
		ExcludeAppointmentID: exclude,
	})
	if err != nil {
		return domain.Availability{}, fmt.Errorf("%w: client conflicts: %w", ErrInternal, err)
	}
	if busy {
		return domain.Rejected(domain.ErrClientDoubleBooked), nil
	}
	return domain.Available(), nil
}

// Validate как Check, но нарушение возвращается ошибкой своего вида
func (v *Validator) Validate(ctx context.Context, q domain.SlotQuery) error {
	res, err := v.Check(ctx, q)
	if err != nil {
		return err
	}
	return res.Reason()
}

// ValidateClient как CheckClient, но нарушение возвращается как domain.ErrClientDoubleBooked
func (v *Validator) ValidateClient(ctx context.Context, clientID uuid.UUID, start, end time.Time, exclude *uuid.UUID) error {
	res, err := v.CheckClient(ctx, clientID, start, end, exclude)
	if err != nil {
		return err
	}
	return res.Reason()
}

// IsAvailable сводит любое нарушение правил к false.
// Ошибка возвращается только если проверку не удалось выполнить.
func (v *Validator) IsAvailable(ctx context.Context, q domain.SlotQuery) (bool, error) {
	res, err := v.Check(ctx, q)
	if err != nil {
		return false, err
	}
	return res.Ok(), nil
}
