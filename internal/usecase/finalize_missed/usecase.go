package finalize_missed

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/models"
)

// UseCase переводит в CANCELLED все записи SCHEDULED, дата начала которых
// раньше сегодняшней в поясе компании
type UseCase struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	timeProvider    TimeProvider
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	timeProvider TimeProvider,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		timeProvider:    timeProvider,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет отмену просроченных записей одной пачкой
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	trigger := req.Trigger
	if trigger == "" {
		trigger = TriggerHTTP
	}
	now := uc.timeProvider.Now()
	uc.logger.Info("FinalizeMissed: trigger=%s, now=%s", trigger, now.Format("2006-01-02T15:04:05Z07:00"))

	var missed []*domain.Appointment

	err := uc.txManager.Do(ctx, func(txCtx context.Context) error {
		// 1. Просроченные записи
		past, err := uc.appointmentRepo.GetPastScheduled(txCtx, now)
		if err != nil {
			uc.logger.Error("FinalizeMissed: failed to get past appointments: %v", err)
			return fmt.Errorf("%w: failed to get past appointments: %w", ErrInternal, err)
		}
		if len(past) == 0 {
			return nil
		}

		// 2. Отмена одной пачкой
		ids := make([]uuid.UUID, 0, len(past))
		for _, a := range past {
			ids = append(ids, a.ID)
		}

		affected, err := uc.appointmentRepo.CancelBatch(txCtx, ids)
		if err != nil {
			uc.logger.Error("FinalizeMissed: failed to cancel %d appointments: %v", len(ids), err)
			return fmt.Errorf("%w: failed to cancel appointments: %w", ErrInternal, err)
		}
		if int(affected) != len(ids) {
			uc.logger.Warn("FinalizeMissed: cancelled %d of %d appointments", affected, len(ids))
		}

		for _, a := range past {
			a.Status = domain.StatusCancelled
		}
		missed = past
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.metrics.AddSweepCancelled(trigger, len(missed))
	uc.logger.Info("FinalizeMissed: cancelled %d appointments", len(missed))

	resp := &Response{Appointments: make([]*models.Appointment, 0, len(missed))}
	for _, a := range missed {
		resp.Appointments = append(resp.Appointments, models.FromDomain(a, nil))
	}
	return resp, nil
}
