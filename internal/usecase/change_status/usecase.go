package change_status

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/models"
)

// UseCase use case для смены статуса записи.
// Переход не проверяется, кроме существования записи.
type UseCase struct {
	tenants         Tenants
	appointmentRepo AppointmentRepository
	providerRepo    ProviderRepository
	notifier        CalendarNotifier
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	tenants Tenants,
	appointmentRepo AppointmentRepository,
	providerRepo ProviderRepository,
	notifier CalendarNotifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		tenants:         tenants,
		appointmentRepo: appointmentRepo,
		providerRepo:    providerRepo,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case смены статуса
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.Appointment, error) {
	uc.logger.Info("ChangeStatus: id=%s, status=%s", req.AppointmentID, req.Status)

	// 1. Валидация входных данных
	id, status, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ChangeStatus: validation failed: %v", err)
		return nil, err
	}

	var result *domain.Appointment

	// 2. Чтение и смена статуса в одной транзакции
	err = uc.txManager.Do(ctx, func(txCtx context.Context) error {
		a, err := uc.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("ChangeStatus: appointment id=%s not found", id)
				return fmt.Errorf("%w: appointment id=%s", domain.ErrNotFound, id)
			}
			uc.logger.Error("ChangeStatus: failed to get appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: failed to get appointment: %w", ErrInternal, err)
		}

		if err := uc.appointmentRepo.UpdateStatus(txCtx, id, status); err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrOverlap):
				// возврат отмененной записи в занятое время
				uc.logger.Warn("ChangeStatus: id=%s overlaps provider appointment", id)
				return domain.ErrSlotTaken
			case errors.Is(err, appointmentRepo.ErrClientOverlap):
				uc.logger.Warn("ChangeStatus: id=%s overlaps client appointment", id)
				return domain.ErrClientDoubleBooked
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return fmt.Errorf("%w: appointment id=%s", domain.ErrNotFound, id)
			}
			uc.logger.Error("ChangeStatus: failed to update status id=%s: %v", id, err)
			return fmt.Errorf("%w: failed to update status: %w", ErrInternal, err)
		}

		a.Status = status
		result = a
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ChangeStatus: appointment id=%s is now %s", result.ID, status)
	uc.metrics.RecordAppointment("status_" + strings.ToLower(string(status)))

	// 3. Отмена уходит в календарь, ошибка уведомления игнорируется
	if status == domain.StatusCancelled {
		uc.notifyCancel(ctx, result)
	}

	var loc *time.Location
	if _, companyLoc, err := uc.tenants.Company(ctx, result.CompanyID); err == nil {
		loc = companyLoc
	}

	return models.FromDomain(result, loc), nil
}

func (uc *UseCase) notifyCancel(ctx context.Context, a *domain.Appointment) {
	provider, err := uc.providerRepo.GetByID(ctx, a.ProviderID)
	if err != nil {
		uc.logger.Warn("ChangeStatus: calendar notification for id=%s skipped: %v", a.ID, err)
		return
	}
	if err := uc.notifier.Notify(ctx, calendar.NewEvent(a, provider, domain.CalendarCancel)); err != nil {
		uc.logger.Warn("ChangeStatus: calendar notification for id=%s ignored: %v", a.ID, err)
	}
}
