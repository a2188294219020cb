package change_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AppointmentService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// UseCase use case для изменения времени и услуг записи
type UseCase struct {
	tenants         Tenants
	validator       SlotValidator
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
	validator SlotValidator,
	appointmentRepo AppointmentRepository,
	providerRepo ProviderRepository,
	notifier CalendarNotifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		tenants:         tenants,
		validator:       validator,
		appointmentRepo: appointmentRepo,
		providerRepo:    providerRepo,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case изменения записи.
// Доступность проверяется только если изменилось время начала,
// собственная запись при проверке не учитывается.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.Appointment, error) {
	uc.logger.Info("ChangeAppointment: id=%s, services=%d, start=%s",
		req.AppointmentID, len(req.ServiceIDs), types.FormatLocal(req.Start))

	// 1. Валидация входных данных
	id, serviceIDs, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("ChangeAppointment: validation failed: %v", err)
		return nil, err
	}

	var (
		result *domain.Appointment
		loc    *time.Location
	)

	// 2. Все чтения и запись в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 2.1. Текущая запись (с блокировкой строки)
		current, err := uc.appointmentRepo.GetByID(txCtx, id)
		if err != nil {
			if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
				uc.logger.Warn("ChangeAppointment: appointment id=%s not found", id)
				return fmt.Errorf("%w: appointment id=%s", domain.ErrNotFound, id)
			}
			return uc.fail("get appointment", err)
		}

		// 2.2. Пояс компании, клиент и новые услуги
		_, companyLoc, err := uc.tenants.Company(txCtx, current.CompanyID)
		if err != nil {
			return uc.fail("get company", err)
		}
		loc = companyLoc

		client, err := uc.tenants.Client(txCtx, current.CompanyID, current.ClientID)
		if err != nil {
			return uc.fail("get client", err)
		}

		services, err := uc.tenants.Services(txCtx, current.CompanyID, serviceIDs)
		if err != nil {
			return uc.fail("get services", err)
		}

		start := types.WallClockIn(req.Start, loc)
		end := start.Add(time.Duration(domain.TotalDuration(services)) * time.Minute)

		// 2.3. Повторная проверка только при переносе
		if !start.Equal(current.Start) {
			err = uc.validator.Validate(txCtx, domain.SlotQuery{
				CompanyID:            current.CompanyID,
				ProviderID:           &current.ProviderID,
				Start:                start,
				End:                  end,
				ExcludeAppointmentID: &current.ID,
			})
			if err != nil {
				uc.logger.Warn("ChangeAppointment: slot %s rejected for id=%s: %v", types.FormatLocal(start), id, err)
				return uc.fail("validate slot", err)
			}

			if err := uc.validator.ValidateClient(txCtx, current.ClientID, start, end, &current.ID); err != nil {
				uc.logger.Warn("ChangeAppointment: client=%s rejected: %v", current.ClientID, err)
				return uc.fail("validate client", err)
			}
		} else {
			uc.logger.Info("ChangeAppointment: start unchanged for id=%s, availability check skipped", id)
		}

		// 2.4. Новые время, заметки и услуги по текущим ценам
		lines := domain.LinesFromServices(services)
		current.Start = start
		current.End = end
		current.Services = lines
		current.Notes = domain.BuildNotes(client.Name, start, lines)

		updated, err := uc.appointmentRepo.Update(txCtx, current)
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrOverlap):
				return domain.ErrSlotTaken
			case errors.Is(err, appointmentRepo.ErrClientOverlap):
				return domain.ErrClientDoubleBooked
			case errors.Is(err, appointmentRepo.ErrAppointmentNotFound):
				return fmt.Errorf("%w: appointment id=%s", domain.ErrNotFound, id)
			}
			uc.logger.Error("ChangeAppointment: failed to update appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: failed to update appointment: %w", ErrInternal, err)
		}

		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("ChangeAppointment: successfully changed appointment id=%s", result.ID)
	uc.metrics.RecordAppointment("changed")

	// 3. Уведомление календаря не откатывает изменение
	uc.notify(ctx, result)

	return models.FromDomain(result, loc), nil
}

func (uc *UseCase) notify(ctx context.Context, a *domain.Appointment) {
	provider, err := uc.providerRepo.GetByID(ctx, a.ProviderID)
	if err != nil {
		uc.logger.Warn("ChangeAppointment: calendar notification for id=%s skipped: %v", a.ID, err)
		return
	}
	if err := uc.notifier.Notify(ctx, calendar.NewEvent(a, provider, domain.CalendarUpdate)); err != nil {
		uc.logger.Warn("ChangeAppointment: calendar notification for id=%s ignored: %v", a.ID, err)
	}
}

// fail пропускает бизнес-ошибки как есть и оборачивает остальные в ErrInternal
func (uc *UseCase) fail(step string, err error) error {
	if domain.IsBusinessError(err) {
		return err
	}
	uc.logger.Error("ChangeAppointment: %s: %v", step, err)
	return fmt.Errorf("%w: %s: %w", ErrInternal, step, err)
}
