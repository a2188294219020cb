package create_appointment

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

// UseCase use case для создания записи
type UseCase struct {
	tenants         Tenants
	resolver        ProviderResolver
	validator       SlotValidator
	appointmentRepo AppointmentRepository
	notifier        CalendarNotifier
	txManager       TransactionManager
	metrics         Metrics
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	tenants Tenants,
	resolver ProviderResolver,
	validator SlotValidator,
	appointmentRepo AppointmentRepository,
	notifier CalendarNotifier,
	txManager TransactionManager,
	metrics Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		tenants:         tenants,
		resolver:        resolver,
		validator:       validator,
		appointmentRepo: appointmentRepo,
		notifier:        notifier,
		txManager:       txManager,
		metrics:         metrics,
		logger:          logger,
	}
}

// Execute выполняет use case создания записи.
// Проверка окна и вставка выполняются в одной сериализуемой транзакции,
// exclusion constraint на записях закрывает оставшуюся гонку.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*models.Appointment, error) {
	uc.logger.Info("CreateAppointment: company=%s, client=%s, services=%d, start=%s",
		req.CompanyID, req.ClientID, len(req.ServiceIDs), types.FormatLocal(req.Start))

	// 1. Валидация входных данных
	p, err := validateRequest(req)
	if err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		return nil, err
	}

	// 2. Компания и её часовой пояс
	_, loc, err := uc.tenants.Company(ctx, p.companyID)
	if err != nil {
		return nil, uc.fail("get company", err)
	}
	start := types.WallClockIn(req.Start, loc)

	// 3. Клиент и услуги
	client, err := uc.tenants.Client(ctx, p.companyID, p.clientID)
	if err != nil {
		return nil, uc.fail("get client", err)
	}

	services, err := uc.tenants.Services(ctx, p.companyID, p.serviceIDs)
	if err != nil {
		return nil, uc.fail("get services", err)
	}

	end := start.Add(time.Duration(domain.TotalDuration(services)) * time.Minute)

	var (
		result   *domain.Appointment
		provider *domain.Provider
	)

	// 4. Подбор специалиста, проверки и вставка в сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 4.1. Специалист: явный или наименее загруженный в день записи
		picked, err := uc.pickProvider(txCtx, p, start)
		if err != nil {
			return err
		}
		provider = picked

		// 4.2. Окно свободно у специалиста
		err = uc.validator.Validate(txCtx, domain.SlotQuery{
			CompanyID:  p.companyID,
			ProviderID: &picked.ID,
			Start:      start,
			End:        end,
		})
		if err != nil {
			uc.logger.Warn("CreateAppointment: slot %s provider=%s rejected: %v", types.FormatLocal(start), provider.ID, err)
			return uc.fail("validate slot", err)
		}

		// 4.3. У клиента нет пересекающейся записи
		if err := uc.validator.ValidateClient(txCtx, client.ID, start, end, nil); err != nil {
			uc.logger.Warn("CreateAppointment: client=%s rejected: %v", client.ID, err)
			return uc.fail("validate client", err)
		}

		// 4.4. Сохраняем запись с ценами на момент записи
		lines := domain.LinesFromServices(services)
		created, err := uc.appointmentRepo.Create(txCtx, &domain.Appointment{
			CompanyID:  p.companyID,
			ClientID:   client.ID,
			ProviderID: provider.ID,
			Status:     domain.StatusScheduled,
			Notes:      domain.BuildNotes(client.Name, start, lines),
			Start:      start,
			End:        end,
			Services:   lines,
		})
		if err != nil {
			switch {
			case errors.Is(err, appointmentRepo.ErrOverlap):
				uc.logger.Warn("CreateAppointment: provider=%s already booked at %s", provider.ID, types.FormatLocal(start))
				return domain.ErrSlotTaken
			case errors.Is(err, appointmentRepo.ErrClientOverlap):
				uc.logger.Warn("CreateAppointment: client=%s already booked at %s", client.ID, types.FormatLocal(start))
				return domain.ErrClientDoubleBooked
			}
			uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
			return fmt.Errorf("%w: failed to create appointment: %w", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateAppointment: successfully created appointment id=%s provider=%s", result.ID, provider.ID)
	uc.metrics.RecordAppointment("created")

	// 5. Уведомление календаря не откатывает запись
	if err := uc.notifier.Notify(ctx, calendar.NewEvent(result, provider, domain.CalendarCreate)); err != nil {
		uc.logger.Warn("CreateAppointment: calendar notification for id=%s ignored: %v", result.ID, err)
	}

	return models.FromDomain(result, loc), nil
}

// pickProvider определяет специальность записи и специалиста.
// Явно указанный специалист должен владеть этой специальностью.
func (uc *UseCase) pickProvider(ctx context.Context, p *parsedRequest, start time.Time) (*domain.Provider, error) {
	specialtyID, err := uc.resolver.ResolveSpecialty(ctx, p.companyID, p.specialtyID, p.serviceIDs)
	if err != nil {
		return nil, uc.fail("resolve specialty", err)
	}

	if p.providerID != nil {
		provider, err := uc.resolver.ProviderForSpecialty(ctx, p.companyID, *p.providerID, specialtyID)
		if err != nil {
			return nil, uc.fail("get provider", err)
		}
		return provider, nil
	}

	provider, err := uc.resolver.ProviderWithLeastLoad(ctx, p.companyID, specialtyID, start)
	if err != nil {
		return nil, uc.fail("pick provider", err)
	}
	if provider == nil {
		uc.logger.Warn("CreateAppointment: no provider with specialty=%s", specialtyID)
		return nil, domain.ErrNoProviderAvailable
	}

	return provider, nil
}

// fail пропускает бизнес-ошибки как есть и оборачивает остальные в ErrInternal,
// сохраняя цепочку для повтора транзакции
func (uc *UseCase) fail(step string, err error) error {
	if domain.IsBusinessError(err) {
		return err
	}
	uc.logger.Error("CreateAppointment: %s: %v", step, err)
	return fmt.Errorf("%w: %s: %w", ErrInternal, step, err)
}
