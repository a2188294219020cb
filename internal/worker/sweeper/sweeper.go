// Package sweeper периодически отменяет записи, дата которых прошла, а статус остался SCHEDULED
package sweeper

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	finalizeMissed "github.com/m04kA/SMC-AppointmentService/internal/usecase/finalize_missed"
)

// Sweeper запускает finalize missed по расписанию
type Sweeper struct {
	useCase FinalizeMissed
	spec    string
	timeout time.Duration
	cron    *cron.Cron
	logger  Logger
}

// New создает планировщик. Расписание считается в поясе loc.
func New(useCase FinalizeMissed, spec string, loc *time.Location, timeout time.Duration, logger Logger) *Sweeper {
	if loc == nil {
		loc = time.UTC
	}
	return &Sweeper{
		useCase: useCase,
		spec:    spec,
		timeout: timeout,
		cron:    cron.New(cron.WithLocation(loc)),
		logger:  logger,
	}
}

// Start регистрирует задачу и запускает планировщик
func (s *Sweeper) Start() error {
	if _, err := s.cron.AddFunc(s.spec, s.Run); err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSpec, s.spec, err)
	}
	s.cron.Start()
	s.logger.Info("Sweeper: started with spec=%q", s.spec)
	return nil
}

// Stop останавливает планировщик и ждет текущий запуск, но не дольше ctx
func (s *Sweeper) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Sweeper: stopped")
	case <-ctx.Done():
		s.logger.Warn("Sweeper: stop timed out: %v", ctx.Err())
	}
}

// Run один проход. Ошибки только логируются, следующий запуск по расписанию.
func (s *Sweeper) Run() {
	ctx := context.Background()
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	resp, err := s.useCase.Execute(ctx, &finalizeMissed.Request{Trigger: finalizeMissed.TriggerCron})
	if err != nil {
		s.logger.Error("Sweeper: finalize missed failed: %v", err)
		return
	}
	s.logger.Info("Sweeper: cancelled=%d", len(resp.Appointments))
}
