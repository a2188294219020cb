package sweeper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	finalizeMissed "github.com/m04kA/SMC-AppointmentService/internal/usecase/finalize_missed"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	triggers []string
	err      error
}

func (f *fakeUseCase) Execute(ctx context.Context, req *finalizeMissed.Request) (*finalizeMissed.Response, error) {
	f.triggers = append(f.triggers, req.Trigger)
	if _, ok := ctx.Deadline(); !ok {
		return nil, errors.New("no deadline")
	}
	if f.err != nil {
		return nil, f.err
	}
	return &finalizeMissed.Response{Appointments: []*models.Appointment{{ID: uuid.New()}}}, nil
}

func TestRun_UsesCronTrigger(t *testing.T) {
	uc := &fakeUseCase{}
	s := New(uc, "0 2 * * *", nil, time.Minute, logger.Nop())

	s.Run()
	uc.err = errors.New("db down")
	s.Run()

	assert.Equal(t, []string{finalizeMissed.TriggerCron, finalizeMissed.TriggerCron}, uc.triggers)
}

func TestStart_InvalidSpec(t *testing.T) {
	s := New(&fakeUseCase{}, "every night", time.UTC, time.Minute, logger.Nop())
	assert.ErrorIs(t, s.Start(), ErrInvalidSpec)
}

func TestStartStop(t *testing.T) {
	s := New(&fakeUseCase{}, "@daily", time.UTC, time.Minute, logger.Nop())
	require.NoError(t, s.Start())

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	s.Stop(ctx)
}
