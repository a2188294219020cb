package finalize_missed

import (
	"context"

	finalizeMissed "github.com/m04kA/SMC-AppointmentService/internal/usecase/finalize_missed"
)

type FinalizeMissedUseCase interface {
	Execute(ctx context.Context, req *finalizeMissed.Request) (*finalizeMissed.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
