package next_available_times

import (
	"context"

	nextAvailableTimes "github.com/m04kA/SMC-AppointmentService/internal/usecase/next_available_times"
)

type NextAvailableTimesUseCase interface {
	Execute(ctx context.Context, req *nextAvailableTimes.Request) (*nextAvailableTimes.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
