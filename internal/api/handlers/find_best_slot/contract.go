package find_best_slot

import (
	"context"

	findBestSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/find_best_slot"
)

type FindBestSlotUseCase interface {
	Execute(ctx context.Context, req *findBestSlot.Request) (*findBestSlot.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
