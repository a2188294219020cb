package sweeper

import (
	"context"

	finalizeMissed "github.com/m04kA/SMC-AppointmentService/internal/usecase/finalize_missed"
)

// FinalizeMissed use case отмены прошедших записей
type FinalizeMissed interface {
	Execute(ctx context.Context, req *finalizeMissed.Request) (*finalizeMissed.Response, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
