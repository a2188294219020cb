package change_status

import (
	"context"

	changeStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/change_status"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/models"
)

type ChangeStatusUseCase interface {
	Execute(ctx context.Context, req *changeStatus.Request) (*models.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
