package change_appointment

import (
	"context"

	changeAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/change_appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/models"
)

type ChangeAppointmentUseCase interface {
	Execute(ctx context.Context, req *changeAppointment.Request) (*models.Appointment, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
