package change_appointment

import (
	changeAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/change_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// ChangeAppointmentRequest HTTP request model
type ChangeAppointmentRequest struct {
	ServiceIDs []string `json:"serviceIds"`
	Start      string   `json:"start"`
}

func (r *ChangeAppointmentRequest) ToUseCaseRequest(appointmentID string) (*changeAppointment.Request, error) {
	start, err := types.ParseLocalDateTime(r.Start)
	if err != nil {
		return nil, err
	}

	return &changeAppointment.Request{
		AppointmentID: appointmentID,
		ServiceIDs:    r.ServiceIDs,
		Start:         start,
	}, nil
}
