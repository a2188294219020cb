package change_status

import (
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/tenant"
)

// validateRequest парсит идентификатор и статус
func validateRequest(req *Request) (uuid.UUID, domain.AppointmentStatus, error) {
	id, err := tenant.ParseID("appointmentId", req.AppointmentID)
	if err != nil {
		return uuid.Nil, "", err
	}

	status, err := domain.ParseAppointmentStatus(req.Status)
	if err != nil {
		return uuid.Nil, "", err
	}

	return id, status, nil
}
