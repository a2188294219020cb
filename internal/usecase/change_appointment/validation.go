package change_appointment

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/tenant"
)

// validateRequest валидирует входные данные и парсит идентификаторы
func validateRequest(req *Request) (uuid.UUID, []uuid.UUID, error) {
	if req.Start.IsZero() {
		return uuid.Nil, nil, fmt.Errorf("%w: start is required", domain.ErrInvalidInput)
	}
	if len(req.ServiceIDs) == 0 {
		return uuid.Nil, nil, fmt.Errorf("%w: at least one service is required", domain.ErrInvalidInput)
	}
	if len(req.ServiceIDs) > domain.MaxServiceIDs {
		return uuid.Nil, nil, fmt.Errorf("%w: at most %d services allowed", domain.ErrInvalidInput, domain.MaxServiceIDs)
	}

	id, err := tenant.ParseID("appointmentId", req.AppointmentID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	serviceIDs, err := tenant.ParseIDs("serviceIds", req.ServiceIDs)
	if err != nil {
		return uuid.Nil, nil, err
	}

	return id, serviceIDs, nil
}
