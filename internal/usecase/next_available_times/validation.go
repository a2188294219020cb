package next_available_times

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/tenant"
)

// validateRequest валидирует входные данные и парсит идентификаторы
func validateRequest(req *Request) (uuid.UUID, []uuid.UUID, error) {
	if req.Date.IsZero() {
		return uuid.Nil, nil, fmt.Errorf("%w: date is required", domain.ErrInvalidInput)
	}
	if len(req.ServiceIDs) > domain.MaxServiceIDs {
		return uuid.Nil, nil, fmt.Errorf("%w: at most %d services allowed", domain.ErrInvalidInput, domain.MaxServiceIDs)
	}

	companyID, err := tenant.ParseID("companyId", req.CompanyID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	serviceIDs, err := tenant.ParseIDs("serviceIds", req.ServiceIDs)
	if err != nil {
		return uuid.Nil, nil, err
	}
	return companyID, serviceIDs, nil
}
