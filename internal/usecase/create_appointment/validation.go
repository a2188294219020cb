package create_appointment

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/tenant"
)

type parsedRequest struct {
	companyID   uuid.UUID
	clientID    uuid.UUID
	serviceIDs  []uuid.UUID
	specialtyID *uuid.UUID
	providerID  *uuid.UUID
}

// validateRequest валидирует входные данные и парсит идентификаторы
func validateRequest(req *Request) (*parsedRequest, error) {
	if req.Start.IsZero() {
		return nil, fmt.Errorf("%w: start is required", domain.ErrInvalidInput)
	}
	if len(req.ServiceIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one service is required", domain.ErrInvalidInput)
	}
	if len(req.ServiceIDs) > domain.MaxServiceIDs {
		return nil, fmt.Errorf("%w: at most %d services allowed", domain.ErrInvalidInput, domain.MaxServiceIDs)
	}

	var (
		p   parsedRequest
		err error
	)
	if p.companyID, err = tenant.ParseID("companyId", req.CompanyID); err != nil {
		return nil, err
	}
	if p.clientID, err = tenant.ParseID("clientId", req.ClientID); err != nil {
		return nil, err
	}
	if p.serviceIDs, err = tenant.ParseIDs("serviceIds", req.ServiceIDs); err != nil {
		return nil, err
	}
	if p.specialtyID, err = tenant.ParseOptionalID("specialtyId", req.SpecialtyID); err != nil {
		return nil, err
	}
	if p.providerID, err = tenant.ParseOptionalID("providerId", req.ProviderID); err != nil {
		return nil, err
	}

	return &p, nil
}
