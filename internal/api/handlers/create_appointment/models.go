package create_appointment

import (
	createAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/create_appointment"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	CompanyID   string   `json:"companyId"`
	ClientID    string   `json:"clientId"`
	ServiceIDs  []string `json:"serviceIds"`
	SpecialtyID *string  `json:"specialtyId,omitempty"`
	ProviderID  *string  `json:"providerId,omitempty"`
	Start       string   `json:"start"` // "2026-10-19T10:00:00", время компании
}

// ToUseCaseRequest конвертирует HTTP запрос в модель use case
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	start, err := types.ParseLocalDateTime(r.Start)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		CompanyID:   r.CompanyID,
		ClientID:    r.ClientID,
		ServiceIDs:  r.ServiceIDs,
		SpecialtyID: r.SpecialtyID,
		ProviderID:  r.ProviderID,
		Start:       start,
	}, nil
}
