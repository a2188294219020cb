package check_availability

import (
	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	checkAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/check_availability"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

const (
	msgAvailable    = "время доступно для записи"
	msgNotAvailable = "время недоступно для записи"
)

// CheckAvailabilityRequest HTTP request model
type CheckAvailabilityRequest struct {
	CompanyID   string   `json:"companyId"`
	ClientID    *string  `json:"clientId,omitempty"`
	ServiceIDs  []string `json:"serviceIds"`
	SpecialtyID *string  `json:"specialtyId,omitempty"`
	ProviderID  *string  `json:"providerId,omitempty"`
	Start       string   `json:"start"`
}

// AvailabilityResponse HTTP response model
type AvailabilityResponse struct {
	Available     bool    `json:"available"`
	Reason        string  `json:"reason,omitempty"`
	Message       string  `json:"message"`
	ProviderID    *string `json:"providerId,omitempty"`
	RequestedTime string  `json:"requestedTime"`
	End           string  `json:"end"`
}

func (r *CheckAvailabilityRequest) ToUseCaseRequest() (*checkAvailability.Request, error) {
	start, err := types.ParseLocalDateTime(r.Start)
	if err != nil {
		return nil, err
	}

	return &checkAvailability.Request{
		CompanyID:   r.CompanyID,
		ClientID:    r.ClientID,
		ServiceIDs:  r.ServiceIDs,
		SpecialtyID: r.SpecialtyID,
		ProviderID:  r.ProviderID,
		Start:       start,
	}, nil
}

func FromUseCaseResponse(resp *checkAvailability.Response) AvailabilityResponse {
	out := AvailabilityResponse{
		Available:     resp.Available,
		Reason:        handlers.CodeOf(resp.Reason),
		Message:       msgNotAvailable,
		RequestedTime: types.FormatLocal(resp.Start),
		End:           types.FormatLocal(resp.End),
	}
	if resp.Available {
		out.Message = msgAvailable
	}
	if resp.ProviderID != nil {
		id := resp.ProviderID.String()
		out.ProviderID = &id
	}
	return out
}
