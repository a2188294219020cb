package find_best_slot

import (
	findBestSlot "github.com/m04kA/SMC-AppointmentService/internal/usecase/find_best_slot"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// FindBestSlotRequest HTTP request model. Без start ищется первое свободное время.
type FindBestSlotRequest struct {
	CompanyID   string   `json:"companyId"`
	ServiceIDs  []string `json:"serviceIds"`
	SpecialtyID *string  `json:"specialtyId,omitempty"`
	ProviderID  *string  `json:"providerId,omitempty"`
	Start       *string  `json:"start,omitempty"`
}

// BestSlotResponse HTTP response model
type BestSlotResponse struct {
	ProviderID   string `json:"providerId"`
	ProviderName string `json:"providerName"`
	StartTime    string `json:"startTime"`
	EndTime      string `json:"endTime"`
}

func (r *FindBestSlotRequest) ToUseCaseRequest() (*findBestSlot.Request, error) {
	req := &findBestSlot.Request{
		CompanyID:   r.CompanyID,
		ServiceIDs:  r.ServiceIDs,
		SpecialtyID: r.SpecialtyID,
		ProviderID:  r.ProviderID,
	}
	if r.Start != nil && *r.Start != "" {
		start, err := types.ParseLocalDateTime(*r.Start)
		if err != nil {
			return nil, err
		}
		req.Start = &start
	}
	return req, nil
}

func FromUseCaseResponse(resp *findBestSlot.Response) BestSlotResponse {
	return BestSlotResponse{
		ProviderID:   resp.ProviderID.String(),
		ProviderName: resp.ProviderName,
		StartTime:    types.FormatLocal(resp.Start),
		EndTime:      types.FormatLocal(resp.End),
	}
}
