package next_available_times

import (
	nextAvailableTimes "github.com/m04kA/SMC-AppointmentService/internal/usecase/next_available_times"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// NextAvailableTimesRequest HTTP request model
type NextAvailableTimesRequest struct {
	ServiceIDs []string `json:"serviceIds"`
	Date       string   `json:"date"` // "2026-10-19"
}

// AvailableTimesResponse HTTP response model
type AvailableTimesResponse struct {
	Date           string   `json:"date"`
	AvailableTimes []string `json:"availableTimes"`
}

func (r *NextAvailableTimesRequest) ToUseCaseRequest(companyID string) (*nextAvailableTimes.Request, error) {
	date, err := types.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}

	return &nextAvailableTimes.Request{
		CompanyID:  companyID,
		ServiceIDs: r.ServiceIDs,
		Date:       date,
	}, nil
}

func FromUseCaseResponse(resp *nextAvailableTimes.Response) AvailableTimesResponse {
	return AvailableTimesResponse{
		Date:           resp.Date.Format(types.DateFormat),
		AvailableTimes: resp.Times,
	}
}
