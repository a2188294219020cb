package finalize_missed

import (
	"fmt"

	finalizeMissed "github.com/m04kA/SMC-AppointmentService/internal/usecase/finalize_missed"
)

// FinalizeMissedResponse HTTP response model
type FinalizeMissedResponse struct {
	Message      string   `json:"message"`
	TotalUpdated int      `json:"totalUpdated"`
	UpdatedIDs   []string `json:"updatedIds"`
}

func FromUseCaseResponse(resp *finalizeMissed.Response) FinalizeMissedResponse {
	ids := make([]string, 0, len(resp.Appointments))
	for _, a := range resp.Appointments {
		ids = append(ids, a.ID.String())
	}

	message := "нет прошедших записей для отмены"
	if len(ids) > 0 {
		message = fmt.Sprintf("отменено прошедших записей: %d", len(ids))
	}

	return FinalizeMissedResponse{
		Message:      message,
		TotalUpdated: len(ids),
		UpdatedIDs:   ids,
	}
}
