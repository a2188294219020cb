package change_status

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	changeStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/change_status"
)

const (
	route = "PATCH /appointments/{appointmentId}/status"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgStatusChanged      = "статус записи изменен"
)

type Handler struct {
	useCase ChangeStatusUseCase
	logger  Logger
}

func NewHandler(useCase ChangeStatusUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/status
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]

	var req ChangeStatusRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: id=%s, error=%v", route, appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), &changeStatus.Request{
		AppointmentID: appointmentID,
		Status:        req.Status,
	})
	if err != nil {
		handlers.RespondUseCaseError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Status changed: id=%s, status=%s", route, result.ID, result.Status)
	handlers.RespondJSON(w, http.StatusOK, StatusChangeResponse{
		Message:       msgStatusChanged,
		AppointmentID: result.ID.String(),
		NewStatus:     result.Status,
	})
}
