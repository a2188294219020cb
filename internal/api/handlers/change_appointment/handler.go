package change_appointment

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	route = "PUT /appointments/{appointmentId}"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStart       = "некорректное время начала, ожидается YYYY-MM-DDTHH:MM[:SS]"
)

type Handler struct {
	useCase ChangeAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase ChangeAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PUT /api/v1/appointments/{appointmentId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID := mux.Vars(r)["appointmentId"]

	var req ChangeAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: id=%s, error=%v", route, appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(appointmentID)
	if err != nil {
		h.logger.Warn("%s - Invalid start: id=%s, error=%v", route, appointmentID, err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		handlers.RespondUseCaseError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - Appointment changed: id=%s", route, result.ID)
	handlers.RespondJSON(w, http.StatusOK, handlers.FromAppointment(result))
}
