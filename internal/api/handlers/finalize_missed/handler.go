package finalize_missed

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	finalizeMissed "github.com/m04kA/SMC-AppointmentService/internal/usecase/finalize_missed"
)

const route = "POST /appointments/finalize-missed"

type Handler struct {
	useCase FinalizeMissedUseCase
	logger  Logger
}

func NewHandler(useCase FinalizeMissedUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/finalize-missed
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	result, err := h.useCase.Execute(r.Context(), &finalizeMissed.Request{Trigger: finalizeMissed.TriggerHTTP})
	if err != nil {
		handlers.RespondUseCaseError(w, h.logger, route, err)
		return
	}

	h.logger.Info("%s - cancelled=%d", route, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
