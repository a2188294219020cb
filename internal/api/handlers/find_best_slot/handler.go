package find_best_slot

import (
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	route = "POST /appointments/best-slot"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidStart       = "некорректное время начала, ожидается YYYY-MM-DDTHH:MM[:SS]"
	msgNoSlot             = "свободное время не найдено"
)

type Handler struct {
	useCase FindBestSlotUseCase
	logger  Logger
}

func NewHandler(useCase FindBestSlotUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/best-slot
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req FindBestSlotRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("%s - Invalid start: %v", route, err)
		handlers.RespondBadRequest(w, msgInvalidStart)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		handlers.RespondUseCaseError(w, h.logger, route, err)
		return
	}
	if result == nil {
		h.logger.Info("%s - No slot found: company=%s", route, req.CompanyID)
		handlers.RespondNotFound(w, msgNoSlot)
		return
	}

	h.logger.Info("%s - Slot found: company=%s, provider=%s", route, req.CompanyID, result.ProviderID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
