package next_available_times

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
)

const (
	route = "POST /companies/{companyId}/next-available-times"

	msgInvalidRequestBody = "некорректное тело запроса"
	msgInvalidDate        = "некорректная дата, ожидается YYYY-MM-DD"
	msgNoTimes            = "свободное время не найдено"
)

type Handler struct {
	useCase NextAvailableTimesUseCase
	logger  Logger
}

func NewHandler(useCase NextAvailableTimesUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/companies/{companyId}/next-available-times
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	companyID := mux.Vars(r)["companyId"]

	var req NextAvailableTimesRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("%s - Invalid request body: company=%s, error=%v", route, companyID, err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest(companyID)
	if err != nil {
		h.logger.Warn("%s - Invalid date: company=%s, error=%v", route, companyID, err)
		handlers.RespondBadRequest(w, msgInvalidDate)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		handlers.RespondUseCaseError(w, h.logger, route, err)
		return
	}
	if result == nil {
		handlers.RespondNotFound(w, msgNoTimes)
		return
	}

	h.logger.Info("%s - company=%s, date=%s, times=%d", route, companyID, result.Date.Format("2006-01-02"), len(result.Times))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
