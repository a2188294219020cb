package handlers

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Машинные коды ошибок API
const (
	CodeInvalidIdentifier   = "INVALID_IDENTIFIER"
	CodeInvalidInput        = "INVALID_INPUT"
	CodeNotFound            = "NOT_FOUND"
	CodeSlotInPast          = "SLOT_IN_PAST"
	CodeOutsideHours        = "OUTSIDE_BUSINESS_HOURS"
	CodeCompanyClosed       = "COMPANY_CLOSED"
	CodeSlotTaken           = "SLOT_TAKEN"
	CodeClientDoubleBooked  = "CLIENT_DOUBLE_BOOKED"
	CodeNoProviderAvailable = "NO_PROVIDER_AVAILABLE"
	CodeAmbiguousSpecialty  = "AMBIGUOUS_SPECIALTY"
	CodeInternal            = "INTERNAL"
)

// Kind описание вида ошибки для ответа
type Kind struct {
	Status  int
	Code    string
	Message string
}

var kinds = []struct {
	err  error
	kind Kind
}{
	{domain.ErrInvalidIdentifier, Kind{http.StatusBadRequest, CodeInvalidIdentifier, "некорректный идентификатор"}},
	{domain.ErrInvalidInput, Kind{http.StatusBadRequest, CodeInvalidInput, "некорректные данные запроса"}},
	{domain.ErrNotFound, Kind{http.StatusNotFound, CodeNotFound, "объект не найден"}},
	{domain.ErrSlotInPast, Kind{http.StatusUnprocessableEntity, CodeSlotInPast, "выбранное время уже прошло"}},
	{domain.ErrOutsideBusinessHours, Kind{http.StatusUnprocessableEntity, CodeOutsideHours, "выбранное время вне рабочих часов"}},
	{domain.ErrCompanyClosed, Kind{http.StatusUnprocessableEntity, CodeCompanyClosed, "компания закрыта в выбранное время"}},
	{domain.ErrSlotTaken, Kind{http.StatusUnprocessableEntity, CodeSlotTaken, "выбранное время уже занято"}},
	{domain.ErrClientDoubleBooked, Kind{http.StatusUnprocessableEntity, CodeClientDoubleBooked, "у клиента уже есть запись на это время"}},
	{domain.ErrNoProviderAvailable, Kind{http.StatusUnprocessableEntity, CodeNoProviderAvailable, "нет свободного специалиста"}},
	{domain.ErrAmbiguousSpecialty, Kind{http.StatusUnprocessableEntity, CodeAmbiguousSpecialty, "услуги не относятся к одной специальности"}},
}

// KindOf вид ошибки use case. Все, что не распознано, считается внутренней ошибкой.
func KindOf(err error) Kind {
	for _, k := range kinds {
		if errors.Is(err, k.err) {
			return k.kind
		}
	}
	return Kind{http.StatusInternalServerError, CodeInternal, msgInternalError}
}

// CodeOf машинный код ошибки, пустой для nil
func CodeOf(err error) string {
	if err == nil {
		return ""
	}
	return KindOf(err).Code
}

// RespondUseCaseError отвечает по виду ошибки и логирует ее
func RespondUseCaseError(w http.ResponseWriter, logger Logger, route string, err error) {
	kind := KindOf(err)
	if kind.Status >= http.StatusInternalServerError {
		logger.Error("%s - internal error: %v", route, err)
	} else {
		logger.Warn("%s - %s: %v", route, kind.Code, err)
	}
	RespondError(w, kind.Status, kind.Code, kind.Message)
}
