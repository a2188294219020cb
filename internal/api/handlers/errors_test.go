package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

func TestKindOf(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{fmt.Errorf("%w: companyId", domain.ErrInvalidIdentifier), http.StatusBadRequest, CodeInvalidIdentifier},
		{domain.ErrInvalidInput, http.StatusBadRequest, CodeInvalidInput},
		{domain.ErrNotFound, http.StatusNotFound, CodeNotFound},
		{domain.ErrSlotInPast, http.StatusUnprocessableEntity, CodeSlotInPast},
		{domain.ErrOutsideBusinessHours, http.StatusUnprocessableEntity, CodeOutsideHours},
		{domain.ErrCompanyClosed, http.StatusUnprocessableEntity, CodeCompanyClosed},
		{domain.ErrSlotTaken, http.StatusUnprocessableEntity, CodeSlotTaken},
		{domain.ErrClientDoubleBooked, http.StatusUnprocessableEntity, CodeClientDoubleBooked},
		{domain.ErrNoProviderAvailable, http.StatusUnprocessableEntity, CodeNoProviderAvailable},
		{domain.ErrAmbiguousSpecialty, http.StatusUnprocessableEntity, CodeAmbiguousSpecialty},
		{errors.New("connection refused"), http.StatusInternalServerError, CodeInternal},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			kind := KindOf(tt.err)
			assert.Equal(t, tt.status, kind.Status)
			assert.Equal(t, tt.code, kind.Code)
			assert.NotEmpty(t, kind.Message)
		})
	}

	assert.Empty(t, CodeOf(nil))
}

func TestRespondUseCaseError(t *testing.T) {
	rec := httptest.NewRecorder()
	RespondUseCaseError(rec, logger.Nop(), "TEST", fmt.Errorf("wrap: %w", domain.ErrSlotTaken))

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, CodeSlotTaken, body.Code)
}

func TestDecodeJSON_RejectsUnknownFields(t *testing.T) {
	var v struct {
		Name string `json:"name"`
	}

	req := httptest.NewRequest(http.MethodPost, "/", nil)
	assert.ErrorIs(t, DecodeJSON(req, &v), ErrEmptyBody)

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x","extra":1}`))
	assert.Error(t, DecodeJSON(req, &v))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"x"}`))
	require.NoError(t, DecodeJSON(req, &v))
	assert.Equal(t, "x", v.Name)
}
