package finalize_missed

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	finalizeMissed "github.com/m04kA/SMC-AppointmentService/internal/usecase/finalize_missed"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	trigger string
	resp    *finalizeMissed.Response
	err     error
}

func (f *fakeUseCase) Execute(_ context.Context, req *finalizeMissed.Request) (*finalizeMissed.Response, error) {
	f.trigger = req.Trigger
	return f.resp, f.err
}

func TestHandle(t *testing.T) {
	ids := []uuid.UUID{uuid.New(), uuid.New()}
	uc := &fakeUseCase{resp: &finalizeMissed.Response{Appointments: []*models.Appointment{{ID: ids[0]}, {ID: ids[1]}}}}

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/finalize-missed", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, finalizeMissed.TriggerHTTP, uc.trigger)

	var resp FinalizeMissedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, 2, resp.TotalUpdated)
	assert.Equal(t, []string{ids[0].String(), ids[1].String()}, resp.UpdatedIDs)
}

func TestHandle_Empty(t *testing.T) {
	uc := &fakeUseCase{resp: &finalizeMissed.Response{}}

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/finalize-missed", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp FinalizeMissedResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Zero(t, resp.TotalUpdated)
	assert.Empty(t, resp.UpdatedIDs)
}

func TestHandle_Error(t *testing.T) {
	uc := &fakeUseCase{err: errors.New("db down")}

	rec := httptest.NewRecorder()
	NewHandler(uc, logger.Nop()).Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/finalize-missed", nil))
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
