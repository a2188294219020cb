package change_status

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	changeStatus "github.com/m04kA/SMC-AppointmentService/internal/usecase/change_status"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	got *changeStatus.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *changeStatus.Request) (*models.Appointment, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Appointment{ID: uuid.MustParse(req.AppointmentID), Status: strings.ToUpper(req.Status)}, nil
}

func serve(uc *fakeUseCase, id, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{appointmentId}/status", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodPatch)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPatch, "/api/v1/appointments/"+id+"/status", strings.NewReader(body)))
	return rec
}

func TestHandle_OK(t *testing.T) {
	id := uuid.New().String()
	uc := &fakeUseCase{}

	rec := serve(uc, id, `{"status":"cancelled"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, uc.got.AppointmentID)
	assert.Equal(t, "cancelled", uc.got.Status)

	var resp StatusChangeResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, id, resp.AppointmentID)
	assert.Equal(t, "CANCELLED", resp.NewStatus)
}

func TestHandle_Errors(t *testing.T) {
	rec := serve(&fakeUseCase{err: domain.ErrNotFound}, uuid.New().String(), `{"status":"CONFIRMED"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(&fakeUseCase{err: domain.ErrInvalidInput}, uuid.New().String(), `{"status":"DONE"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	uc := &fakeUseCase{}
	rec = serve(uc, uuid.New().String(), `not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Nil(t, uc.got)

	var resp handlers.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, handlers.CodeInvalidInput, resp.Code)
}
