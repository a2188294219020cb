package change_appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	changeAppointment "github.com/m04kA/SMC-AppointmentService/internal/usecase/change_appointment"
	"github.com/m04kA/SMC-AppointmentService/internal/usecase/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/logger"
)

type fakeUseCase struct {
	got *changeAppointment.Request
	err error
}

func (f *fakeUseCase) Execute(_ context.Context, req *changeAppointment.Request) (*models.Appointment, error) {
	f.got = req
	if f.err != nil {
		return nil, f.err
	}
	return &models.Appointment{ID: uuid.MustParse(req.AppointmentID), Start: req.Start, End: req.Start.Add(time.Hour)}, nil
}

func serve(uc *fakeUseCase, id, body string) *httptest.ResponseRecorder {
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/appointments/{appointmentId}", NewHandler(uc, logger.Nop()).Handle).Methods(http.MethodPut)

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/api/v1/appointments/"+id, strings.NewReader(body)))
	return rec
}

func TestHandle_PassesPathAndWallClock(t *testing.T) {
	id := uuid.New().String()
	uc := &fakeUseCase{}

	rec := serve(uc, id, `{"serviceIds":["a"],"start":"2026-10-20T14:30"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, id, uc.got.AppointmentID)
	assert.Equal(t, []string{"a"}, uc.got.ServiceIDs)
	assert.Equal(t, time.Date(2026, time.October, 20, 14, 30, 0, 0, time.UTC), uc.got.Start)
	assert.Contains(t, rec.Body.String(), `"start":"2026-10-20T14:30:00"`)
}

func TestHandle_Errors(t *testing.T) {
	assert.Equal(t, http.StatusBadRequest, serve(&fakeUseCase{}, "x", `{"start":"later"}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, serve(&fakeUseCase{err: domain.ErrCompanyClosed}, "x", `{"start":"2026-10-20T14:30"}`).Code)
	assert.Equal(t, http.StatusInternalServerError, serve(&fakeUseCase{err: context.DeadlineExceeded}, "x", `{"start":"2026-10-20T14:30"}`).Code)
}
