package next_available_times

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/testutil/fixture"
	nextAvailableTimes "github.com/m04kA/SMC-AppointmentService/internal/usecase/next_available_times"
)

func router(w *fixture.World) *mux.Router {
	h := NewHandler(nextAvailableTimes.NewUseCase(w.Tenants, w.Engine, w.Logger), w.Logger)
	r := mux.NewRouter()
	r.HandleFunc("/api/v1/companies/{companyId}/next-available-times", h.Handle).Methods(http.MethodPost)
	return r
}

func call(r *mux.Router, companyID, body string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/companies/"+companyID+"/next-available-times", strings.NewReader(body))
	r.ServeHTTP(rec, req)
	return rec
}

func TestHandle_OK(t *testing.T) {
	w := fixture.New()
	w.Book(fixture.ProviderA, fixture.OtherClientID, fixture.At(fixture.Monday, 9, 0), 60)

	rec := call(router(w), fixture.CompanyID.String(), `{"serviceIds":["`+fixture.CleaningID.String()+`"],"date":"2026-10-19"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailableTimesResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.Equal(t, "2026-10-19", resp.Date)
	require.NotEmpty(t, resp.AvailableTimes)
	assert.Equal(t, "10:00", resp.AvailableTimes[0])
}

func TestHandle_Errors(t *testing.T) {
	w := fixture.New()
	r := router(w)

	assert.Equal(t, http.StatusBadRequest, call(r, fixture.CompanyID.String(), `{"date":"19.10.2026"}`).Code)
	assert.Equal(t, http.StatusBadRequest, call(r, "clinic", `{"date":"2026-10-19"}`).Code)
	assert.Equal(t, http.StatusNotFound, call(r, "00000000-0000-0000-0000-000000000999", `{"date":"2026-10-19"}`).Code)
}
