package check_availability

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/api/handlers"
	"github.com/m04kA/SMC-AppointmentService/internal/testutil/fixture"
	checkAvailability "github.com/m04kA/SMC-AppointmentService/internal/usecase/check_availability"
)

func check(w *fixture.World, start string) *httptest.ResponseRecorder {
	h := NewHandler(checkAvailability.NewUseCase(w.Tenants, w.Resolver, w.Validator, w.Logger), w.Logger)

	body := `{"companyId":"` + fixture.CompanyID.String() +
		`","clientId":"` + fixture.ClientID.String() +
		`","serviceIds":["` + fixture.WhiteningID.String() +
		`"],"providerId":"` + fixture.ProviderA.String() +
		`","start":"` + start + `"}`

	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/availability", strings.NewReader(body)))
	return rec
}

func TestHandle_Available(t *testing.T) {
	rec := check(fixture.New(), "2026-10-19T11:00:00")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.True(t, resp.Available)
	assert.Empty(t, resp.Reason)
	assert.Equal(t, "2026-10-19T11:00:00", resp.RequestedTime)
	assert.Equal(t, "2026-10-19T12:00:00", resp.End)
	require.NotNil(t, resp.ProviderID)
	assert.Equal(t, fixture.ProviderA.String(), *resp.ProviderID)
}

func TestHandle_RejectedIsNotAnError(t *testing.T) {
	w := fixture.New()
	w.Book(fixture.ProviderB, fixture.ClientID, fixture.At(fixture.Monday, 11, 30), 30)

	rec := check(w, "2026-10-19T11:00:00")
	require.Equal(t, http.StatusOK, rec.Code)

	var resp AvailabilityResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	assert.False(t, resp.Available)
	assert.Equal(t, handlers.CodeClientDoubleBooked, resp.Reason)
}

func TestHandle_UnknownCompany(t *testing.T) {
	w := fixture.New()
	h := NewHandler(checkAvailability.NewUseCase(w.Tenants, w.Resolver, w.Validator, w.Logger), w.Logger)

	body := `{"companyId":"00000000-0000-0000-0000-000000000999","serviceIds":[],"start":"2026-10-19T11:00"}`
	rec := httptest.NewRecorder()
	h.Handle(rec, httptest.NewRequest(http.MethodPost, "/api/v1/appointments/availability", strings.NewReader(body)))

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
