package find_best_slot

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/testutil/fixture"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

func newUseCase(w *fixture.World) *UseCase {
	return NewUseCase(w.Tenants, w.Resolver, w.Engine, w.Store.Providers(), w.Logger)
}

func TestExecute_Exhaustive(t *testing.T) {
	w := fixture.New()
	w.Book(fixture.ProviderA, fixture.OtherClientID, fixture.At(fixture.Monday, 9, 0), 60)

	got, err := newUseCase(w).Execute(context.Background(), &Request{
		CompanyID:  fixture.CompanyID.String(),
		ServiceIDs: []string{fixture.WhiteningID.String()},
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, fixture.ProviderB, got.ProviderID)
	assert.Equal(t, "Dr. B", got.ProviderName)
	assert.Equal(t, fixture.At(fixture.Monday, 9, 0), got.Start)

	// найденный слот проходит проверку с теми же параметрами
	err = w.Validator.Validate(context.Background(), domain.SlotQuery{
		CompanyID:  fixture.CompanyID,
		ProviderID: &got.ProviderID,
		Start:      got.Start,
		End:        got.End,
	})
	assert.NoError(t, err)
}

func TestExecute_TimeAndProviderFallsBack(t *testing.T) {
	w := fixture.New()
	w.Book(fixture.ProviderA, fixture.OtherClientID, fixture.At(fixture.Monday, 10, 0), 60)
	start := fixture.At(fixture.Monday, 10, 0)

	got, err := newUseCase(w).Execute(context.Background(), &Request{
		CompanyID:  fixture.CompanyID.String(),
		ServiceIDs: []string{fixture.WhiteningID.String()},
		ProviderID: ptr.Ptr(fixture.ProviderA.String()),
		Start:      &start,
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, fixture.ProviderA, got.ProviderID)
	assert.Equal(t, fixture.At(fixture.Monday, 9, 0), got.Start)
}

func TestExecute_TimeOnlyNoProvider(t *testing.T) {
	w := fixture.New()
	w.Book(fixture.ProviderA, fixture.OtherClientID, fixture.At(fixture.Monday, 10, 0), 60)
	w.Book(fixture.ProviderB, fixture.ClientID, fixture.At(fixture.Monday, 10, 0), 60)
	start := fixture.At(fixture.Monday, 10, 0)

	_, err := newUseCase(w).Execute(context.Background(), &Request{
		CompanyID:  fixture.CompanyID.String(),
		ServiceIDs: []string{fixture.WhiteningID.String()},
		Start:      &start,
	})
	assert.ErrorIs(t, err, domain.ErrNoProviderAvailable)
}

func TestExecute_NothingWithinHorizon(t *testing.T) {
	w := fixture.New()
	for day := 0; day < domain.SearchHorizonDays; day++ {
		w.Store.AddClosure(domain.Closure{CompanyID: fixture.CompanyID, Date: fixture.Monday.AddDate(0, 0, day)})
	}

	got, err := newUseCase(w).Execute(context.Background(), &Request{
		CompanyID:  fixture.CompanyID.String(),
		ServiceIDs: []string{fixture.WhiteningID.String()},
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestExecute_ProviderMustHoldSpecialty(t *testing.T) {
	w := fixture.New()
	cardio := uuid.New()
	cardiologist := uuid.New()
	w.Store.AddSpecialty(domain.Specialty{ID: cardio, CompanyID: fixture.CompanyID, Name: "Cardio"})
	w.Store.AddProvider(domain.Provider{ID: cardiologist, CompanyID: fixture.CompanyID, Name: "Dr. C", Active: true}, cardio)
	start := fixture.At(fixture.Monday, 10, 0)

	tests := []struct {
		name string
		req  *Request
		err  error
	}{
		{
			name: "время и чужой специалист",
			req: &Request{
				ServiceIDs: []string{fixture.WhiteningID.String()},
				ProviderID: ptr.Ptr(cardiologist.String()),
				Start:      &start,
			},
			err: domain.ErrNoProviderAvailable,
		},
		{
			name: "только чужой специалист",
			req: &Request{
				ServiceIDs: []string{fixture.WhiteningID.String()},
				ProviderID: ptr.Ptr(cardiologist.String()),
			},
			err: domain.ErrNoProviderAvailable,
		},
		{
			name: "неизвестная специальность",
			req: &Request{
				SpecialtyID: ptr.Ptr(uuid.NewString()),
				ProviderID:  ptr.Ptr(fixture.ProviderA.String()),
			},
			err: domain.ErrNotFound,
		},
		{
			name: "свой специалист",
			req: &Request{
				ServiceIDs: []string{fixture.WhiteningID.String()},
				ProviderID: ptr.Ptr(fixture.ProviderA.String()),
				Start:      &start,
			},
			err: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.req.CompanyID = fixture.CompanyID.String()
			got, err := newUseCase(w).Execute(context.Background(), tt.req)
			if tt.err == nil {
				require.NoError(t, err)
				require.NotNil(t, got)
				assert.Equal(t, fixture.ProviderA, got.ProviderID)
				return
			}
			assert.ErrorIs(t, err, tt.err)
			assert.Nil(t, got)
		})
	}
}

func TestExecute_AmbiguousSpecialtyWithProvider(t *testing.T) {
	w := fixture.New()
	consult := uuid.New()
	w.Store.AddService(domain.Service{ID: consult, CompanyID: fixture.CompanyID, Name: "Consult", DurationMinutes: 30})

	_, err := newUseCase(w).Execute(context.Background(), &Request{
		CompanyID:  fixture.CompanyID.String(),
		ServiceIDs: []string{consult.String()},
		ProviderID: ptr.Ptr(fixture.ProviderA.String()),
	})
	assert.ErrorIs(t, err, domain.ErrAmbiguousSpecialty)
}

func TestExecute_InvalidInput(t *testing.T) {
	w := fixture.New()

	_, err := newUseCase(w).Execute(context.Background(), &Request{CompanyID: fixture.CompanyID.String()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = newUseCase(w).Execute(context.Background(), &Request{CompanyID: "company", ServiceIDs: []string{fixture.WhiteningID.String()}})
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
}
