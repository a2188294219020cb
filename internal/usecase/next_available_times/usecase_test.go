package next_available_times

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/testutil/fixture"
)

func TestExecute_SkipsCompanyWideConflicts(t *testing.T) {
	w := fixture.New()
	w.Book(fixture.ProviderA, fixture.OtherClientID, fixture.At(fixture.Monday, 9, 0), 60)
	uc := NewUseCase(w.Tenants, w.Engine, w.Logger)

	got, err := uc.Execute(context.Background(), &Request{
		CompanyID:  fixture.CompanyID.String(),
		ServiceIDs: []string{fixture.WhiteningID.String()},
		Date:       fixture.Monday,
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, fixture.Monday, got.Date)
	assert.Equal(t, []string{"10:00", "11:00", "12:00", "13:00", "14:00", "15:00", "16:00", "17:00"}, got.Times)
}

func TestExecute_WeekendMovesToMonday(t *testing.T) {
	w := fixture.New()
	w.Clock.At = fixture.At(fixture.Monday.AddDate(0, 0, -3), 7, 0)
	uc := NewUseCase(w.Tenants, w.Engine, w.Logger)

	got, err := uc.Execute(context.Background(), &Request{
		CompanyID: fixture.CompanyID.String(),
		Date:      fixture.Monday.AddDate(0, 0, -2),
	})
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, fixture.Monday, got.Date)
	assert.Equal(t, "09:00", got.Times[0])
}

func TestExecute_NothingFound(t *testing.T) {
	w := fixture.New()
	for day := 0; day < domain.NextAvailableDaysAhead; day++ {
		w.Store.AddClosure(domain.Closure{CompanyID: fixture.CompanyID, Date: fixture.Monday.AddDate(0, 0, day)})
	}
	uc := NewUseCase(w.Tenants, w.Engine, w.Logger)

	got, err := uc.Execute(context.Background(), &Request{
		CompanyID: fixture.CompanyID.String(),
		Date:      fixture.Monday,
	})
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestExecute_Errors(t *testing.T) {
	w := fixture.New()
	uc := NewUseCase(w.Tenants, w.Engine, w.Logger)

	_, err := uc.Execute(context.Background(), &Request{CompanyID: fixture.CompanyID.String()})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.Execute(context.Background(), &Request{CompanyID: "x", Date: fixture.Monday})
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)

	_, err = uc.Execute(context.Background(), &Request{
		CompanyID:  fixture.CompanyID.String(),
		ServiceIDs: []string{fixture.SpecialtyID.String()},
		Date:       fixture.Monday,
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
