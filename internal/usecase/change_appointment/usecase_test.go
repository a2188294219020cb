package change_appointment

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/internal/integrations/calendar"
	"github.com/m04kA/SMC-AppointmentService/internal/testutil/fixture"
	"github.com/m04kA/SMC-AppointmentService/pkg/metrics"
	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
)

type fakeNotifier struct {
	events []calendar.Event
}

func (n *fakeNotifier) Notify(_ context.Context, ev calendar.Event) error {
	n.events = append(n.events, ev)
	return nil
}

func newUseCase(w *fixture.World, n *fakeNotifier) *UseCase {
	var m *metrics.Metrics
	return NewUseCase(
		w.Tenants,
		w.Validator,
		w.Store.Appointments(),
		w.Store.Providers(),
		n,
		w.Store.TxManager(),
		m,
		w.Logger,
	)
}

// seed запись клиента у специалиста A в понедельник 10:00-11:00 с событием календаря
func seed(w *fixture.World) uuid.UUID {
	id := uuid.New()
	w.Store.AddAppointment(domain.Appointment{
		ID:         id,
		CompanyID:  fixture.CompanyID,
		ClientID:   fixture.ClientID,
		ProviderID: fixture.ProviderA,
		EventID:    ptr.Ptr("evt-1"),
		Status:     domain.StatusScheduled,
		Start:      fixture.At(fixture.Monday, 10, 0),
		End:        fixture.At(fixture.Monday, 11, 0),
		Services: []domain.AppointmentService{
			{ServiceID: fixture.WhiteningID, CompanyID: fixture.CompanyID, ServiceName: "Whitening", Price: 200, DurationMinutes: 60},
		},
	})
	return id
}

func TestExecute_Reschedule(t *testing.T) {
	w := fixture.New()
	id := seed(w)
	n := &fakeNotifier{}

	got, err := newUseCase(w, n).Execute(context.Background(), &Request{
		AppointmentID: id.String(),
		ServiceIDs:    []string{fixture.CleaningID.String()},
		Start:         fixture.At(fixture.Monday, 14, 0),
	})
	require.NoError(t, err)

	assert.Equal(t, fixture.At(fixture.Monday, 14, 0), got.Start)
	assert.Equal(t, fixture.At(fixture.Monday, 14, 30), got.End)
	assert.Equal(t, "Name: Maria\nDate: 19/10/2026\nTime: 14:00\nService(s): Cleaning\nTotal: 100.00", got.Notes)
	require.Len(t, got.Services, 1)
	assert.Equal(t, fixture.CleaningID, got.Services[0].ServiceID)

	stored, ok := w.Store.Appointment(id)
	require.True(t, ok)
	assert.Equal(t, fixture.At(fixture.Monday, 14, 0), stored.Start)

	require.Len(t, n.events, 1)
	assert.Equal(t, domain.CalendarUpdate, n.events[0].Operation)
	assert.Equal(t, "evt-1", n.events[0].EventID)
}

func TestExecute_OverlapWithOwnWindowAllowed(t *testing.T) {
	w := fixture.New()
	id := seed(w)

	got, err := newUseCase(w, &fakeNotifier{}).Execute(context.Background(), &Request{
		AppointmentID: id.String(),
		ServiceIDs:    []string{fixture.WhiteningID.String()},
		Start:         fixture.At(fixture.Monday, 10, 30),
	})
	require.NoError(t, err)
	assert.Equal(t, fixture.At(fixture.Monday, 11, 30), got.End)
}

func TestExecute_SameStartSkipsAvailability(t *testing.T) {
	w := fixture.New()
	id := seed(w)
	// запись уже в прошлом, но время не меняется
	w.Clock.At = fixture.At(fixture.Monday, 12, 0)

	got, err := newUseCase(w, &fakeNotifier{}).Execute(context.Background(), &Request{
		AppointmentID: id.String(),
		ServiceIDs:    []string{fixture.WhiteningID.String(), fixture.CleaningID.String()},
		Start:         fixture.At(fixture.Monday, 10, 0),
	})
	require.NoError(t, err)
	assert.InDelta(t, 350.5, got.Total, 0.001)
}

func TestExecute_Rejections(t *testing.T) {
	w := fixture.New()
	id := seed(w)
	w.Book(fixture.ProviderA, fixture.OtherClientID, fixture.At(fixture.Monday, 14, 0), 60)
	w.Book(fixture.ProviderB, fixture.ClientID, fixture.At(fixture.Monday, 16, 0), 60)
	uc := newUseCase(w, &fakeNotifier{})

	tests := []struct {
		name    string
		start   time.Time
		wantErr error
	}{
		{name: "занято у специалиста", start: fixture.At(fixture.Monday, 14, 30), wantErr: domain.ErrSlotTaken},
		{name: "клиент занят у другого специалиста", start: fixture.At(fixture.Monday, 16, 0), wantErr: domain.ErrClientDoubleBooked},
		{name: "в прошлом", start: fixture.At(fixture.Monday, 6, 0), wantErr: domain.ErrSlotInPast},
		{name: "вчера", start: time.Date(2026, 10, 18, 10, 0, 0, 0, time.UTC), wantErr: domain.ErrSlotInPast},
		{name: "суббота", start: time.Date(2026, 10, 24, 10, 0, 0, 0, time.UTC), wantErr: domain.ErrOutsideBusinessHours},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Execute(context.Background(), &Request{
				AppointmentID: id.String(),
				ServiceIDs:    []string{fixture.WhiteningID.String()},
				Start:         tt.start,
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	stored, ok := w.Store.Appointment(id)
	require.True(t, ok)
	assert.Equal(t, fixture.At(fixture.Monday, 10, 0), stored.Start, "отклоненное изменение не сохраняется")
}

func TestExecute_NotFoundAndInvalid(t *testing.T) {
	w := fixture.New()
	uc := newUseCase(w, &fakeNotifier{})

	_, err := uc.Execute(context.Background(), &Request{
		AppointmentID: uuid.NewString(),
		ServiceIDs:    []string{fixture.WhiteningID.String()},
		Start:         fixture.At(fixture.Monday, 10, 0),
	})
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = uc.Execute(context.Background(), &Request{
		AppointmentID: "42",
		ServiceIDs:    []string{fixture.WhiteningID.String()},
		Start:         fixture.At(fixture.Monday, 10, 0),
	})
	assert.ErrorIs(t, err, domain.ErrInvalidIdentifier)
}
