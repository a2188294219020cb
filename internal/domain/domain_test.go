package domain

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AppointmentService/pkg/ptr"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

func at(hour, minute int) time.Time {
	return time.Date(2025, 3, 10, hour, minute, 0, 0, time.UTC)
}

func TestClosure_Overlaps(t *testing.T) {
	partial := Closure{
		Date:      time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC),
		StartTime: ptr.Ptr(types.MustTimeString("12:00")),
		EndTime:   ptr.Ptr(types.MustTimeString("14:00")),
	}

	tests := []struct {
		name       string
		start, end time.Time
		want       bool
	}{
		{name: "окончание ровно в начале закрытия блокируется", start: at(11, 0), end: at(12, 0), want: true},
		{name: "начало ровно в конце закрытия блокируется", start: at(14, 0), end: at(15, 0), want: true},
		{name: "внутри закрытия", start: at(12, 30), end: at(13, 0), want: true},
		{name: "до закрытия", start: at(10, 0), end: at(11, 59), want: false},
		{name: "после закрытия", start: at(14, 1), end: at(15, 0), want: false},
		{
			name:  "другая дата начала не проверяется",
			start: time.Date(2025, 3, 9, 23, 0, 0, 0, time.UTC),
			end:   time.Date(2025, 3, 10, 13, 0, 0, 0, time.UTC),
			want:  false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, partial.Overlaps(tt.start, tt.end))
		})
	}
}

func TestClosure_FullDay(t *testing.T) {
	c := Closure{Date: time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)}
	require.True(t, c.IsFullDay())

	start, end := c.Bounds(time.UTC)
	assert.Equal(t, at(0, 0), start)
	assert.Equal(t, time.Date(2025, 3, 10, 23, 59, 59, 0, time.UTC), end)

	assert.True(t, c.Overlaps(at(0, 0), at(1, 0)))
	assert.True(t, c.Overlaps(at(23, 0), at(23, 59)))
}

func TestBusinessHour_Contains(t *testing.T) {
	bh := BusinessHour{
		DayOfWeek: 1,
		StartTime: types.MustTimeString("09:00"),
		EndTime:   types.MustTimeString("12:00"),
	}

	assert.True(t, bh.Contains(at(9, 0), at(10, 0)))
	assert.True(t, bh.Contains(at(11, 0), at(12, 0)))
	assert.False(t, bh.Contains(at(8, 59), at(9, 30)))
	assert.False(t, bh.Contains(at(11, 30), at(12, 30)))
}

func TestAppointment_Overlaps(t *testing.T) {
	a := Appointment{Start: at(9, 0), End: at(10, 0)}

	assert.False(t, a.Overlaps(at(10, 0), at(11, 0)), "back-to-back allowed")
	assert.False(t, a.Overlaps(at(8, 0), at(9, 0)), "back-to-back allowed")
	assert.True(t, a.Overlaps(at(9, 30), at(10, 30)))
	assert.True(t, a.Overlaps(at(8, 0), at(11, 0)))
}

func TestParseAppointmentStatus(t *testing.T) {
	status, err := ParseAppointmentStatus("cancelled")
	require.NoError(t, err)
	assert.Equal(t, StatusCancelled, status)
	assert.True(t, status.IsTerminal())
	assert.False(t, StatusConfirmed.IsTerminal())

	_, err = ParseAppointmentStatus("NO_SHOW")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestTotalDuration(t *testing.T) {
	assert.Equal(t, 90, TotalDuration([]Service{{DurationMinutes: 30}, {DurationMinutes: 60}}))
	assert.Equal(t, DefaultSlotDurationMinutes, TotalDuration(nil))
	assert.Equal(t, DefaultSlotDurationMinutes, TotalDuration([]Service{{DurationMinutes: 0}}))
}

func TestBuildNotes(t *testing.T) {
	lines := LinesFromServices([]Service{
		{Name: "Cleaning", Price: 100},
		{Name: "Whitening", Price: 250.5},
	})

	notes := BuildNotes("Maria", time.Date(2025, 3, 10, 14, 30, 0, 0, time.UTC), lines)

	assert.Equal(t, "Name: Maria\nDate: 10/03/2025\nTime: 14:30\nService(s): Cleaning, Whitening\nTotal: 350.50", notes)
}

func TestAvailability(t *testing.T) {
	assert.True(t, Available().Ok())
	assert.Nil(t, Available().Reason())

	r := Rejected(ErrSlotTaken)
	assert.False(t, r.Ok())
	assert.True(t, errors.Is(r.Reason(), ErrSlotTaken))
}

func TestIsSlotRejection(t *testing.T) {
	assert.True(t, IsSlotRejection(ErrCompanyClosed))
	assert.False(t, IsSlotRejection(ErrNotFound))
	assert.False(t, IsSlotRejection(errors.New("db down")))
}

func TestIsBusinessError(t *testing.T) {
	assert.True(t, IsBusinessError(ErrNoProviderAvailable))
	assert.True(t, IsBusinessError(fmt.Errorf("%w: provider id=1", ErrNotFound)))
	assert.True(t, IsBusinessError(ErrSlotTaken))
	assert.False(t, IsBusinessError(errors.New("connection refused")))
}
