package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Company represents a tenant with its own schedule
type Company struct {
	ID       uuid.UUID
	Name     string
	Timezone string // IANA zone, e.g. "America/Sao_Paulo"
	Metadata
}

// Location returns the company time zone, or fallback when the zone is empty or unknown
func (c *Company) Location(fallback *time.Location) *time.Location {
	if c.Timezone == "" {
		return fallback
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return fallback
	}
	return loc
}

// BusinessHour is one opening interval of a weekday.
// DayOfWeek uses 0=Sunday..6=Saturday.
type BusinessHour struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	DayOfWeek int
	StartTime types.TimeString
	EndTime   types.TimeString
	Metadata
}

// Contains reports whether [start, end) fits entirely into the interval on start's date
func (b BusinessHour) Contains(start, end time.Time) bool {
	opensAt := b.StartTime.On(start)
	closesAt := b.EndTime.On(start)
	return !start.Before(opensAt) && !end.After(closesAt)
}

// Closure is a full-day or partial-day unavailability of a company
type Closure struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Date      time.Time
	StartTime *types.TimeString
	EndTime   *types.TimeString
	Reason    string
	Metadata
}

// IsFullDay returns true when the closure has no explicit times
func (c Closure) IsFullDay() bool {
	return c.StartTime == nil || c.EndTime == nil
}

// Bounds returns the closure window in loc
func (c Closure) Bounds(loc *time.Location) (time.Time, time.Time) {
	y, m, d := c.Date.Date()
	day := time.Date(y, m, d, 0, 0, 0, 0, loc)
	if c.IsFullDay() {
		return types.StartOfDay.On(day), types.EndOfDay.On(day)
	}
	return c.StartTime.On(day), c.EndTime.On(day)
}

// Overlaps checks the closure against [start, end).
// Only start's date is considered, and touching the boundary counts as overlap.
func (c Closure) Overlaps(start, end time.Time) bool {
	if !types.SameDate(c.Date, start) {
		return false
	}
	closureStart, closureEnd := c.Bounds(start.Location())
	return !end.Before(closureStart) && !start.After(closureEnd)
}
