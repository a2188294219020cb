package domain

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Availability is the tagged result of a slot check: Ok or Rejected(reason).
// The zero value is Ok.
type Availability struct {
	reason error
}

// Available returns the Ok tag
func Available() Availability {
	return Availability{}
}

// Rejected returns the Rejected tag with one of the slot rejection kinds
func Rejected(reason error) Availability {
	return Availability{reason: reason}
}

// Ok returns true if the slot is bookable
func (a Availability) Ok() bool {
	return a.reason == nil
}

// Reason returns the rejection kind, nil for Ok
func (a Availability) Reason() error {
	return a.reason
}

// SlotQuery is a candidate window for a company, optionally pinned to a provider
type SlotQuery struct {
	CompanyID   uuid.UUID
	ProviderID  *uuid.UUID // nil: conflicts checked company-wide
	SpecialtyID *uuid.UUID
	Start       time.Time
	End         time.Time

	// ExcludeAppointmentID skips the appointment being rescheduled
	ExcludeAppointmentID *uuid.UUID
}

// Slot is a bookable (provider, start) pair
type Slot struct {
	ProviderID uuid.UUID
	Start      time.Time
	End        time.Time
}

// DayTimes lists bookable start times of a single date
type DayTimes struct {
	Date  time.Time
	Times []types.TimeString
}

// CalendarOperation is the operation code sent to the external calendar
type CalendarOperation int

const (
	CalendarCreate CalendarOperation = 1
	CalendarUpdate CalendarOperation = 2
	CalendarCancel CalendarOperation = 3
)

func (op CalendarOperation) String() string {
	switch op {
	case CalendarCreate:
		return "create"
	case CalendarUpdate:
		return "update"
	case CalendarCancel:
		return "cancel"
	default:
		return "unknown"
	}
}
