package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus represents the status of an appointment
type AppointmentStatus string

const (
	StatusScheduled AppointmentStatus = "SCHEDULED"
	StatusConfirmed AppointmentStatus = "CONFIRMED"
	StatusCompleted AppointmentStatus = "COMPLETED"
	StatusCancelled AppointmentStatus = "CANCELLED"
)

// ParseAppointmentStatus accepts any letter case
func ParseAppointmentStatus(s string) (AppointmentStatus, error) {
	status := AppointmentStatus(strings.ToUpper(strings.TrimSpace(s)))
	switch status {
	case StatusScheduled, StatusConfirmed, StatusCompleted, StatusCancelled:
		return status, nil
	default:
		return "", fmt.Errorf("%w: unknown appointment status %q", ErrInvalidInput, s)
	}
}

// IsTerminal returns true if the appointment no longer occupies time
func (s AppointmentStatus) IsTerminal() bool {
	return s == StatusCancelled || s == StatusCompleted
}

// Appointment represents a booked time of a provider for a client
type Appointment struct {
	ID         uuid.UUID
	CompanyID  uuid.UUID
	ClientID   uuid.UUID
	ProviderID uuid.UUID
	EventID    *string // external calendar event
	Status     AppointmentStatus
	Notes      string
	Start      time.Time
	End        time.Time
	Services   []AppointmentService
	Metadata
}

// AppointmentService is a booked service line with the price captured at booking time
type AppointmentService struct {
	AppointmentID   uuid.UUID
	ServiceID       uuid.UUID
	CompanyID       uuid.UUID
	ServiceName     string
	Price           float64
	DurationMinutes int
	Metadata
}

// Overlaps is the half-open interval test: touching endpoints do not overlap
func (a *Appointment) Overlaps(start, end time.Time) bool {
	return a.Start.Before(end) && a.End.After(start)
}

// Total sums captured prices of the booked services
func (a *Appointment) Total() float64 {
	var total float64
	for _, s := range a.Services {
		total += s.Price
	}
	return total
}

// ServiceNames lists booked service names in booking order
func (a *Appointment) ServiceNames() []string {
	names := make([]string, 0, len(a.Services))
	for _, s := range a.Services {
		names = append(names, s.ServiceName)
	}
	return names
}

// LinesFromServices captures the current catalog price of each service
func LinesFromServices(services []Service) []AppointmentService {
	lines := make([]AppointmentService, 0, len(services))
	for _, s := range services {
		lines = append(lines, AppointmentService{
			ServiceID:       s.ID,
			CompanyID:       s.CompanyID,
			ServiceName:     s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}
	return lines
}

// BuildNotes renders the human-readable summary stored with the appointment
func BuildNotes(clientName string, start time.Time, lines []AppointmentService) string {
	names := make([]string, 0, len(lines))
	var total float64
	for _, l := range lines {
		names = append(names, l.ServiceName)
		total += l.Price
	}
	return fmt.Sprintf("Name: %s\nDate: %s\nTime: %s\nService(s): %s\nTotal: %.2f",
		clientName,
		start.Format(NotesDateFmt),
		start.Format(TimeFormat),
		strings.Join(names, ", "),
		total,
	)
}

// OverlapQuery describes a conflict lookup. ProviderID nil means any provider of the company.
type OverlapQuery struct {
	CompanyID            uuid.UUID
	ProviderID           *uuid.UUID
	Start                time.Time
	End                  time.Time
	ExcludeAppointmentID *uuid.UUID
}

// ClientOverlapQuery describes a client double-booking lookup across all providers
type ClientOverlapQuery struct {
	ClientID             uuid.UUID
	Start                time.Time
	End                  time.Time
	ExcludeAppointmentID *uuid.UUID
}
