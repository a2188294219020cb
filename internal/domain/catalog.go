package domain

import "github.com/google/uuid"

// Provider performs appointments within its specialties
type Provider struct {
	ID         uuid.UUID
	CompanyID  uuid.UUID
	Name       string
	CalendarID string
	Active     bool
	Metadata
}

// Specialty is a category of services a provider is qualified for
type Specialty struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Name      string
	Metadata
}

// Service is a bookable catalog item
type Service struct {
	ID              uuid.UUID
	CompanyID       uuid.UUID
	Name            string
	Price           float64
	DurationMinutes int
	Metadata
}

// TotalDuration sums service durations, falling back to the default when nothing resolves
func TotalDuration(services []Service) int {
	total := 0
	for _, s := range services {
		total += s.DurationMinutes
	}
	if total <= 0 {
		return DefaultSlotDurationMinutes
	}
	return total
}

// Client is a customer of a company
type Client struct {
	ID        uuid.UUID
	CompanyID uuid.UUID
	Name      string
	Phone     string
	Email     string
	Metadata
}
