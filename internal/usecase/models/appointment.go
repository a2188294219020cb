// Package models общие модели ответов use case записей
package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// Appointment модель записи в ответах use case
type Appointment struct {
	ID         uuid.UUID
	CompanyID  uuid.UUID
	ClientID   uuid.UUID
	ProviderID uuid.UUID
	EventID    *string // ID события во внешнем календаре
	Status     string
	Notes      string
	Start      time.Time // в часовом поясе компании
	End        time.Time
	Services   []ServiceLine
	Total      float64 // сумма цен на момент записи

	CreatedAt time.Time
	UpdatedAt time.Time
}

// ServiceLine услуга в записи с зафиксированной ценой
type ServiceLine struct {
	ServiceID       uuid.UUID
	Name            string
	Price           float64
	DurationMinutes int
}

// FromDomain конвертирует доменную запись. Время переводится в loc, если он задан.
func FromDomain(a *domain.Appointment, loc *time.Location) *Appointment {
	start, end := a.Start, a.End
	if loc != nil {
		start, end = start.In(loc), end.In(loc)
	}

	lines := make([]ServiceLine, 0, len(a.Services))
	for _, s := range a.Services {
		lines = append(lines, ServiceLine{
			ServiceID:       s.ServiceID,
			Name:            s.ServiceName,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}

	return &Appointment{
		ID:         a.ID,
		CompanyID:  a.CompanyID,
		ClientID:   a.ClientID,
		ProviderID: a.ProviderID,
		EventID:    a.EventID,
		Status:     string(a.Status),
		Notes:      a.Notes,
		Start:      start,
		End:        end,
		Services:   lines,
		Total:      a.Total(),
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}
