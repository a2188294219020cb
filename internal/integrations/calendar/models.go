package calendar

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Event событие записи для внешнего календаря
type Event struct {
	AppointmentID uuid.UUID
	ProviderName  string
	CalendarID    string
	Start         time.Time
	End           time.Time
	Notes         string
	Operation     domain.CalendarOperation
	EventID       string
}

// NewEvent собирает событие по записи и ее специалисту.
// При создании EventID пустой: событие в календаре еще не существует.
func NewEvent(a *domain.Appointment, p *domain.Provider, op domain.CalendarOperation) Event {
	ev := Event{
		AppointmentID: a.ID,
		ProviderName:  p.Name,
		CalendarID:    p.CalendarID,
		Start:         a.Start,
		End:           a.End,
		Notes:         a.Notes,
		Operation:     op,
	}
	if op != domain.CalendarCreate && a.EventID != nil {
		ev.EventID = *a.EventID
	}
	return ev
}

// Payload тело запроса к webhook
type Payload struct {
	AppointmentID string `json:"appointmentId"`
	Title         string `json:"title"`
	Start         string `json:"start"` // локальное время компании "2006-01-02T15:04:05"
	End           string `json:"end"`
	Notes         string `json:"notes"`
	CalendarID    string `json:"calendarId"`
	Op            int    `json:"op"` // 1 create, 2 update, 3 cancel
	EventID       string `json:"eventId"`
}

func toPayload(ev Event) Payload {
	return Payload{
		AppointmentID: ev.AppointmentID.String(),
		Title:         "Appointment with " + ev.ProviderName,
		Start:         types.FormatLocal(ev.Start),
		End:           types.FormatLocal(ev.End),
		Notes:         ev.Notes,
		CalendarID:    ev.CalendarID,
		Op:            int(ev.Operation),
		EventID:       ev.EventID,
	}
}
