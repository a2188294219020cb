package handlers

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/usecase/models"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// AppointmentResponse HTTP модель записи. Время локальное для компании.
type AppointmentResponse struct {
	ID         string                `json:"id"`
	CompanyID  string                `json:"companyId"`
	ClientID   string                `json:"clientId"`
	ProviderID string                `json:"providerId"`
	EventID    *string               `json:"eventId,omitempty"`
	Status     string                `json:"status"`
	Notes      string                `json:"notes"`
	Start      string                `json:"start"`
	End        string                `json:"end"`
	Services   []ServiceLineResponse `json:"services"`
	Total      float64               `json:"total"`
	CreatedAt  string                `json:"createdAt"`
	UpdatedAt  string                `json:"updatedAt"`
}

type ServiceLineResponse struct {
	ServiceID       string  `json:"serviceId"`
	Name            string  `json:"name"`
	Price           float64 `json:"price"`
	DurationMinutes int     `json:"durationMinutes"`
}

// FromAppointment конвертирует модель use case в HTTP ответ
func FromAppointment(a *models.Appointment) AppointmentResponse {
	services := make([]ServiceLineResponse, 0, len(a.Services))
	for _, s := range a.Services {
		services = append(services, ServiceLineResponse{
			ServiceID:       s.ServiceID.String(),
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
		})
	}

	return AppointmentResponse{
		ID:         a.ID.String(),
		CompanyID:  a.CompanyID.String(),
		ClientID:   a.ClientID.String(),
		ProviderID: a.ProviderID.String(),
		EventID:    a.EventID,
		Status:     a.Status,
		Notes:      a.Notes,
		Start:      types.FormatLocal(a.Start),
		End:        types.FormatLocal(a.End),
		Services:   services,
		Total:      a.Total,
		CreatedAt:  a.CreatedAt.Format(time.RFC3339),
		UpdatedAt:  a.UpdatedAt.Format(time.RFC3339),
	}
}
