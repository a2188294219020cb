package finalize_missed

import "github.com/m04kA/SMC-AppointmentService/internal/usecase/models"

// Источники запуска
const (
	TriggerHTTP = "http"
	TriggerCron = "cron"
)

// Request модель запроса
type Request struct {
	Trigger string
}

// Response отмененные записи
type Response struct {
	Appointments []*models.Appointment
}
