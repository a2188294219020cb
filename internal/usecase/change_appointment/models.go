package change_appointment

import "time"

// Request модель запроса на изменение записи
type Request struct {
	AppointmentID string
	ServiceIDs    []string
	Start         time.Time // "настенное" время компании
}
