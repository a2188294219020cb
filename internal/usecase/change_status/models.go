package change_status

// Request модель запроса на смену статуса
type Request struct {
	AppointmentID string
	Status        string // SCHEDULED, CONFIRMED, COMPLETED, CANCELLED в любом регистре
}
