package change_status

// ChangeStatusRequest HTTP request model
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// StatusChangeResponse HTTP response model
type StatusChangeResponse struct {
	Message       string `json:"message"`
	AppointmentID string `json:"appointmentId"`
	NewStatus     string `json:"newStatus"`
}
