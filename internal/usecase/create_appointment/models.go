package create_appointment

import "time"

// Request модель запроса на создание записи
type Request struct {
	CompanyID   string
	ClientID    string
	ServiceIDs  []string
	SpecialtyID *string   // если не задана, выводится из услуг
	ProviderID  *string   // если не задан, выбирается наименее загруженный
	Start       time.Time // "настенное" время компании, пояс значения игнорируется
}
