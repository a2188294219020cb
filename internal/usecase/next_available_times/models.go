package next_available_times

import "time"

// Request модель запроса
type Request struct {
	CompanyID  string
	ServiceIDs []string
	Date       time.Time // дата в календаре компании, время суток игнорируется
}

// Response первый день со свободным временем
type Response struct {
	Date  time.Time
	Times []string // "HH:MM" по возрастанию
}
