package check_availability

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса проверки доступности
type Request struct {
	CompanyID   string
	ClientID    *string // если задан, проверяются и записи клиента
	ServiceIDs  []string
	SpecialtyID *string
	ProviderID  *string // если не задан, берется наименее загруженный в этот день
	Start       time.Time
}

// Response результат проверки
type Response struct {
	Available  bool
	Reason     error // вид отказа, nil если окно свободно
	ProviderID *uuid.UUID
	Start      time.Time
	End        time.Time
}
