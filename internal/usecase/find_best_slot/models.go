package find_best_slot

import (
	"time"

	"github.com/google/uuid"
)

// Request модель запроса. От наличия Start и ProviderID зависит стратегия поиска.
type Request struct {
	CompanyID   string
	ServiceIDs  []string
	SpecialtyID *string
	ProviderID  *string
	Start       *time.Time // "настенное" время компании
}

// Response найденный слот
type Response struct {
	ProviderID   uuid.UUID
	ProviderName string
	Start        time.Time
	End          time.Time
}
