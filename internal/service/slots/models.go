package slots

import (
	"time"

	"github.com/google/uuid"
)

// Стратегии поиска, по форме запроса
const (
	StrategyTimeAndProvider = "time_and_provider"
	StrategyTimeOnly        = "time_only"
	StrategyProviderOnly    = "provider_only"
	StrategyExhaustive      = "exhaustive"
)

// Options параметры движка
type Options struct {
	SlotInterval       time.Duration // шаг кандидатов от начала интервала
	HorizonDays        int           // глубина поиска по дням
	NextTimesDaysAhead int           // глубина FindNextAvailableTimes
}

// Request запрос на поиск лучшего слота.
// Start и ProviderID опциональны, от их наличия зависит стратегия.
type Request struct {
	CompanyID   uuid.UUID
	SpecialtyID uuid.UUID
	ProviderID  *uuid.UUID
	Start       *time.Time
	Duration    time.Duration
	Location    *time.Location // пояс компании, в нем считаются даты
}

func (r *Request) location() *time.Location {
	if r.Location == nil {
		return time.UTC
	}
	return r.Location
}

func (r *Request) strategy() string {
	switch {
	case r.Start != nil && r.ProviderID != nil:
		return StrategyTimeAndProvider
	case r.Start != nil:
		return StrategyTimeOnly
	case r.ProviderID != nil:
		return StrategyProviderOnly
	default:
		return StrategyExhaustive
	}
}
