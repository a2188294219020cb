package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// BusinessHours проверка рабочих часов
type BusinessHours interface {
	IsWithin(ctx context.Context, companyID uuid.UUID, start, end time.Time) (bool, error)
}

// Closures проверка закрытий компании
type Closures interface {
	IsClosed(ctx context.Context, companyID uuid.UUID, start, end time.Time) (bool, error)
}

// Conflicts детектор пересечений с записями
type Conflicts interface {
	HasOverlap(ctx context.Context, q domain.OverlapQuery) (bool, error)
	HasOverlapForClient(ctx context.Context, q domain.ClientOverlapQuery) (bool, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}
