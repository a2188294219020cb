package domain

import "time"

// Metadata общие служебные поля сущностей
type Metadata struct {
	CreatedAt time.Time
	UpdatedAt time.Time
}
