package tenant

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
)

// ParseID парсит обязательный идентификатор
func ParseID(field, value string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(value))
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %s=%q", domain.ErrInvalidIdentifier, field, value)
	}
	return id, nil
}

// ParseOptionalID парсит необязательный идентификатор: nil и пустая строка дают nil
func ParseOptionalID(field string, value *string) (*uuid.UUID, error) {
	if value == nil || strings.TrimSpace(*value) == "" {
		return nil, nil
	}
	id, err := ParseID(field, *value)
	if err != nil {
		return nil, err
	}
	return &id, nil
}

// ParseIDs парсит список идентификаторов
func ParseIDs(field string, values []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(values))
	for i, v := range values {
		id, err := ParseID(fmt.Sprintf("%s[%d]", field, i), v)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}
