package catalog

import "errors"

var (
	// ErrSpecialtyNotInferred возвращается, когда у услуг нет общей специальности
	ErrSpecialtyNotInferred = errors.New("catalog.repository: no common specialty for services")

	ErrBuildQuery = errors.New("catalog.repository: failed to build query")
	ErrExecQuery  = errors.New("catalog.repository: failed to execute query")
	ErrScanRow    = errors.New("catalog.repository: failed to scan row")
)
