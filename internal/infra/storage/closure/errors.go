package closure

import "errors"

var (
	ErrBuildQuery = errors.New("closure.repository: failed to build query")
	ErrExecQuery  = errors.New("closure.repository: failed to execute query")
	ErrScanRow    = errors.New("closure.repository: failed to scan row")
)
