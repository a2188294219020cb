package businesshour

import "errors"

var (
	ErrBuildQuery = errors.New("businesshour.repository: failed to build query")
	ErrExecQuery  = errors.New("businesshour.repository: failed to execute query")
	ErrScanRow    = errors.New("businesshour.repository: failed to scan row")
)
