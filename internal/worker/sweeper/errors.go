package sweeper

import "errors"

// ErrInvalidSpec некорректное cron-выражение
var ErrInvalidSpec = errors.New("sweeper: invalid cron spec")
