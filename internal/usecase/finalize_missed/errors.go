package finalize_missed

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("finalize_missed: internal error")
