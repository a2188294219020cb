package next_available_times

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("next_available_times: internal error")
