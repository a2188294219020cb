package check_availability

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("check_availability: internal error")
