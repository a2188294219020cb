package create_appointment

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("create_appointment: internal error")
