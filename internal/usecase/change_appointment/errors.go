package change_appointment

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("change_appointment: internal error")
