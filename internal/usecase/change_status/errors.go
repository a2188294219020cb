package change_status

import "errors"

// ErrInternal возвращается при внутренних ошибках usecase
var ErrInternal = errors.New("change_status: internal error")
