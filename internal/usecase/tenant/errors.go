package tenant

import "errors"

// ErrInternal возвращается при внутренних ошибках
var ErrInternal = errors.New("tenant: internal error")
