package calendar

import "errors"

var (
	// ErrInternal возвращается при внутренних ошибках клиента
	ErrInternal = errors.New("calendar client: internal error")

	// ErrInvalidResponse возвращается, когда webhook ответил не 2xx
	ErrInvalidResponse = errors.New("calendar client: invalid response")
)
