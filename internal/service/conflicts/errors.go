package conflicts

import "errors"

var (
	// ErrInvalidRange возвращается, когда конец окна не позже начала
	ErrInvalidRange = errors.New("conflicts: end must be after start")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("conflicts: internal error")
)
