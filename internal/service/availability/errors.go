package availability

import "errors"

var (
	// ErrInvalidRange возвращается, когда конец окна не позже начала
	ErrInvalidRange = errors.New("availability: end must be after start")

	// ErrInternal возвращается, когда проверку не удалось выполнить
	ErrInternal = errors.New("availability: internal error")
)
