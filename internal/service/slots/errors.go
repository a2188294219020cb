package slots

import "errors"

var (
	// ErrInvalidDuration возвращается для неположительной длительности
	ErrInvalidDuration = errors.New("slots: duration must be positive")

	// ErrInternal возвращается, когда поиск прерван ошибкой хранилища
	ErrInternal = errors.New("slots: internal error")
)
