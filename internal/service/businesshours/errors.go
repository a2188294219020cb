package businesshours

import "errors"

var (
	// ErrInvalidDay возвращается для дня недели вне диапазона 0..6
	ErrInvalidDay = errors.New("businesshours: day of week must be in [0..6]")

	// ErrInternal возвращается при внутренних ошибках сервиса
	ErrInternal = errors.New("businesshours: internal error")
)
