package domain

import "errors"

// Виды ошибок планировщика. Слои ниже оборачивают их через %w,
// HTTP-слой сопоставляет их с кодами ответа через errors.Is.
var (
	ErrSlotInPast           = errors.New("slot is in the past")
	ErrOutsideBusinessHours = errors.New("slot is outside business hours")
	ErrCompanyClosed        = errors.New("company is closed in this period")
	ErrSlotTaken            = errors.New("slot is already taken")
	ErrClientDoubleBooked   = errors.New("client already has an appointment in this period")
	ErrNoProviderAvailable  = errors.New("no provider available")
	ErrAmbiguousSpecialty   = errors.New("specialty cannot be determined")
	ErrNotFound             = errors.New("entity not found")
	ErrInvalidIdentifier    = errors.New("invalid identifier")
	ErrInvalidInput         = errors.New("invalid input")
)

// IsSlotRejection относится ли ошибка к правилам доступности слота
func IsSlotRejection(err error) bool {
	return errors.Is(err, ErrSlotInPast) ||
		errors.Is(err, ErrOutsideBusinessHours) ||
		errors.Is(err, ErrCompanyClosed) ||
		errors.Is(err, ErrSlotTaken) ||
		errors.Is(err, ErrClientDoubleBooked)
}

// IsBusinessError ошибка одного из видов таксономии, а не сбой инфраструктуры
func IsBusinessError(err error) bool {
	return IsSlotRejection(err) ||
		errors.Is(err, ErrNoProviderAvailable) ||
		errors.Is(err, ErrAmbiguousSpecialty) ||
		errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrInvalidIdentifier) ||
		errors.Is(err, ErrInvalidInput)
}
