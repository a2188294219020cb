package types

import (
	"errors"
	"fmt"
	"time"
)

// Форматы даты и локального времени
const (
	DateFormat          = "2006-01-02"
	LocalDateTimeFormat = "2006-01-02T15:04:05"
	localDateTimeShort  = "2006-01-02T15:04"
)

// ErrInvalidDateTime некорректная дата или дата-время
var ErrInvalidDateTime = errors.New("invalid date-time format")

// ParseLocalDateTime парсит дату-время без часового пояса ("2006-01-02T15:04[:05]").
// Результат в UTC, его нужно перенести в пояс компании через WallClockIn.
func ParseLocalDateTime(s string) (time.Time, error) {
	for _, layout := range []string{LocalDateTimeFormat, localDateTimeShort} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
}

// ParseDate парсит дату "2006-01-02"
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrInvalidDateTime, s)
	}
	return t, nil
}

// WallClockIn переносит "настенное" время t (дата и часы как есть) в пояс loc
func WallClockIn(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), loc)
}

// StartOfDate полночь даты t в её часовом поясе
func StartOfDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// SameDate совпадают ли календарные даты (в собственных поясах значений)
func SameDate(a, b time.Time) bool {
	ya, ma, da := a.Date()
	yb, mb, db := b.Date()
	return ya == yb && ma == mb && da == db
}

// FormatLocal форматирует момент как локальное время без пояса
func FormatLocal(t time.Time) string {
	return t.Format(LocalDateTimeFormat)
}
