// Package types содержит общие типы значений, используемые в домене и хранилище
package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const secondsPerDay = 24 * 60 * 60

var (
	// ErrInvalidTimeString некорректный формат времени суток
	ErrInvalidTimeString = errors.New("invalid time string format")

	// ErrTimeOverflow результат вышел за пределы суток
	ErrTimeOverflow = errors.New("time string overflows the day")
)

// TimeString время суток без даты (HH:MM[:SS]), хранится в секундах от полуночи
type TimeString struct {
	seconds int
}

var (
	// StartOfDay 00:00:00
	StartOfDay = TimeString{seconds: 0}
	// EndOfDay 23:59:59
	EndOfDay = TimeString{seconds: secondsPerDay - 1}
)

// NewTimeString берет время суток из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString{seconds: t.Hour()*3600 + t.Minute()*60 + t.Second()}
}

// NewTimeStringFromString парсит "HH:MM" или "HH:MM:SS"
func NewTimeStringFromString(s string) (TimeString, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 && len(parts) != 3 {
		return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}

	limits := []int{23, 59, 59}
	values := make([]int, 3)
	for i, p := range parts {
		if len(p) != 2 {
			return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
		v, err := strconv.Atoi(p)
		if err != nil || v < 0 || v > limits[i] {
			return TimeString{}, fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
		}
		values[i] = v
	}

	return TimeString{seconds: values[0]*3600 + values[1]*60 + values[2]}, nil
}

// MustTimeString как NewTimeStringFromString, но паникует на ошибке
func MustTimeString(s string) TimeString {
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		panic(err)
	}
	return ts
}

func (t TimeString) Hour() int   { return t.seconds / 3600 }
func (t TimeString) Minute() int { return t.seconds % 3600 / 60 }
func (t TimeString) Second() int { return t.seconds % 60 }

// AddMinutes сдвигает время; выход за пределы суток - ошибка
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	s := t.seconds + minutes*60
	if s < 0 || s >= secondsPerDay {
		return TimeString{}, fmt.Errorf("%w: %s%+dm", ErrTimeOverflow, t, minutes)
	}
	return TimeString{seconds: s}, nil
}

func (t TimeString) IsBefore(other TimeString) bool { return t.seconds < other.seconds }
func (t TimeString) IsAfter(other TimeString) bool  { return t.seconds > other.seconds }
func (t TimeString) Equal(other TimeString) bool    { return t.seconds == other.seconds }

// On возвращает момент date в это время суток, в часовом поясе date
func (t TimeString) On(date time.Time) time.Time {
	y, m, d := date.Date()
	return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, date.Location())
}

// String "HH:MM", либо "HH:MM:SS" если есть секунды
func (t TimeString) String() string {
	if t.Second() != 0 {
		return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second())
	}
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// Scan читает значение колонки TIME
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	// TIME в Postgres может прийти с дробными секундами
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value пишет значение в колонку TIME
func (t TimeString) Value() (driver.Value, error) {
	return fmt.Sprintf("%02d:%02d:%02d", t.Hour(), t.Minute(), t.Second()), nil
}

func (t TimeString) MarshalText() ([]byte, error) {
	return []byte(t.String()), nil
}

func (t *TimeString) UnmarshalText(data []byte) error {
	parsed, err := NewTimeStringFromString(string(data))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}
