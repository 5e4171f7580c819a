package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// TimeString время суток в 24-часовом формате "HH:MM"
type TimeString string

const clockLayout = "15:04"

var (
	// ErrInvalidTimeFormat возвращается, когда строку нельзя разобрать как "HH:MM"
	ErrInvalidTimeFormat = errors.New("invalid time string format")

	// ErrInvalidDisplayTime возвращается, когда строку нельзя разобрать как "H:MM AM/PM"
	ErrInvalidDisplayTime = errors.New("invalid display time format")
)

// NewTimeString берет время суток из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(clockLayout))
}

// NewTimeStringFromString создает TimeString из строки со строгой проверкой формата
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(strings.TrimSpace(s))
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// String возвращает строковое представление
func (t TimeString) String() string {
	return string(t)
}

// IsZero возвращает true, если время не задано
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что время записано как "HH:MM" в диапазоне 00:00-23:59
func (t TimeString) Validate() error {
	s := string(t)
	if len(s) != len(clockLayout) || s[2] != ':' {
		return fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}
	hours, minutes, err := splitClock(s)
	if err != nil {
		return err
	}
	if hours < 0 || hours > 23 || minutes < 0 || minutes > 59 {
		return fmt.Errorf("%w: %q out of range", ErrInvalidTimeFormat, s)
	}
	return nil
}

// Minutes возвращает количество минут с полуночи
func (t TimeString) Minutes() (int, error) {
	return TimeToMinutes(string(t))
}

// AddMinutes сдвигает время на n минут без переноса через полночь
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return MinutesToTime(m + n), nil
}

// IsBefore возвращает true, если t строго раньше other.
// Неразбираемое время ни с чем не сравнимо: результат false.
func (t TimeString) IsBefore(other TimeString) bool {
	a, errA := t.Minutes()
	b, errB := other.Minutes()
	return errA == nil && errB == nil && a < b
}

// Scan реализует sql.Scanner (Postgres TIME приходит как "HH:MM:SS" или time.Time)
func (t *TimeString) Scan(src any) error {
	switch v := src.(type) {
	case nil:
		*t = ""
	case time.Time:
		*t = NewTimeString(v)
	case []byte:
		*t = TimeString(trimSeconds(string(v)))
	case string:
		*t = TimeString(trimSeconds(v))
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeFormat, src)
	}
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}

// TimeToMinutes переводит "HH:MM" в минуты с полуночи: hours*60+minutes.
// Диапазон не проверяется ("25:10" -> 1510), это ответственность вызывающего.
func TimeToMinutes(s string) (int, error) {
	hours, minutes, err := splitClock(s)
	if err != nil {
		return 0, err
	}
	return hours*60 + minutes, nil
}

// MinutesToTime обратное преобразование с дополнением нулями.
// Значения >= 1440 не заворачиваются через полночь.
func MinutesToTime(minutes int) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60))
}

// FormatTimeForDisplay переводит "HH:MM" в "H:MM AM/PM" (12:00 -> 12:00 PM, 00:00 -> 12:00 AM)
func FormatTimeForDisplay(t TimeString) (string, error) {
	hours, minutes, err := splitClock(string(t))
	if err != nil {
		return "", err
	}

	period := "AM"
	if hours >= 12 {
		period = "PM"
	}
	displayHours := hours % 12
	if displayHours == 0 {
		displayHours = 12
	}

	return fmt.Sprintf("%d:%02d %s", displayHours, minutes, period), nil
}

// ParseDisplayTime переводит "H:MM AM/PM" обратно в "HH:MM"
func ParseDisplayTime(s string) (TimeString, error) {
	parts := strings.Fields(s)
	if len(parts) != 2 {
		return "", fmt.Errorf("%w: %q", ErrInvalidDisplayTime, s)
	}

	hours, minutes, err := splitClock(parts[0])
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDisplayTime, s)
	}

	switch strings.ToUpper(parts[1]) {
	case "AM":
		if hours == 12 {
			hours = 0
		}
	case "PM":
		if hours != 12 {
			hours += 12
		}
	default:
		return "", fmt.Errorf("%w: unknown period in %q", ErrInvalidDisplayTime, s)
	}

	return MinutesToTime(hours*60 + minutes), nil
}

func splitClock(s string) (int, int, error) {
	hoursPart, minutesPart, ok := strings.Cut(s, ":")
	if !ok {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	hours, err := strconv.Atoi(hoursPart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	minutes, err := strconv.Atoi(minutesPart)
	if err != nil {
		return 0, 0, fmt.Errorf("%w: %q", ErrInvalidTimeFormat, s)
	}

	return hours, minutes, nil
}

// trimSeconds отрезает секунды у значения "HH:MM:SS"
func trimSeconds(s string) string {
	if len(s) > len(clockLayout) && s[2] == ':' && s[5] == ':' {
		return s[:len(clockLayout)]
	}
	return s
}
