package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidTimeString is returned when a value cannot be parsed as a time of day
var ErrInvalidTimeString = errors.New("invalid time string format")

// TimeString is a time of day stored as "HH:MM"
type TimeString string

// NewTimeString builds a TimeString from the clock part of t
func NewTimeString(t time.Time) TimeString {
	return TimeString(fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute()))
}

// NewTimeStringFromString parses "09:00", "9:00", "9:00 AM" or "3:00 PM"
func NewTimeStringFromString(s string) (TimeString, error) {
	raw := strings.ToUpper(strings.TrimSpace(s))
	if raw == "" {
		return "", ErrInvalidTimeString
	}

	meridiem := ""
	switch {
	case strings.HasSuffix(raw, "AM"):
		meridiem = "AM"
	case strings.HasSuffix(raw, "PM"):
		meridiem = "PM"
	}
	raw = strings.TrimSpace(strings.TrimSuffix(raw, meridiem))

	parts := strings.Split(raw, ":")
	if len(parts) != 2 || len(parts[1]) != 2 {
		return "", ErrInvalidTimeString
	}

	hour, err := strconv.Atoi(parts[0])
	if err != nil {
		return "", ErrInvalidTimeString
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return "", ErrInvalidTimeString
	}

	switch meridiem {
	case "":
		if hour < 0 || hour > 23 {
			return "", ErrInvalidTimeString
		}
	default:
		if hour < 1 || hour > 12 {
			return "", ErrInvalidTimeString
		}
		if hour == 12 {
			hour = 0
		}
		if meridiem == "PM" {
			hour += 12
		}
	}

	return TimeString(fmt.Sprintf("%02d:%02d", hour, minute)), nil
}

// String returns the "HH:MM" representation
func (t TimeString) String() string {
	return string(t)
}

// IsZero reports whether the value is empty
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate checks the canonical "HH:MM" form
func (t TimeString) Validate() error {
	parsed, err := NewTimeStringFromString(string(t))
	if err != nil {
		return err
	}
	if parsed != t {
		return fmt.Errorf("%w: %q is not in HH:MM form", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes returns minutes since midnight, -1 if the value is malformed
func (t TimeString) Minutes() int {
	parsed, err := NewTimeStringFromString(string(t))
	if err != nil {
		return -1
	}
	hour, _ := strconv.Atoi(string(parsed[:2]))
	minute, _ := strconv.Atoi(string(parsed[3:]))
	return hour*60 + minute
}

// AddMinutes shifts the time, failing if the result leaves the day
func (t TimeString) AddMinutes(minutes int) (TimeString, error) {
	current := t.Minutes()
	if current < 0 {
		return "", ErrInvalidTimeString
	}
	total := current + minutes
	if total < 0 || total >= 24*60 {
		return "", fmt.Errorf("%w: %s%+d minutes is outside the day", ErrInvalidTimeString, t, minutes)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore reports whether t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.Minutes() < other.Minutes()
}

// IsAfter reports whether t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.Minutes() > other.Minutes()
}

// Label renders the 12-hour form used in customer-facing text, e.g. "3:00 PM"
func (t TimeString) Label() string {
	m := t.Minutes()
	if m < 0 {
		return string(t)
	}
	hour, minute := m/60, m%60
	suffix := "AM"
	if hour >= 12 {
		suffix = "PM"
	}
	hour %= 12
	if hour == 0 {
		hour = 12
	}
	return fmt.Sprintf("%d:%02d %s", hour, minute, suffix)
}

// Scan implements sql.Scanner
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case string:
		*t = TimeString(v)
		return nil
	case []byte:
		*t = TimeString(string(v))
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

// Value implements driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	return string(t), nil
}
