// Package types holds small value types shared across layers, most notably the
// wall-clock TimeString used for availability windows and slot listings.
package types

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

const (
	// TimeFormat is the wall-clock layout used throughout the service.
	TimeFormat = "15:04"

	// MinutesPerDay bounds every minutes-since-midnight value.
	MinutesPerDay = 24 * 60
)

var (
	// ErrInvalidTimeFormat возвращается, когда строка не соответствует формату HH:MM
	ErrInvalidTimeFormat = errors.New("types: invalid time format, expected HH:MM")

	// ErrMinutesOutOfRange возвращается, когда значение минут выходит за пределы суток
	ErrMinutesOutOfRange = errors.New("types: minutes out of range [0, 1440)")
)

var timePattern = regexp.MustCompile(`^([0-1]?[0-9]|2[0-3]):[0-5][0-9]$`)

// TimeString represents a wall-clock time of day as "HH:MM".
type TimeString string

// NewTimeString extracts the wall-clock portion of an instant.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(TimeFormat))
}

// NewTimeStringFromString validates and normalizes an "HH:MM" string.
// A single-digit hour is accepted on input and zero-padded.
func NewTimeStringFromString(s string) (TimeString, error) {
	if !timePattern.MatchString(s) {
		return "", ErrInvalidTimeFormat
	}

	minutes, err := TimeString(s).Minutes()
	if err != nil {
		return "", err
	}

	return FromMinutes(minutes)
}

// FromMinutes converts minutes since midnight into a zero-padded "HH:MM" string.
func FromMinutes(minutes int) (TimeString, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", ErrMinutesOutOfRange
	}

	return TimeString(fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)), nil
}

// Minutes returns the value as minutes since midnight.
func (t TimeString) Minutes() (int, error) {
	if !timePattern.MatchString(string(t)) {
		return 0, ErrInvalidTimeFormat
	}

	var hours, minutes int
	if _, err := fmt.Sscanf(string(t), "%d:%d", &hours, &minutes); err != nil {
		return 0, ErrInvalidTimeFormat
	}

	return hours*60 + minutes, nil
}

// Validate reports whether the value is a well-formed "HH:MM" string.
func (t TimeString) Validate() error {
	if !timePattern.MatchString(string(t)) {
		return ErrInvalidTimeFormat
	}
	return nil
}

// IsZero reports whether the value is empty.
func (t TimeString) IsZero() bool {
	return t == ""
}

// String returns the raw "HH:MM" representation.
func (t TimeString) String() string {
	return string(t)
}

// AddMinutes shifts the value forward within the same day.
func (t TimeString) AddMinutes(delta int) (TimeString, error) {
	minutes, err := t.Minutes()
	if err != nil {
		return "", err
	}
	return FromMinutes(minutes + delta)
}

// IsBefore reports whether t is strictly earlier than other.
// Malformed values compare as not-before.
func (t TimeString) IsBefore(other TimeString) bool {
	a, err := t.Minutes()
	if err != nil {
		return false
	}
	b, err := other.Minutes()
	if err != nil {
		return false
	}
	return a < b
}

// IsAfter reports whether t is strictly later than other.
func (t TimeString) IsAfter(other TimeString) bool {
	return other != t && other.IsBefore(t)
}
