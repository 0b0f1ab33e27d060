package domain

import (
	"fmt"
	"time"
)

const (
	layoutTime = "15:04"
	layoutDate = "2006-01-02"
)

// TimeOfDay is a wall-clock time in whole minutes since midnight.
type TimeOfDay int

// ParseTimeOfDay parses a 24-hour "HH:mm" value. Both fields take exactly
// two digits, so "9:30" is rejected.
func ParseTimeOfDay(s string) (TimeOfDay, error) {
	if len(s) != len(layoutTime) {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	t, err := time.Parse(layoutTime, s)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrMalformedTime, s)
	}
	return TimeOfDay(t.Hour()*60 + t.Minute()), nil
}

// MustParseTimeOfDay is ParseTimeOfDay for constants; it panics on bad input.
func MustParseTimeOfDay(s string) TimeOfDay {
	t, err := ParseTimeOfDay(s)
	if err != nil {
		panic(err)
	}
	return t
}

func (t TimeOfDay) Hour() int   { return int(t) / 60 }
func (t TimeOfDay) Minute() int { return int(t) % 60 }

func (t TimeOfDay) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour(), t.Minute())
}

// ParseDate parses an ISO calendar date and returns it as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	d, err := time.Parse(layoutDate, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q", ErrMalformedDate, s)
	}
	return d, nil
}

// DateOf drops the clock part of t, keeping the calendar date as seen in t's location.
func DateOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// FormatDate renders the calendar date of t as YYYY-MM-DD.
func FormatDate(t time.Time) string {
	return t.Format(layoutDate)
}
