package entity

import (
	"fmt"
	"time"

	appErrors "medreminder/internal/pkg/errors"
)

const (
	// TimeOfDayLayout is the minute-precision wall-clock format used for matching.
	TimeOfDayLayout = "15:04"
	// DateLayout is the calendar day an occurrence belongs to.
	DateLayout = "2006-01-02"
)

// Moment is a wall-clock instant reduced to the granularity the scheduler matches on.
// It is captured once per tick.
type Moment struct {
	At   time.Time
	Time string // HH:MM
	Day  time.Weekday
	Date string // YYYY-MM-DD
}

// MomentOf truncates t to minute precision.
func MomentOf(t time.Time) Moment {
	return Moment{
		At:   t,
		Time: t.Format(TimeOfDayLayout),
		Day:  t.Weekday(),
		Date: t.Format(DateLayout),
	}
}

// ParseTimeOfDay validates a strict 24-hour HH:MM string.
func ParseTimeOfDay(s string) (string, error) {
	if len(s) != 5 || s[2] != ':' {
		return "", fmt.Errorf("%w: time %q must be HH:MM", appErrors.ErrValidation, s)
	}
	t, err := time.Parse(TimeOfDayLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: time %q must be HH:MM", appErrors.ErrValidation, s)
	}
	return t.Format(TimeOfDayLayout), nil
}

// ParseDate validates a YYYY-MM-DD string.
func ParseDate(s string) (string, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return "", fmt.Errorf("%w: date %q must be YYYY-MM-DD", appErrors.ErrValidation, s)
	}
	return t.Format(DateLayout), nil
}
