package entity

import (
	"database/sql/driver"
	"fmt"
	"strings"
	"time"
)

// DaySet is a set of weekdays stored as a bitmask, bit n set for time.Weekday(n).
type DaySet uint8

const allDays DaySet = 1<<7 - 1

// NewDaySet builds a set from the given weekdays.
func NewDaySet(days ...time.Weekday) DaySet {
	var d DaySet
	for _, day := range days {
		d |= WeekdayBit(day)
	}
	return d
}

// EveryDay is the set of all seven weekdays.
func EveryDay() DaySet {
	return allDays
}

// WeekdayBit returns the single-day mask for day.
func WeekdayBit(day time.Weekday) DaySet {
	return 1 << uint(day)
}

// Contains reports whether day is in the set.
func (d DaySet) Contains(day time.Weekday) bool {
	return d&WeekdayBit(day) != 0
}

// IsEmpty reports whether no weekday is set.
func (d DaySet) IsEmpty() bool {
	return d&allDays == 0
}

// Days lists the weekdays in the set, Sunday first.
func (d DaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for day := time.Sunday; day <= time.Saturday; day++ {
		if d.Contains(day) {
			days = append(days, day)
		}
	}
	return days
}

// Value implements driver.Valuer.
func (d DaySet) Value() (driver.Value, error) {
	return int64(d & allDays), nil
}

// Scan implements sql.Scanner.
func (d *DaySet) Scan(src any) error {
	switch v := src.(type) {
	case int64:
		*d = DaySet(v) & allDays
	case int32:
		*d = DaySet(v) & allDays
	case nil:
		*d = 0
	default:
		return fmt.Errorf("cannot scan %T into DaySet", src)
	}
	return nil
}

// WeekdayAbbr returns the three-letter name of day ("Mon").
func WeekdayAbbr(day time.Weekday) string {
	return day.String()[:3]
}

// ParseWeekday accepts three-letter or full English weekday names, case-insensitive.
func ParseWeekday(s string) (time.Weekday, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for day := time.Sunday; day <= time.Saturday; day++ {
		full := strings.ToLower(day.String())
		if s == full || s == full[:3] {
			return day, nil
		}
	}
	return 0, fmt.Errorf("unknown weekday %q", s)
}
