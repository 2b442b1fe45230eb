package engine

import (
	"time"

	"github.com/tartampluch/go-birthday-countdown/internal/config"
)

// Target is the yearly date being tracked.
type Target struct {
	// Month and Day identify the date. Day must exist in Month for a leap year.
	Month time.Month
	Day   int

	// Name is shown next to the countdown. It has no effect on the arithmetic.
	Name string
}

// Validate reports whether the month/day pair can occur.
func (t Target) Validate() error {
	return config.ValidateDate(t.Month, t.Day)
}

// IsLeapDay reports whether the target falls on February 29.
func (t Target) IsLeapDay() bool {
	return t.Month == time.February && t.Day == 29
}

// OccurrenceIn returns midnight of the target date in year y, in loc.
// Go's time.Date normalizes Feb 29 to March 1st when y is not a leap year,
// so a leap-day target is observed on March 1st in those years.
func (t Target) OccurrenceIn(y int, loc *time.Location) time.Time {
	return time.Date(y, t.Month, t.Day, 0, 0, 0, 0, loc)
}
