package engine

import (
	"time"

	"github.com/tartampluch/go-birthday-countdown/internal/config"
)

// Remaining is a non-negative duration split into calendar-free units.
type Remaining struct {
	Days    int
	Hours   int
	Minutes int
	Seconds int

	// Total is the exact duration the units were derived from.
	Total time.Duration
}

// IsZero reports whether nothing is left.
func (r Remaining) IsZero() bool {
	return r.Total <= 0 && r.Days == 0 && r.Hours == 0 && r.Minutes == 0 && r.Seconds == 0
}

// Reading is everything derived from one clock sample.
type Reading struct {
	Now  time.Time
	Last time.Time // Most recent occurrence at or before Now
	Next time.Time // Nearest occurrence after today

	IsToday       bool
	Remaining     Remaining
	TargetPercent float64
}

// Calculate derives the countdown and the cycle progress for now.
// It is a pure function: calling it at any cadence yields the same answer
// for the same instant.
//
// A February 29 target is observed on March 1st in non-leap years, so
// IsToday holds on that day too.
func Calculate(now time.Time, target Target) Reading {
	last, next, isToday := occurrences(now, target)

	r := Reading{
		Now:     now,
		Last:    last,
		Next:    next,
		IsToday: isToday,
	}

	if isToday {
		r.TargetPercent = config.PercentMax
		return r
	}

	r.Remaining = split(next.Sub(now))
	r.TargetPercent = progress(now, last, next)
	return r
}

// occurrences locates now between two consecutive occurrences.
// When today is the target date, last is today and next is one year later.
func occurrences(now time.Time, target Target) (last, next time.Time, isToday bool) {
	loc := now.Location()
	year := now.Year()

	todayStart := time.Date(year, now.Month(), now.Day(), 0, 0, 0, 0, loc)
	current := target.OccurrenceIn(year, loc)

	switch {
	case current.Equal(todayStart):
		return current, target.OccurrenceIn(year+1, loc), true
	case current.Before(todayStart):
		return current, target.OccurrenceIn(year+1, loc), false
	default:
		return target.OccurrenceIn(year-1, loc), current, false
	}
}

// split decomposes d into floored days, hours, minutes and seconds.
func split(d time.Duration) Remaining {
	if d <= 0 {
		return Remaining{}
	}
	secs := int64(d / time.Second)
	return Remaining{
		Days:    int(secs / (config.HoursPerDay * config.MinutesPerHour * config.SecondsPerMinute)),
		Hours:   int(secs / (config.MinutesPerHour * config.SecondsPerMinute) % config.HoursPerDay),
		Minutes: int(secs / config.SecondsPerMinute % config.MinutesPerHour),
		Seconds: int(secs % config.SecondsPerMinute),
		Total:   d,
	}
}

// progress returns the elapsed share of [last, next] as a clamped percentage.
func progress(now, last, next time.Time) float64 {
	total := next.Sub(last)
	if total <= 0 {
		return config.PercentMin
	}
	elapsed := now.Sub(last)
	return clampPercent(float64(elapsed) / float64(total) * config.PercentMax)
}

func clampPercent(p float64) float64 {
	switch {
	case p < config.PercentMin:
		return config.PercentMin
	case p > config.PercentMax:
		return config.PercentMax
	default:
		return p
	}
}
