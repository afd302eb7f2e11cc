// Package timeutil provides pure date/time arithmetic helpers shared by the
// agenda and earnings packages. No function mutates its inputs.
package timeutil

import (
	"math"
	"time"
)

// MinutesBetween returns end minus start in minutes. When round is true the
// result is rounded to the nearest integer. A start after end yields a
// negative value.
func MinutesBetween(start, end time.Time, round bool) float64 {
	diff := end.Sub(start).Minutes()
	if round {
		return math.Round(diff)
	}
	return diff
}

// HoursBetween returns end minus start in hours, optionally rounded to the
// nearest integer.
func HoursBetween(start, end time.Time, round bool) float64 {
	diff := end.Sub(start).Hours()
	if round {
		return math.Round(diff)
	}
	return diff
}

// WithDate returns t with its calendar date replaced by targetDate's,
// keeping t's clock time and location.
func WithDate(t, targetDate time.Time) time.Time {
	return time.Date(
		targetDate.Year(), targetDate.Month(), targetDate.Day(),
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(),
		t.Location(),
	)
}

// WithTime returns date with its clock time replaced by targetTime's,
// keeping date's calendar day and location.
func WithTime(date, targetTime time.Time) time.Time {
	return time.Date(
		date.Year(), date.Month(), date.Day(),
		targetTime.Hour(), targetTime.Minute(), targetTime.Second(), targetTime.Nanosecond(),
		date.Location(),
	)
}

// DisplayTime formats t as a clock-time string, 24-hour when is24h is set
// and 12-hour with an AM/PM suffix otherwise.
func DisplayTime(t time.Time, is24h bool) string {
	if is24h {
		return t.Format("15:04")
	}
	return t.Format("3:04 PM")
}

// DateKey returns the ISO calendar date (yyyy-MM-dd) of t, the bucket key
// used throughout the agenda.
func DateKey(t time.Time) string {
	return t.Format("2006-01-02")
}
