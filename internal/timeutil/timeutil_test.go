package timeutil

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMinutesBetween(t *testing.T) {
	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(90 * time.Minute)

	assert.Equal(t, 90.0, MinutesBetween(start, end, false))
	assert.Equal(t, -90.0, MinutesBetween(end, start, false))

	end = start.Add(30*time.Minute + 40*time.Second)
	assert.InDelta(t, 30.6667, MinutesBetween(start, end, false), 0.001)
	assert.Equal(t, 31.0, MinutesBetween(start, end, true))
}

func TestHoursBetween(t *testing.T) {
	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	end := start.Add(8 * time.Hour)

	assert.Equal(t, 8.0, HoursBetween(start, end, false))

	end = start.Add(4*time.Hour + 20*time.Minute)
	assert.InDelta(t, 4.3333, HoursBetween(start, end, false), 0.001)
	assert.Equal(t, 4.0, HoursBetween(start, end, true))
}

func TestWithDate(t *testing.T) {
	clock := time.Date(2020, 1, 1, 14, 30, 45, 0, time.UTC)
	target := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)

	got := WithDate(clock, target)
	assert.Equal(t, time.Date(2024, 3, 15, 14, 30, 45, 0, time.UTC), got)
	// Inputs untouched.
	assert.Equal(t, 2020, clock.Year())
}

func TestWithTime(t *testing.T) {
	date := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	clock := time.Date(1999, 12, 31, 23, 59, 58, 0, time.UTC)

	got := WithTime(date, clock)
	assert.Equal(t, time.Date(2024, 3, 15, 23, 59, 58, 0, time.UTC), got)
}

func TestWithTimeWithDateRoundTrip(t *testing.T) {
	ts := time.Date(2021, 7, 4, 10, 15, 30, 0, time.UTC)
	day := time.Date(2024, 3, 15, 18, 0, 0, 0, time.UTC)

	got := WithTime(WithDate(ts, day), ts)
	assert.Equal(t, day.Year(), got.Year())
	assert.Equal(t, day.Month(), got.Month())
	assert.Equal(t, day.Day(), got.Day())
	assert.Equal(t, ts.Hour(), got.Hour())
	assert.Equal(t, ts.Minute(), got.Minute())
	assert.Equal(t, ts.Second(), got.Second())
}

func TestDisplayTime(t *testing.T) {
	morning := time.Date(2024, 3, 15, 9, 5, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 15, 17, 45, 0, 0, time.UTC)

	assert.Equal(t, "9:05 AM", DisplayTime(morning, false))
	assert.Equal(t, "5:45 PM", DisplayTime(evening, false))
	assert.Equal(t, "09:05", DisplayTime(morning, true))
	assert.Equal(t, "17:45", DisplayTime(evening, true))
}

func TestDateKey(t *testing.T) {
	assert.Equal(t, "2024-03-15", DateKey(time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)))
}
