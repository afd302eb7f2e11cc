// Package earnings computes estimated pay for work shifts using
// decimal-safe arithmetic, never binary floating point.
package earnings

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rosterhq/roster-api/internal/models"
)

// DefaultStandardHoursPerDay is the working-hours divisor applied to
// Day-frequency rates when the deployment does not configure one.
const DefaultStandardHoursPerDay = 8

var (
	nanosPerMinute = decimal.NewFromInt(int64(time.Minute))
	nanosPerHour   = decimal.NewFromInt(int64(time.Hour))
	sixty          = decimal.NewFromInt(60)
)

// Calculate returns the estimated earning for a shift between start and end.
//
// Hour frequency derives a per-minute rate (rate/60) and multiplies it by
// the fractional minute count; Day frequency derives a per-hour rate
// (rate/hoursPerDay) and multiplies it by the fractional hour count. The
// result keeps full decimal precision; round at the presentation boundary
// with Round.
//
// An end before start yields a signed negative amount. Persisted records are
// gated by the validator, so a negative result only arises when validation
// is bypassed; keeping the computation total avoids an error return on a
// pure render-path function.
func Calculate(rate decimal.Decimal, start, end time.Time, frequency models.Frequency, hoursPerDay int) decimal.Decimal {
	if hoursPerDay <= 0 {
		hoursPerDay = DefaultStandardHoursPerDay
	}

	elapsed := decimal.NewFromInt(end.Sub(start).Nanoseconds())

	switch frequency {
	case models.FrequencyDay:
		hourRate := rate.Div(decimal.NewFromInt(int64(hoursPerDay)))
		hours := elapsed.Div(nanosPerHour)
		return hourRate.Mul(hours)
	default:
		minuteRate := rate.Div(sixty)
		minutes := elapsed.Div(nanosPerMinute)
		return minuteRate.Mul(minutes)
	}
}

// Round reduces an amount to cents using half-up rounding, the convention
// for displayed currency values.
func Round(amount decimal.Decimal) decimal.Decimal {
	return amount.Round(2)
}
