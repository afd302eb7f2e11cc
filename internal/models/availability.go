package models

import "time"

// Weekday names accepted for recurring time slots.
var WeekdayNames = []string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// IsWeekdayName reports whether day is one of the seven weekday names.
func IsWeekdayName(day string) bool {
	for _, name := range WeekdayNames {
		if name == day {
			return true
		}
	}
	return false
}

// TimeSlot is a recurring weekly availability window. The date components of
// StartTime and EndTime are irrelevant for recurrence; only the clock time
// and the weekday name carry meaning.
type TimeSlot struct {
	ID        string    `db:"id" json:"id"`
	UserID    string    `db:"user_id" json:"-"`
	StartTime time.Time `db:"start_time" json:"start_time"`
	EndTime   time.Time `db:"end_time" json:"end_time"`
	Day       string    `db:"day" json:"day"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

// StartsAt implements the agenda item contract.
func (t TimeSlot) StartsAt() time.Time { return t.StartTime }

// Adhoc is a one-off availability exception for a specific date range.
type Adhoc struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"-"`
	IsAvailable bool      `db:"is_available" json:"is_available"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	Note        string    `db:"note" json:"note"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// StartsAt implements the agenda item contract.
func (a Adhoc) StartsAt() time.Time { return a.StartTime }
