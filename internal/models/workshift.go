package models

import "time"

// WorkShift is a scheduled or completed work session at a workplace.
// Name denormalizes the workplace name at write time so deleted workplaces
// keep their label in historical shifts. EventID references an externally
// synced calendar event; empty means not synced.
type WorkShift struct {
	ID          string    `db:"id" json:"id"`
	UserID      string    `db:"user_id" json:"-"`
	WorkplaceID string    `db:"workplace_id" json:"workplace_id"`
	Name        string    `db:"name" json:"name"`
	StartTime   time.Time `db:"start_time" json:"start_time"`
	EndTime     time.Time `db:"end_time" json:"end_time"`
	Note        string    `db:"note" json:"note"`
	EventID     string    `db:"event_id" json:"event_id"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// StartsAt implements the agenda item contract.
func (w WorkShift) StartsAt() time.Time { return w.StartTime }
