package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/rosterhq/roster-api/internal/models"
)

// Row codecs isolate persistence encoding from the domain types. Each pair
// is pure and satisfies decode(encode(x)) == x for valid records: monetary
// rates travel as exact decimal strings and timestamps are normalised to
// UTC on the way in.

type workplaceRow struct {
	ID           string    `db:"id"`
	UserID       string    `db:"user_id"`
	Name         string    `db:"name"`
	ABN          string    `db:"abn"`
	Address      string    `db:"address"`
	ContactName  string    `db:"contact_name"`
	ContactPhone string    `db:"contact_phone"`
	ContactEmail string    `db:"contact_email"`
	Frequency    string    `db:"frequency"`
	StandardRate string    `db:"standard_rate"`
	OvertimeRate string    `db:"overtime_rate"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func encodeWorkplace(wp models.Workplace) workplaceRow {
	return workplaceRow{
		ID:           wp.ID,
		UserID:       wp.UserID,
		Name:         wp.Name,
		ABN:          wp.ABN,
		Address:      wp.Address,
		ContactName:  wp.ContactName,
		ContactPhone: wp.ContactPhone,
		ContactEmail: wp.ContactEmail,
		Frequency:    string(wp.Frequency),
		StandardRate: wp.StandardRate.String(),
		OvertimeRate: wp.OvertimeRate.String(),
		CreatedAt:    wp.CreatedAt.UTC(),
		UpdatedAt:    wp.UpdatedAt.UTC(),
	}
}

func decodeWorkplace(row workplaceRow) (models.Workplace, error) {
	standard, err := decimal.NewFromString(row.StandardRate)
	if err != nil {
		return models.Workplace{}, err
	}
	overtime, err := decimal.NewFromString(row.OvertimeRate)
	if err != nil {
		return models.Workplace{}, err
	}
	return models.Workplace{
		ID:           row.ID,
		UserID:       row.UserID,
		Name:         row.Name,
		ABN:          row.ABN,
		Address:      row.Address,
		ContactName:  row.ContactName,
		ContactPhone: row.ContactPhone,
		ContactEmail: row.ContactEmail,
		Frequency:    models.Frequency(row.Frequency),
		StandardRate: standard,
		OvertimeRate: overtime,
		CreatedAt:    row.CreatedAt.UTC(),
		UpdatedAt:    row.UpdatedAt.UTC(),
	}, nil
}

type timeSlotRow struct {
	ID        string    `db:"id"`
	UserID    string    `db:"user_id"`
	StartTime time.Time `db:"start_time"`
	EndTime   time.Time `db:"end_time"`
	Day       string    `db:"day"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

func encodeTimeSlot(slot models.TimeSlot) timeSlotRow {
	return timeSlotRow{
		ID:        slot.ID,
		UserID:    slot.UserID,
		StartTime: slot.StartTime.UTC(),
		EndTime:   slot.EndTime.UTC(),
		Day:       slot.Day,
		CreatedAt: slot.CreatedAt.UTC(),
		UpdatedAt: slot.UpdatedAt.UTC(),
	}
}

func decodeTimeSlot(row timeSlotRow) models.TimeSlot {
	return models.TimeSlot{
		ID:        row.ID,
		UserID:    row.UserID,
		StartTime: row.StartTime.UTC(),
		EndTime:   row.EndTime.UTC(),
		Day:       row.Day,
		CreatedAt: row.CreatedAt.UTC(),
		UpdatedAt: row.UpdatedAt.UTC(),
	}
}

type adhocRow struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	IsAvailable bool      `db:"is_available"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	Note        string    `db:"note"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func encodeAdhoc(adhoc models.Adhoc) adhocRow {
	return adhocRow{
		ID:          adhoc.ID,
		UserID:      adhoc.UserID,
		IsAvailable: adhoc.IsAvailable,
		StartTime:   adhoc.StartTime.UTC(),
		EndTime:     adhoc.EndTime.UTC(),
		Note:        adhoc.Note,
		CreatedAt:   adhoc.CreatedAt.UTC(),
		UpdatedAt:   adhoc.UpdatedAt.UTC(),
	}
}

func decodeAdhoc(row adhocRow) models.Adhoc {
	return models.Adhoc{
		ID:          row.ID,
		UserID:      row.UserID,
		IsAvailable: row.IsAvailable,
		StartTime:   row.StartTime.UTC(),
		EndTime:     row.EndTime.UTC(),
		Note:        row.Note,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}

type workShiftRow struct {
	ID          string    `db:"id"`
	UserID      string    `db:"user_id"`
	WorkplaceID string    `db:"workplace_id"`
	Name        string    `db:"name"`
	StartTime   time.Time `db:"start_time"`
	EndTime     time.Time `db:"end_time"`
	Note        string    `db:"note"`
	EventID     string    `db:"event_id"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

func encodeWorkShift(shift models.WorkShift) workShiftRow {
	return workShiftRow{
		ID:          shift.ID,
		UserID:      shift.UserID,
		WorkplaceID: shift.WorkplaceID,
		Name:        shift.Name,
		StartTime:   shift.StartTime.UTC(),
		EndTime:     shift.EndTime.UTC(),
		Note:        shift.Note,
		EventID:     shift.EventID,
		CreatedAt:   shift.CreatedAt.UTC(),
		UpdatedAt:   shift.UpdatedAt.UTC(),
	}
}

func decodeWorkShift(row workShiftRow) models.WorkShift {
	return models.WorkShift{
		ID:          row.ID,
		UserID:      row.UserID,
		WorkplaceID: row.WorkplaceID,
		Name:        row.Name,
		StartTime:   row.StartTime.UTC(),
		EndTime:     row.EndTime.UTC(),
		Note:        row.Note,
		EventID:     row.EventID,
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}
