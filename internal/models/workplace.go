package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Frequency is the unit a workplace's pay rate is expressed in.
type Frequency string

const (
	FrequencyDay  Frequency = "Day"
	FrequencyHour Frequency = "Hour"
)

// Valid reports whether the frequency is one of the supported units.
func (f Frequency) Valid() bool {
	return f == FrequencyDay || f == FrequencyHour
}

// Workplace is an employer record. Names are unique per owning user.
type Workplace struct {
	ID           string          `db:"id" json:"id"`
	UserID       string          `db:"user_id" json:"-"`
	Name         string          `db:"name" json:"name"`
	ABN          string          `db:"abn" json:"abn"`
	Address      string          `db:"address" json:"address"`
	ContactName  string          `db:"contact_name" json:"contact_name"`
	ContactPhone string          `db:"contact_phone" json:"contact_phone"`
	ContactEmail string          `db:"contact_email" json:"contact_email"`
	Frequency    Frequency       `db:"frequency" json:"frequency"`
	StandardRate decimal.Decimal `db:"standard_rate" json:"standard_rate"`
	OvertimeRate decimal.Decimal `db:"overtime_rate" json:"overtime_rate"`
	CreatedAt    time.Time       `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time       `db:"updated_at" json:"updated_at"`
}
