package models

import "time"

// Gender options accepted on a profile.
var GenderOptions = []string{"Male", "Female", "Other", "Prefer not to say"}

// IsGenderOption reports whether gender is one of the accepted options.
func IsGenderOption(gender string) bool {
	for _, option := range GenderOptions {
		if option == gender {
			return true
		}
	}
	return false
}

// Profile holds personal details attached to an account. Each user has at
// most one profile, written with upsert semantics.
type Profile struct {
	UserID       string    `db:"user_id" json:"-"`
	FirstName    string    `db:"first_name" json:"first_name"`
	LastName     string    `db:"last_name" json:"last_name"`
	Gender       string    `db:"gender" json:"gender"`
	Birthday     time.Time `db:"birthday" json:"birthday"`
	ContactPhone string    `db:"contact_phone" json:"contact_phone"`
	ContactEmail string    `db:"contact_email" json:"contact_email"`
	AddressLine1 string    `db:"address_line1" json:"address_line1"`
	AddressLine2 string    `db:"address_line2" json:"address_line2"`
	City         string    `db:"city" json:"city"`
	State        string    `db:"state" json:"state"`
	Postcode     string    `db:"postcode" json:"postcode"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}
