// Package validation holds the field-level record rules that gate writes.
// Rule violations are reported through FieldErrors, never as Go errors: the
// caller inspects the map and must not persist a record while HasErrors()
// is true.
package validation

import (
	"fmt"
	"regexp"
	"time"
	"unicode/utf8"

	"github.com/rosterhq/roster-api/internal/models"
)

// NoteMaxLength bounds free-text notes on adhocs and work shifts, counted
// in characters rather than encoded bytes.
const NoteMaxLength = 200

const timeOrderMessage = "The end time must be later than the start time."

// FieldErrors maps a field name to its violation message.
type FieldErrors map[string]string

// HasErrors reports whether any field rule was violated.
func (f FieldErrors) HasErrors() bool { return len(f) > 0 }

var (
	nameRe    = regexp.MustCompile(`^[A-Za-z\s\-]+$`)
	abnRe     = regexp.MustCompile(`^[0-9]+$`)
	addressRe = regexp.MustCompile(`^[A-Za-z0-9\s,.-]+$`)
	phoneRe   = regexp.MustCompile(`^[0-9\s+-]+$`)
	emailRe   = regexp.MustCompile(`^[a-zA-Z0-9._-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,4}$`)
)

// ValidateTimeSlot checks a recurring weekly availability window. Only the
// clock time of StartTime and EndTime is compared; their date components
// carry no meaning for recurrence.
func ValidateTimeSlot(slot models.TimeSlot) FieldErrors {
	errs := FieldErrors{}
	if secondOfDay(slot.EndTime) <= secondOfDay(slot.StartTime) {
		errs["time"] = timeOrderMessage
	}
	if !models.IsWeekdayName(slot.Day) {
		errs["day"] = "Day must be a weekday name."
	}
	return errs
}

// ValidateAdhoc checks a one-off availability exception.
func ValidateAdhoc(adhoc models.Adhoc) FieldErrors {
	errs := FieldErrors{}
	if !adhoc.EndTime.After(adhoc.StartTime) {
		errs["time"] = timeOrderMessage
	}
	if utf8.RuneCountInString(adhoc.Note) > NoteMaxLength {
		errs["note"] = noteLengthMessage()
	}
	return errs
}

// ValidateWorkShift checks a scheduled work session.
func ValidateWorkShift(shift models.WorkShift) FieldErrors {
	errs := FieldErrors{}
	if !shift.EndTime.After(shift.StartTime) {
		errs["time"] = timeOrderMessage
	}
	if utf8.RuneCountInString(shift.Note) > NoteMaxLength {
		errs["note"] = noteLengthMessage()
	}
	return errs
}

// ValidateWorkplace checks an employer record's field formats. Name
// uniqueness is a storage concern enforced at write time, not here.
func ValidateWorkplace(wp models.Workplace) FieldErrors {
	errs := FieldErrors{}
	switch {
	case wp.Name == "":
		errs["name"] = "Enter a Name"
	case !nameRe.MatchString(wp.Name):
		errs["name"] = "Invalid Name"
	}
	switch {
	case wp.ABN == "":
		errs["abn"] = "Enter an ABN"
	case !abnRe.MatchString(wp.ABN):
		errs["abn"] = "Invalid ABN"
	}
	switch {
	case wp.Address == "":
		errs["address"] = "Enter an Address"
	case !addressRe.MatchString(wp.Address):
		errs["address"] = "Invalid Address"
	}
	switch {
	case wp.ContactName == "":
		errs["contact_name"] = "Enter a Name"
	case !nameRe.MatchString(wp.ContactName):
		errs["contact_name"] = "Invalid Name"
	}
	switch {
	case wp.ContactPhone == "":
		errs["contact_phone"] = "Enter a phone number"
	case !phoneRe.MatchString(wp.ContactPhone):
		errs["contact_phone"] = "Invalid phone number"
	}
	switch {
	case wp.ContactEmail == "":
		errs["contact_email"] = "Enter an Email"
	case !emailRe.MatchString(wp.ContactEmail):
		errs["contact_email"] = "Invalid Email"
	}
	if !wp.Frequency.Valid() {
		errs["frequency"] = `Frequency must be "Day" or "Hour".`
	}
	if wp.StandardRate.IsNegative() {
		errs["standard_rate"] = "Rate cannot be negative."
	}
	if wp.OvertimeRate.IsNegative() {
		errs["overtime_rate"] = "Rate cannot be negative."
	}
	return errs
}

// ValidateProfile checks personal details attached to an account. now is
// the reference instant for the birthday rule.
func ValidateProfile(p models.Profile, now time.Time) FieldErrors {
	errs := FieldErrors{}
	switch {
	case p.FirstName == "":
		errs["first_name"] = "Enter a Name"
	case !nameRe.MatchString(p.FirstName):
		errs["first_name"] = "Invalid Name"
	}
	switch {
	case p.LastName == "":
		errs["last_name"] = "Enter a Name"
	case !nameRe.MatchString(p.LastName):
		errs["last_name"] = "Invalid Name"
	}
	if !models.IsGenderOption(p.Gender) {
		errs["gender"] = "Select a Gender"
	}
	if p.Birthday.After(now) {
		errs["birthday"] = "You cannot enter a birth date in the future!"
	}
	switch {
	case p.ContactPhone == "":
		errs["contact_phone"] = "Enter a phone number"
	case !phoneRe.MatchString(p.ContactPhone):
		errs["contact_phone"] = "Invalid phone number"
	}
	switch {
	case p.ContactEmail == "":
		errs["contact_email"] = "Enter an Email"
	case !emailRe.MatchString(p.ContactEmail):
		errs["contact_email"] = "Invalid Email"
	}
	switch {
	case p.AddressLine1 == "":
		errs["address_line1"] = "Enter an Address"
	case !addressRe.MatchString(p.AddressLine1):
		errs["address_line1"] = "Invalid Address"
	}
	if p.AddressLine2 != "" && !addressRe.MatchString(p.AddressLine2) {
		errs["address_line2"] = "Invalid Address"
	}
	return errs
}

func noteLengthMessage() string {
	return fmt.Sprintf("Note has a character limit of %d characters.", NoteMaxLength)
}

func secondOfDay(t time.Time) int {
	return t.Hour()*3600 + t.Minute()*60 + t.Second()
}
