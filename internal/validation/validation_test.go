package validation

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/rosterhq/roster-api/internal/models"
)

func TestValidateTimeSlot(t *testing.T) {
	morning := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)
	evening := time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		slot      models.TimeSlot
		wantField string
	}{
		{
			name: "valid slot",
			slot: models.TimeSlot{StartTime: morning, EndTime: evening, Day: "Monday"},
		},
		{
			name:      "end before start",
			slot:      models.TimeSlot{StartTime: evening, EndTime: morning, Day: "Monday"},
			wantField: "time",
		},
		{
			name:      "end equals start",
			slot:      models.TimeSlot{StartTime: morning, EndTime: morning, Day: "Monday"},
			wantField: "time",
		},
		{
			// Different dates but a later clock time on the earlier date:
			// only time-of-day counts for recurring slots.
			name: "clock time wins over date",
			slot: models.TimeSlot{
				StartTime: time.Date(2024, 3, 20, 9, 0, 0, 0, time.UTC),
				EndTime:   time.Date(2024, 3, 1, 17, 0, 0, 0, time.UTC),
				Day:       "Friday",
			},
		},
		{
			name:      "bad day name",
			slot:      models.TimeSlot{StartTime: morning, EndTime: evening, Day: "Funday"},
			wantField: "day",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			errs := ValidateTimeSlot(tt.slot)
			if tt.wantField == "" {
				assert.False(t, errs.HasErrors(), "unexpected errors: %v", errs)
				return
			}
			assert.True(t, errs.HasErrors())
			assert.Contains(t, errs, tt.wantField)
		})
	}
}

func TestValidateAdhoc(t *testing.T) {
	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	valid := models.Adhoc{IsAvailable: true, StartTime: start, EndTime: start.Add(4 * time.Hour), Note: "covering for Sam"}
	assert.False(t, ValidateAdhoc(valid).HasErrors())

	inverted := valid
	inverted.EndTime = start.Add(-time.Hour)
	errs := ValidateAdhoc(inverted)
	assert.True(t, errs.HasErrors())
	assert.Contains(t, errs, "time")

	longNote := valid
	longNote.Note = strings.Repeat("x", NoteMaxLength+1)
	errs = ValidateAdhoc(longNote)
	assert.True(t, errs.HasErrors())
	assert.Contains(t, errs, "note")

	boundary := valid
	boundary.Note = strings.Repeat("x", NoteMaxLength)
	assert.False(t, ValidateAdhoc(boundary).HasErrors())

	// Multi-byte runes count as one character each, not per encoded byte.
	accented := valid
	accented.Note = strings.Repeat("é", NoteMaxLength)
	assert.False(t, ValidateAdhoc(accented).HasErrors())

	accented.Note = strings.Repeat("é", NoteMaxLength+1)
	errs = ValidateAdhoc(accented)
	assert.True(t, errs.HasErrors())
	assert.Contains(t, errs, "note")
}

func TestValidateWorkShift(t *testing.T) {
	start := time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC)

	valid := models.WorkShift{WorkplaceID: "wp-1", Name: "Cafe", StartTime: start, EndTime: start.Add(8 * time.Hour)}
	assert.False(t, ValidateWorkShift(valid).HasErrors())

	// Unassigned workplace is allowed.
	unassigned := valid
	unassigned.WorkplaceID = ""
	assert.False(t, ValidateWorkShift(unassigned).HasErrors())

	both := valid
	both.EndTime = start
	both.Note = strings.Repeat("n", NoteMaxLength+1)
	errs := ValidateWorkShift(both)
	assert.True(t, errs.HasErrors())
	assert.Contains(t, errs, "time")
	assert.Contains(t, errs, "note")

	multibyte := valid
	multibyte.Note = strings.Repeat("日", NoteMaxLength)
	assert.False(t, ValidateWorkShift(multibyte).HasErrors())
}

func TestValidateProfile(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)

	valid := models.Profile{
		FirstName:    "Dana",
		LastName:     "Reeve",
		Gender:       "Female",
		Birthday:     time.Date(1994, 6, 12, 0, 0, 0, 0, time.UTC),
		ContactPhone: "0412 345 678",
		ContactEmail: "dana@example.com",
		AddressLine1: "12 King Street",
		AddressLine2: "Unit 3",
		City:         "Newtown",
		State:        "NSW",
		Postcode:     "2042",
	}
	assert.False(t, ValidateProfile(valid, now).HasErrors())

	// Second address line is optional.
	noLine2 := valid
	noLine2.AddressLine2 = ""
	assert.False(t, ValidateProfile(noLine2, now).HasErrors())

	tests := []struct {
		name      string
		mutate    func(*models.Profile)
		wantField string
		wantMsg   string
	}{
		{"missing first name", func(p *models.Profile) { p.FirstName = "" }, "first_name", "Enter a Name"},
		{"bad first name", func(p *models.Profile) { p.FirstName = "D4na" }, "first_name", "Invalid Name"},
		{"missing last name", func(p *models.Profile) { p.LastName = "" }, "last_name", "Enter a Name"},
		{"bad gender", func(p *models.Profile) { p.Gender = "Unknown" }, "gender", "Select a Gender"},
		{"future birthday", func(p *models.Profile) { p.Birthday = now.Add(24 * time.Hour) }, "birthday", "You cannot enter a birth date in the future!"},
		{"bad phone", func(p *models.Profile) { p.ContactPhone = "call me" }, "contact_phone", "Invalid phone number"},
		{"bad email", func(p *models.Profile) { p.ContactEmail = "not-an-email" }, "contact_email", "Invalid Email"},
		{"missing address", func(p *models.Profile) { p.AddressLine1 = "" }, "address_line1", "Enter an Address"},
		{"bad second address line", func(p *models.Profile) { p.AddressLine2 = "Unit #3" }, "address_line2", "Invalid Address"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			errs := ValidateProfile(p, now)
			assert.True(t, errs.HasErrors())
			assert.Equal(t, tt.wantMsg, errs[tt.wantField])
		})
	}
}

func TestValidateWorkplace(t *testing.T) {
	valid := models.Workplace{
		Name:         "Corner Cafe",
		ABN:          "51824753556",
		Address:      "12 Example St, Melbourne",
		ContactName:  "Dana Smith",
		ContactPhone: "+61 400 000 000",
		ContactEmail: "dana@example.com",
		Frequency:    models.FrequencyHour,
		StandardRate: decimal.RequireFromString("30.00"),
		OvertimeRate: decimal.RequireFromString("45.00"),
	}
	assert.False(t, ValidateWorkplace(valid).HasErrors())

	tests := []struct {
		name      string
		mutate    func(*models.Workplace)
		wantField string
	}{
		{"missing name", func(w *models.Workplace) { w.Name = "" }, "name"},
		{"bad name", func(w *models.Workplace) { w.Name = "Cafe #1" }, "name"},
		{"bad abn", func(w *models.Workplace) { w.ABN = "51-824" }, "abn"},
		{"missing address", func(w *models.Workplace) { w.Address = "" }, "address"},
		{"bad contact name", func(w *models.Workplace) { w.ContactName = "D4na" }, "contact_name"},
		{"bad phone", func(w *models.Workplace) { w.ContactPhone = "call me" }, "contact_phone"},
		{"bad email", func(w *models.Workplace) { w.ContactEmail = "not-an-email" }, "contact_email"},
		{"bad frequency", func(w *models.Workplace) { w.Frequency = "Week" }, "frequency"},
		{"negative rate", func(w *models.Workplace) { w.StandardRate = decimal.RequireFromString("-1") }, "standard_rate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			wp := valid
			tt.mutate(&wp)
			errs := ValidateWorkplace(wp)
			assert.True(t, errs.HasErrors())
			assert.Contains(t, errs, tt.wantField)
		})
	}
}
