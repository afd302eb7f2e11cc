package repository

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster-api/internal/models"
)

func TestWorkplaceCodecRoundTrip(t *testing.T) {
	wp := models.Workplace{
		ID:           "wp-1",
		UserID:       "user-1",
		Name:         "Corner Cafe",
		ABN:          "51824753556",
		Address:      "12 Example St",
		ContactName:  "Dana Smith",
		ContactPhone: "+61 400 000 000",
		ContactEmail: "dana@example.com",
		Frequency:    models.FrequencyHour,
		StandardRate: decimal.RequireFromString("30.50"),
		OvertimeRate: decimal.RequireFromString("45.75"),
		CreatedAt:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		UpdatedAt:    time.Date(2024, 1, 3, 3, 4, 5, 0, time.UTC),
	}

	got, err := decodeWorkplace(encodeWorkplace(wp))
	require.NoError(t, err)
	assert.Equal(t, wp, got)
}

func TestWorkplaceDecodeRejectsBadRate(t *testing.T) {
	row := encodeWorkplace(models.Workplace{StandardRate: decimal.Zero, OvertimeRate: decimal.Zero})
	row.StandardRate = "not-a-number"

	_, err := decodeWorkplace(row)
	assert.Error(t, err)
}

func TestTimeSlotCodecRoundTrip(t *testing.T) {
	slot := models.TimeSlot{
		ID:        "ts-1",
		UserID:    "user-1",
		StartTime: time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC),
		Day:       "Friday",
		CreatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, slot, decodeTimeSlot(encodeTimeSlot(slot)))
}

func TestAdhocCodecRoundTrip(t *testing.T) {
	adhoc := models.Adhoc{
		ID:          "ad-1",
		UserID:      "user-1",
		IsAvailable: true,
		StartTime:   time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2024, 4, 2, 13, 0, 0, 0, time.UTC),
		Note:        "covering for Sam",
		CreatedAt:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, adhoc, decodeAdhoc(encodeAdhoc(adhoc)))
}

func TestWorkShiftCodecRoundTrip(t *testing.T) {
	shift := models.WorkShift{
		ID:          "ws-1",
		UserID:      "user-1",
		WorkplaceID: "wp-1",
		Name:        "Corner Cafe",
		StartTime:   time.Date(2024, 3, 15, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(2024, 3, 15, 17, 0, 0, 0, time.UTC),
		Note:        "bring apron",
		EventID:     "evt-9",
		CreatedAt:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
		UpdatedAt:   time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t, shift, decodeWorkShift(encodeWorkShift(shift)))
}

func TestEncodeNormalizesToUTC(t *testing.T) {
	sydney := time.FixedZone("AEST", 10*3600)
	shift := models.WorkShift{
		StartTime: time.Date(2024, 3, 15, 9, 0, 0, 0, sydney),
		EndTime:   time.Date(2024, 3, 15, 17, 0, 0, 0, sydney),
	}

	row := encodeWorkShift(shift)
	assert.Equal(t, time.UTC, row.StartTime.Location())
	assert.True(t, row.StartTime.Equal(shift.StartTime))
}
