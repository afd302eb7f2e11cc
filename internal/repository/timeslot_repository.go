package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rosterhq/roster-api/internal/models"
)

const timeSlotColumns = `id, user_id, start_time, end_time, day, created_at, updated_at`

// TimeSlotRepository persists recurring weekly availability windows.
type TimeSlotRepository struct {
	db *sqlx.DB
}

// NewTimeSlotRepository constructs a time slot repository.
func NewTimeSlotRepository(db *sqlx.DB) *TimeSlotRepository {
	return &TimeSlotRepository{db: db}
}

// Snapshot returns every time slot owned by userID keyed by id.
func (r *TimeSlotRepository) Snapshot(ctx context.Context, userID string) (map[string]models.TimeSlot, error) {
	query := fmt.Sprintf("SELECT %s FROM time_slots WHERE user_id = $1", timeSlotColumns)
	var rows []timeSlotRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("snapshot time slots: %w", err)
	}
	snapshot := make(map[string]models.TimeSlot, len(rows))
	for _, row := range rows {
		slot := decodeTimeSlot(row)
		snapshot[slot.ID] = slot
	}
	return snapshot, nil
}

// GetByID fetches a single time slot scoped to its owner.
func (r *TimeSlotRepository) GetByID(ctx context.Context, id, userID string) (*models.TimeSlot, error) {
	query := fmt.Sprintf("SELECT %s FROM time_slots WHERE id = $1 AND user_id = $2", timeSlotColumns)
	var row timeSlotRow
	if err := r.db.GetContext(ctx, &row, query, id, userID); err != nil {
		return nil, err
	}
	slot := decodeTimeSlot(row)
	return &slot, nil
}

// Create inserts a time slot.
func (r *TimeSlotRepository) Create(ctx context.Context, slot *models.TimeSlot) error {
	if slot.ID == "" {
		slot.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if slot.CreatedAt.IsZero() {
		slot.CreatedAt = now
	}
	slot.UpdatedAt = now
	const query = `INSERT INTO time_slots (id, user_id, start_time, end_time, day, created_at, updated_at)
VALUES (:id, :user_id, :start_time, :end_time, :day, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, encodeTimeSlot(*slot)); err != nil {
		return fmt.Errorf("create time slot: %w", err)
	}
	return nil
}

// Update modifies a time slot.
func (r *TimeSlotRepository) Update(ctx context.Context, slot *models.TimeSlot) error {
	slot.UpdatedAt = time.Now().UTC()
	const query = `UPDATE time_slots SET start_time = :start_time, end_time = :end_time, day = :day, updated_at = :updated_at
WHERE id = :id AND user_id = :user_id`
	res, err := r.db.NamedExecContext(ctx, query, encodeTimeSlot(*slot))
	if err != nil {
		return fmt.Errorf("update time slot: %w", err)
	}
	return requireRows(res, "check time slot update rows")
}

// Delete removes a time slot.
func (r *TimeSlotRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM time_slots WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete time slot: %w", err)
	}
	return requireRows(res, "check time slot delete rows")
}
