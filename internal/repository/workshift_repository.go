package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rosterhq/roster-api/internal/models"
)

const workShiftColumns = `id, user_id, workplace_id, name, start_time, end_time, note, event_id, created_at, updated_at`

// WorkShiftRepository persists work sessions.
type WorkShiftRepository struct {
	db *sqlx.DB
}

// NewWorkShiftRepository constructs a work shift repository.
func NewWorkShiftRepository(db *sqlx.DB) *WorkShiftRepository {
	return &WorkShiftRepository{db: db}
}

// Snapshot returns every shift owned by userID keyed by id.
func (r *WorkShiftRepository) Snapshot(ctx context.Context, userID string) (map[string]models.WorkShift, error) {
	query := fmt.Sprintf("SELECT %s FROM work_shifts WHERE user_id = $1", workShiftColumns)
	var rows []workShiftRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("snapshot work shifts: %w", err)
	}
	snapshot := make(map[string]models.WorkShift, len(rows))
	for _, row := range rows {
		shift := decodeWorkShift(row)
		snapshot[shift.ID] = shift
	}
	return snapshot, nil
}

// ListOrdered returns the user's shifts sorted by start time, the order the
// calendar feed emits them in.
func (r *WorkShiftRepository) ListOrdered(ctx context.Context, userID string) ([]models.WorkShift, error) {
	query := fmt.Sprintf("SELECT %s FROM work_shifts WHERE user_id = $1 ORDER BY start_time ASC, id ASC", workShiftColumns)
	var rows []workShiftRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("list work shifts: %w", err)
	}
	shifts := make([]models.WorkShift, 0, len(rows))
	for _, row := range rows {
		shifts = append(shifts, decodeWorkShift(row))
	}
	return shifts, nil
}

// GetByID fetches a single shift scoped to its owner.
func (r *WorkShiftRepository) GetByID(ctx context.Context, id, userID string) (*models.WorkShift, error) {
	query := fmt.Sprintf("SELECT %s FROM work_shifts WHERE id = $1 AND user_id = $2", workShiftColumns)
	var row workShiftRow
	if err := r.db.GetContext(ctx, &row, query, id, userID); err != nil {
		return nil, err
	}
	shift := decodeWorkShift(row)
	return &shift, nil
}

// Create inserts a shift.
func (r *WorkShiftRepository) Create(ctx context.Context, shift *models.WorkShift) error {
	if shift.ID == "" {
		shift.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if shift.CreatedAt.IsZero() {
		shift.CreatedAt = now
	}
	shift.UpdatedAt = now
	const query = `INSERT INTO work_shifts (id, user_id, workplace_id, name, start_time, end_time, note, event_id, created_at, updated_at)
VALUES (:id, :user_id, :workplace_id, :name, :start_time, :end_time, :note, :event_id, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, encodeWorkShift(*shift)); err != nil {
		return fmt.Errorf("create work shift: %w", err)
	}
	return nil
}

// Update modifies a shift.
func (r *WorkShiftRepository) Update(ctx context.Context, shift *models.WorkShift) error {
	shift.UpdatedAt = time.Now().UTC()
	const query = `UPDATE work_shifts SET workplace_id = :workplace_id, name = :name, start_time = :start_time,
end_time = :end_time, note = :note, event_id = :event_id, updated_at = :updated_at
WHERE id = :id AND user_id = :user_id`
	res, err := r.db.NamedExecContext(ctx, query, encodeWorkShift(*shift))
	if err != nil {
		return fmt.Errorf("update work shift: %w", err)
	}
	return requireRows(res, "check work shift update rows")
}

// Delete removes a shift.
func (r *WorkShiftRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM work_shifts WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete work shift: %w", err)
	}
	return requireRows(res, "check work shift delete rows")
}
