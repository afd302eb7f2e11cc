package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rosterhq/roster-api/internal/models"
)

const workplaceColumns = `id, user_id, name, abn, address, contact_name, contact_phone, contact_email, frequency, standard_rate, overtime_rate, created_at, updated_at`

// WorkplaceRepository persists employer records.
type WorkplaceRepository struct {
	db *sqlx.DB
}

// NewWorkplaceRepository constructs a workplace repository.
func NewWorkplaceRepository(db *sqlx.DB) *WorkplaceRepository {
	return &WorkplaceRepository{db: db}
}

// Snapshot returns every workplace owned by userID keyed by id.
func (r *WorkplaceRepository) Snapshot(ctx context.Context, userID string) (map[string]models.Workplace, error) {
	query := fmt.Sprintf("SELECT %s FROM workplaces WHERE user_id = $1", workplaceColumns)
	var rows []workplaceRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("snapshot workplaces: %w", err)
	}
	snapshot := make(map[string]models.Workplace, len(rows))
	for _, row := range rows {
		wp, err := decodeWorkplace(row)
		if err != nil {
			return nil, fmt.Errorf("decode workplace %s: %w", row.ID, err)
		}
		snapshot[wp.ID] = wp
	}
	return snapshot, nil
}

// GetByID fetches a single workplace scoped to its owner.
func (r *WorkplaceRepository) GetByID(ctx context.Context, id, userID string) (*models.Workplace, error) {
	query := fmt.Sprintf("SELECT %s FROM workplaces WHERE id = $1 AND user_id = $2", workplaceColumns)
	var row workplaceRow
	if err := r.db.GetContext(ctx, &row, query, id, userID); err != nil {
		return nil, err
	}
	wp, err := decodeWorkplace(row)
	if err != nil {
		return nil, fmt.Errorf("decode workplace %s: %w", id, err)
	}
	return &wp, nil
}

// ExistsByName reports whether the user already has a workplace with the
// given name, ignoring excludeID (pass "" on create).
func (r *WorkplaceRepository) ExistsByName(ctx context.Context, userID, name, excludeID string) (bool, error) {
	const query = `SELECT 1 FROM workplaces WHERE user_id = $1 AND LOWER(name) = LOWER($2) AND id <> $3 LIMIT 1`
	var one int
	err := r.db.GetContext(ctx, &one, query, userID, name, excludeID)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("check workplace name: %w", err)
	}
	return true, nil
}

// Create inserts a workplace.
func (r *WorkplaceRepository) Create(ctx context.Context, wp *models.Workplace) error {
	if wp.ID == "" {
		wp.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if wp.CreatedAt.IsZero() {
		wp.CreatedAt = now
	}
	wp.UpdatedAt = now
	const query = `INSERT INTO workplaces (id, user_id, name, abn, address, contact_name, contact_phone, contact_email, frequency, standard_rate, overtime_rate, created_at, updated_at)
VALUES (:id, :user_id, :name, :abn, :address, :contact_name, :contact_phone, :contact_email, :frequency, :standard_rate, :overtime_rate, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, encodeWorkplace(*wp)); err != nil {
		return fmt.Errorf("create workplace: %w", err)
	}
	return nil
}

// Update modifies a workplace in place.
func (r *WorkplaceRepository) Update(ctx context.Context, wp *models.Workplace) error {
	wp.UpdatedAt = time.Now().UTC()
	const query = `UPDATE workplaces SET name = :name, abn = :abn, address = :address, contact_name = :contact_name,
contact_phone = :contact_phone, contact_email = :contact_email, frequency = :frequency,
standard_rate = :standard_rate, overtime_rate = :overtime_rate, updated_at = :updated_at
WHERE id = :id AND user_id = :user_id`
	res, err := r.db.NamedExecContext(ctx, query, encodeWorkplace(*wp))
	if err != nil {
		return fmt.Errorf("update workplace: %w", err)
	}
	return requireRows(res, "check workplace update rows")
}

// Delete removes a workplace.
func (r *WorkplaceRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM workplaces WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete workplace: %w", err)
	}
	return requireRows(res, "check workplace delete rows")
}
