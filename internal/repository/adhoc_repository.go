package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/rosterhq/roster-api/internal/models"
)

const adhocColumns = `id, user_id, is_available, start_time, end_time, note, created_at, updated_at`

// AdhocRepository persists one-off availability exceptions.
type AdhocRepository struct {
	db *sqlx.DB
}

// NewAdhocRepository constructs an adhoc repository.
func NewAdhocRepository(db *sqlx.DB) *AdhocRepository {
	return &AdhocRepository{db: db}
}

// Snapshot returns every adhoc owned by userID keyed by id.
func (r *AdhocRepository) Snapshot(ctx context.Context, userID string) (map[string]models.Adhoc, error) {
	query := fmt.Sprintf("SELECT %s FROM adhocs WHERE user_id = $1", adhocColumns)
	var rows []adhocRow
	if err := r.db.SelectContext(ctx, &rows, query, userID); err != nil {
		return nil, fmt.Errorf("snapshot adhocs: %w", err)
	}
	snapshot := make(map[string]models.Adhoc, len(rows))
	for _, row := range rows {
		adhoc := decodeAdhoc(row)
		snapshot[adhoc.ID] = adhoc
	}
	return snapshot, nil
}

// GetByID fetches a single adhoc scoped to its owner.
func (r *AdhocRepository) GetByID(ctx context.Context, id, userID string) (*models.Adhoc, error) {
	query := fmt.Sprintf("SELECT %s FROM adhocs WHERE id = $1 AND user_id = $2", adhocColumns)
	var row adhocRow
	if err := r.db.GetContext(ctx, &row, query, id, userID); err != nil {
		return nil, err
	}
	adhoc := decodeAdhoc(row)
	return &adhoc, nil
}

// Create inserts an adhoc.
func (r *AdhocRepository) Create(ctx context.Context, adhoc *models.Adhoc) error {
	if adhoc.ID == "" {
		adhoc.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if adhoc.CreatedAt.IsZero() {
		adhoc.CreatedAt = now
	}
	adhoc.UpdatedAt = now
	const query = `INSERT INTO adhocs (id, user_id, is_available, start_time, end_time, note, created_at, updated_at)
VALUES (:id, :user_id, :is_available, :start_time, :end_time, :note, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, encodeAdhoc(*adhoc)); err != nil {
		return fmt.Errorf("create adhoc: %w", err)
	}
	return nil
}

// Update modifies an adhoc.
func (r *AdhocRepository) Update(ctx context.Context, adhoc *models.Adhoc) error {
	adhoc.UpdatedAt = time.Now().UTC()
	const query = `UPDATE adhocs SET is_available = :is_available, start_time = :start_time, end_time = :end_time, note = :note, updated_at = :updated_at
WHERE id = :id AND user_id = :user_id`
	res, err := r.db.NamedExecContext(ctx, query, encodeAdhoc(*adhoc))
	if err != nil {
		return fmt.Errorf("update adhoc: %w", err)
	}
	return requireRows(res, "check adhoc update rows")
}

// Delete removes an adhoc.
func (r *AdhocRepository) Delete(ctx context.Context, id, userID string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM adhocs WHERE id = $1 AND user_id = $2", id, userID)
	if err != nil {
		return fmt.Errorf("delete adhoc: %w", err)
	}
	return requireRows(res, "check adhoc delete rows")
}
