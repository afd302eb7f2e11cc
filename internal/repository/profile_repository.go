package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/rosterhq/roster-api/internal/models"
)

const profileColumns = `user_id, first_name, last_name, gender, birthday, contact_phone, contact_email, address_line1, address_line2, city, state, postcode, created_at, updated_at`

// ProfileRepository persists the single profile document per account.
type ProfileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository constructs a profile repository.
func NewProfileRepository(db *sqlx.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// GetByUser fetches the user's profile. Returns sql.ErrNoRows when none has
// been saved yet.
func (r *ProfileRepository) GetByUser(ctx context.Context, userID string) (*models.Profile, error) {
	query := fmt.Sprintf("SELECT %s FROM profiles WHERE user_id = $1", profileColumns)
	var profile models.Profile
	if err := r.db.GetContext(ctx, &profile, query, userID); err != nil {
		return nil, err
	}
	return &profile, nil
}

// Upsert creates the profile on first save and overwrites it afterwards.
func (r *ProfileRepository) Upsert(ctx context.Context, profile *models.Profile) error {
	now := time.Now().UTC()
	if profile.CreatedAt.IsZero() {
		profile.CreatedAt = now
	}
	profile.UpdatedAt = now
	const query = `INSERT INTO profiles (user_id, first_name, last_name, gender, birthday, contact_phone,
contact_email, address_line1, address_line2, city, state, postcode, created_at, updated_at)
VALUES (:user_id, :first_name, :last_name, :gender, :birthday, :contact_phone,
:contact_email, :address_line1, :address_line2, :city, :state, :postcode, :created_at, :updated_at)
ON CONFLICT (user_id) DO UPDATE SET first_name = EXCLUDED.first_name, last_name = EXCLUDED.last_name,
gender = EXCLUDED.gender, birthday = EXCLUDED.birthday, contact_phone = EXCLUDED.contact_phone,
contact_email = EXCLUDED.contact_email, address_line1 = EXCLUDED.address_line1,
address_line2 = EXCLUDED.address_line2, city = EXCLUDED.city, state = EXCLUDED.state,
postcode = EXCLUDED.postcode, updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, profile); err != nil {
		return fmt.Errorf("upsert profile: %w", err)
	}
	return nil
}
