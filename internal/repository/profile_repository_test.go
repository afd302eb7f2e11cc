package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rosterhq/roster-api/internal/models"
)

func TestProfileRepositoryGetByUser(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	now := time.Now().UTC()
	birthday := time.Date(1994, 6, 12, 0, 0, 0, 0, time.UTC)
	rows := sqlmock.NewRows([]string{
		"user_id", "first_name", "last_name", "gender", "birthday", "contact_phone",
		"contact_email", "address_line1", "address_line2", "city", "state", "postcode",
		"created_at", "updated_at",
	}).AddRow("user-1", "Dana", "Reeve", "Female", birthday, "0412345678",
		"dana@example.com", "12 King Street", "", "Newtown", "NSW", "2042", now, now)
	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id = \\$1").
		WithArgs("user-1").
		WillReturnRows(rows)

	profile, err := repo.GetByUser(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "Dana", profile.FirstName)
	assert.Equal(t, "2042", profile.Postcode)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositoryGetByUserMissing(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	mock.ExpectQuery("SELECT (.+) FROM profiles WHERE user_id = \\$1").
		WithArgs("user-1").
		WillReturnError(sql.ErrNoRows)

	_, err := repo.GetByUser(context.Background(), "user-1")
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestProfileRepositoryUpsert(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewProfileRepository(db)

	mock.ExpectExec("INSERT INTO profiles").
		WillReturnResult(sqlmock.NewResult(1, 1))

	profile := &models.Profile{
		UserID:       "user-1",
		FirstName:    "Dana",
		LastName:     "Reeve",
		Gender:       "Female",
		Birthday:     time.Date(1994, 6, 12, 0, 0, 0, 0, time.UTC),
		ContactPhone: "0412345678",
		ContactEmail: "dana@example.com",
		AddressLine1: "12 King Street",
		City:         "Newtown",
		State:        "NSW",
		Postcode:     "2042",
	}
	require.NoError(t, repo.Upsert(context.Background(), profile))
	assert.False(t, profile.CreatedAt.IsZero())
	assert.False(t, profile.UpdatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}
