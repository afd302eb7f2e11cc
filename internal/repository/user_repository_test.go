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

func TestUserRepositoryFindByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	now := time.Now().UTC()
	rows := sqlmock.NewRows([]string{"id", "email", "full_name", "password_hash", "active", "last_login_at", "created_at", "updated_at"}).
		AddRow("user-1", "dana@example.com", "Dana Reeve", "hash", true, nil, now, now)
	mock.ExpectQuery("SELECT (.+) FROM users WHERE LOWER\\(email\\) = LOWER\\(\\$1\\)").
		WithArgs("Dana@Example.com").
		WillReturnRows(rows)

	user, err := repo.FindByEmail(context.Background(), "Dana@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "user-1", user.ID)
	assert.True(t, user.Active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryExistsByEmail(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM users").
		WithArgs("dana@example.com").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	exists, err := repo.ExistsByEmail(context.Background(), "dana@example.com")
	require.NoError(t, err)
	assert.True(t, exists)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryCreateAssignsID(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO users").
		WillReturnResult(sqlmock.NewResult(1, 1))

	user := &models.User{Email: "dana@example.com", FullName: "Dana Reeve", PasswordHash: "hash", Active: true}
	require.NoError(t, repo.Create(context.Background(), user))
	assert.NotEmpty(t, user.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryUpdatePassword(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("UPDATE users SET password_hash = \\$2").
		WithArgs("user-1", "new-hash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.UpdatePassword(context.Background(), "user-1", "new-hash", time.Now().UTC()))

	// An unknown id affects no rows and reports not-found.
	mock.ExpectExec("UPDATE users SET password_hash = \\$2").
		WithArgs("user-9", "new-hash", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(0, 0))
	err := repo.UpdatePassword(context.Background(), "user-9", "new-hash", time.Now().UTC())
	require.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryDelete(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("DELETE FROM users WHERE id = \\$1").
		WithArgs("user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	require.NoError(t, repo.Delete(context.Background(), "user-1"))

	mock.ExpectExec("DELETE FROM users WHERE id = \\$1").
		WithArgs("user-9").
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.ErrorIs(t, repo.Delete(context.Background(), "user-9"), sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestUserRepositoryRefreshTokenRoundTrip(t *testing.T) {
	db, mock, cleanup := newRepoMock(t)
	defer cleanup()
	repo := NewUserRepository(db)

	mock.ExpectExec("INSERT INTO refresh_tokens").
		WillReturnResult(sqlmock.NewResult(1, 1))

	expires := time.Now().UTC().Add(24 * time.Hour)
	token := &models.RefreshToken{ID: "rt-1", UserID: "user-1", Token: "opaque", ExpiresAt: expires, CreatedAt: time.Now().UTC()}
	require.NoError(t, repo.CreateRefreshToken(context.Background(), token))

	rows := sqlmock.NewRows([]string{"id", "user_id", "token", "expires_at", "created_at", "revoked", "revoked_at"}).
		AddRow("rt-1", "user-1", "opaque", expires, time.Now().UTC(), false, nil)
	mock.ExpectQuery("SELECT (.+) FROM refresh_tokens WHERE token = \\$1").
		WithArgs("opaque").
		WillReturnRows(rows)

	stored, err := repo.FindRefreshToken(context.Background(), "opaque")
	require.NoError(t, err)
	assert.Equal(t, "rt-1", stored.ID)
	assert.False(t, stored.Revoked)

	mock.ExpectExec("UPDATE refresh_tokens SET revoked = TRUE").
		WithArgs("rt-1", sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))
	require.NoError(t, repo.RevokeRefreshToken(context.Background(), "rt-1", time.Now().UTC()))
	assert.NoError(t, mock.ExpectationsWereMet())
}
