package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rosterhq/roster-api/internal/middleware"
	"github.com/rosterhq/roster-api/internal/models"
	"github.com/rosterhq/roster-api/internal/service"
	"github.com/rosterhq/roster-api/pkg/response"
)

type userRepoMock struct {
	usersByEmail  map[string]*models.User
	refreshTokens map[string]*models.RefreshToken
}

func newUserRepoMock() *userRepoMock {
	return &userRepoMock{
		usersByEmail:  make(map[string]*models.User),
		refreshTokens: make(map[string]*models.RefreshToken),
	}
}

func (m *userRepoMock) FindByEmail(_ context.Context, email string) (*models.User, error) {
	user, ok := m.usersByEmail[email]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (m *userRepoMock) FindByID(_ context.Context, _ string) (*models.User, error) {
	return nil, sql.ErrNoRows
}

func (m *userRepoMock) ExistsByEmail(_ context.Context, email string) (bool, error) {
	_, ok := m.usersByEmail[email]
	return ok, nil
}

func (m *userRepoMock) Create(_ context.Context, user *models.User) error {
	user.ID = "user-1"
	m.usersByEmail[user.Email] = user
	return nil
}

func (m *userRepoMock) UpdateLastLogin(_ context.Context, _ string, _ time.Time) error { return nil }

func (m *userRepoMock) CreateRefreshToken(_ context.Context, token *models.RefreshToken) error {
	m.refreshTokens[token.Token] = token
	return nil
}

func (m *userRepoMock) FindRefreshToken(_ context.Context, token string) (*models.RefreshToken, error) {
	stored, ok := m.refreshTokens[token]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return stored, nil
}

func (m *userRepoMock) RevokeRefreshToken(_ context.Context, _ string, _ time.Time) error {
	return nil
}

func (m *userRepoMock) UpdatePassword(_ context.Context, _, _ string, _ time.Time) error { return nil }

func (m *userRepoMock) Delete(_ context.Context, _ string) error { return nil }

func (m *userRepoMock) RevokeAllRefreshTokens(_ context.Context, _ string, _ time.Time) error {
	return nil
}

func newAuthHandler() *AuthHandler {
	svc := service.NewAuthService(newUserRepoMock(), nil, zap.NewNop(), service.AuthConfig{
		AccessTokenSecret:  "test-secret",
		AccessTokenExpiry:  15 * time.Minute,
		RefreshTokenExpiry: 24 * time.Hour,
		Issuer:             "roster-api",
	})
	return NewAuthHandler(svc)
}

func TestAuthHandlerRegister(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandler()

	body, _ := json.Marshal(models.RegisterRequest{
		Email:    "dana@example.com",
		FullName: "Dana Reeve",
		Password: "s3cret-pass",
	})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/register", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Register(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.NotEmpty(t, data["access_token"])
	assert.NotEmpty(t, data["refresh_token"])
}

func TestAuthHandlerLoginUnknownUser(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandler()

	body, _ := json.Marshal(models.LoginRequest{Email: "ghost@example.com", Password: "whatever"})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/auth/login", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Login(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerMeRequiresClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Request = req

	handler.Me(c)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthHandlerMe(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newAuthHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/auth/me", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1", Email: "dana@example.com", FullName: "Dana Reeve"})

	handler.Me(c)
	require.Equal(t, http.StatusOK, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "dana@example.com", data["email"])
}
