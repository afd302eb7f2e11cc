package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rosterhq/roster-api/internal/middleware"
	"github.com/rosterhq/roster-api/internal/models"
	"github.com/rosterhq/roster-api/internal/service"
	"github.com/rosterhq/roster-api/pkg/response"
)

type workplaceRepoMock struct {
	records   map[string]models.Workplace
	duplicate bool
	lastUser  string
}

func (m *workplaceRepoMock) Snapshot(_ context.Context, userID string) (map[string]models.Workplace, error) {
	m.lastUser = userID
	return m.records, nil
}

func (m *workplaceRepoMock) GetByID(_ context.Context, id, userID string) (*models.Workplace, error) {
	m.lastUser = userID
	wp, ok := m.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &wp, nil
}

func (m *workplaceRepoMock) ExistsByName(_ context.Context, _, _, _ string) (bool, error) {
	return m.duplicate, nil
}

func (m *workplaceRepoMock) Create(_ context.Context, wp *models.Workplace) error {
	wp.ID = "wp-1"
	return nil
}

func (m *workplaceRepoMock) Update(_ context.Context, _ *models.Workplace) error { return nil }
func (m *workplaceRepoMock) Delete(_ context.Context, _, _ string) error         { return nil }

func workplacePayload() []byte {
	body, _ := json.Marshal(map[string]interface{}{
		"name":          "Corner Cafe",
		"abn":           "51824753556",
		"address":       "12 King Street, Newtown",
		"contact_name":  "Dana Reeve",
		"contact_phone": "0412345678",
		"contact_email": "dana@cornercafe.example",
		"frequency":     "Hour",
		"standard_rate": "30.50",
		"overtime_rate": "45.75",
	})
	return body
}

func newWorkplaceHandler(repo *workplaceRepoMock) *WorkplaceHandler {
	svc := service.NewWorkplaceService(repo, nil, zap.NewNop(), nil)
	return NewWorkplaceHandler(svc)
}

func TestWorkplaceHandlerCreate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newWorkplaceHandler(&workplaceRepoMock{records: map[string]models.Workplace{}})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/workplaces", bytes.NewReader(workplacePayload()))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1"})

	handler.Create(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "wp-1", data["id"])
	assert.Equal(t, "Corner Cafe", data["name"])
}

func TestWorkplaceHandlerCreateDuplicateName(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newWorkplaceHandler(&workplaceRepoMock{duplicate: true})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/workplaces", bytes.NewReader(workplacePayload()))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	require.Equal(t, http.StatusConflict, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "DUPLICATE_NAME", envelope.Error.Code)
}

func TestWorkplaceHandlerCreateInvalidBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newWorkplaceHandler(&workplaceRepoMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodPost, "/workplaces", bytes.NewReader([]byte(`invalid`)))
	req.Header.Set("Content-Type", "application/json")
	c.Request = req

	handler.Create(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWorkplaceHandlerGetNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := newWorkplaceHandler(&workplaceRepoMock{})
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/workplaces/missing", nil)
	c.Request = req
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestWorkplaceHandlerListScopesAnonymous(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &workplaceRepoMock{records: map[string]models.Workplace{}}
	handler := newWorkplaceHandler(repo)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/workplaces", nil)
	c.Request = req

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, models.AnonymousUserID, repo.lastUser)
}

func TestWorkplaceHandlerListScopesByClaims(t *testing.T) {
	gin.SetMode(gin.TestMode)
	repo := &workplaceRepoMock{records: map[string]models.Workplace{}}
	handler := newWorkplaceHandler(repo)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/workplaces", nil)
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-7"})

	handler.List(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "user-7", repo.lastUser)
}
