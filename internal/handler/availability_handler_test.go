package handler

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
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

type timeSlotRepoMock struct {
	records map[string]models.TimeSlot
}

func (m *timeSlotRepoMock) Snapshot(_ context.Context, _ string) (map[string]models.TimeSlot, error) {
	return m.records, nil
}

func (m *timeSlotRepoMock) GetByID(_ context.Context, id, _ string) (*models.TimeSlot, error) {
	slot, ok := m.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &slot, nil
}

func (m *timeSlotRepoMock) Create(_ context.Context, slot *models.TimeSlot) error {
	slot.ID = "slot-1"
	return nil
}

func (m *timeSlotRepoMock) Update(_ context.Context, _ *models.TimeSlot) error { return nil }
func (m *timeSlotRepoMock) Delete(_ context.Context, _, _ string) error        { return nil }

type adhocRepoMock struct {
	records map[string]models.Adhoc
}

func (m *adhocRepoMock) Snapshot(_ context.Context, _ string) (map[string]models.Adhoc, error) {
	return m.records, nil
}

func (m *adhocRepoMock) GetByID(_ context.Context, id, _ string) (*models.Adhoc, error) {
	adhoc, ok := m.records[id]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return &adhoc, nil
}

func (m *adhocRepoMock) Create(_ context.Context, adhoc *models.Adhoc) error {
	adhoc.ID = "adhoc-1"
	return nil
}

func (m *adhocRepoMock) Update(_ context.Context, _ *models.Adhoc) error { return nil }
func (m *adhocRepoMock) Delete(_ context.Context, _, _ string) error     { return nil }

func newAvailabilityHandler(slots *timeSlotRepoMock, adhocs *adhocRepoMock) *AvailabilityHandler {
	svc := service.NewAvailabilityService(slots, adhocs, nil, zap.NewNop(), nil, nil)
	return NewAvailabilityHandler(svc)
}

func availabilityTestContext(t *testing.T, method, path string, body []byte) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, err := http.NewRequest(method, path, bytes.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")
	c.Request = req
	c.Set(middleware.ContextUserKey, &models.JWTClaims{UserID: "user-1"})
	return c, w
}

func TestAvailabilityHandlerCreateTimeSlot(t *testing.T) {
	handler := newAvailabilityHandler(&timeSlotRepoMock{records: map[string]models.TimeSlot{}}, &adhocRepoMock{})
	body, _ := json.Marshal(map[string]interface{}{
		"start_time": "2024-03-04T09:00:00Z",
		"end_time":   "2024-03-04T17:00:00Z",
		"day":        "Monday",
	})
	c, w := availabilityTestContext(t, http.MethodPost, "/availability/slots", body)

	handler.CreateTimeSlot(c)
	require.Equal(t, http.StatusCreated, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	data, ok := envelope.Data.(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "slot-1", data["id"])
	assert.Equal(t, "Monday", data["day"])
}

func TestAvailabilityHandlerCreateTimeSlotBadDay(t *testing.T) {
	handler := newAvailabilityHandler(&timeSlotRepoMock{records: map[string]models.TimeSlot{}}, &adhocRepoMock{})
	body, _ := json.Marshal(map[string]interface{}{
		"start_time": "2024-03-04T09:00:00Z",
		"end_time":   "2024-03-04T17:00:00Z",
		"day":        "Funday",
	})
	c, w := availabilityTestContext(t, http.MethodPost, "/availability/slots", body)

	handler.CreateTimeSlot(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "VALIDATION_ERROR", envelope.Error.Code)
	assert.Contains(t, envelope.Error.Fields, "day")
}

func TestAvailabilityHandlerCreateAdhocNoteTooLong(t *testing.T) {
	handler := newAvailabilityHandler(&timeSlotRepoMock{}, &adhocRepoMock{records: map[string]models.Adhoc{}})
	body, _ := json.Marshal(map[string]interface{}{
		"is_available": true,
		"start_time":   "2024-03-04T09:00:00Z",
		"end_time":     "2024-03-04T17:00:00Z",
		"note":         strings.Repeat("x", 201),
	})
	c, w := availabilityTestContext(t, http.MethodPost, "/availability/adhocs", body)

	handler.CreateAdhoc(c)
	require.Equal(t, http.StatusBadRequest, w.Code)

	var envelope response.Envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.NotNil(t, envelope.Error)
	assert.Contains(t, envelope.Error.Fields, "note")
}

func TestAvailabilityHandlerGetAdhocNotFound(t *testing.T) {
	handler := newAvailabilityHandler(&timeSlotRepoMock{}, &adhocRepoMock{records: map[string]models.Adhoc{}})
	c, w := availabilityTestContext(t, http.MethodGet, "/availability/adhocs/missing", nil)
	c.Params = gin.Params{{Key: "id", Value: "missing"}}

	handler.GetAdhoc(c)
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestAvailabilityHandlerDeleteTimeSlot(t *testing.T) {
	existing := models.TimeSlot{ID: "slot-1", UserID: "user-1", Day: "Tuesday",
		StartTime: time.Date(2024, 3, 5, 9, 0, 0, 0, time.UTC),
		EndTime:   time.Date(2024, 3, 5, 17, 0, 0, 0, time.UTC)}
	handler := newAvailabilityHandler(&timeSlotRepoMock{records: map[string]models.TimeSlot{"slot-1": existing}}, &adhocRepoMock{})
	c, w := availabilityTestContext(t, http.MethodDelete, "/availability/slots/slot-1", nil)
	c.Params = gin.Params{{Key: "id", Value: "slot-1"}}

	handler.DeleteTimeSlot(c)
	require.Equal(t, http.StatusNoContent, w.Code)
}
