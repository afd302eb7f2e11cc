package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/rosterhq/roster-api/internal/models"
	"github.com/rosterhq/roster-api/internal/service"
)

type calendarSourceMock struct {
	shifts []models.WorkShift
}

func (m *calendarSourceMock) ListOrdered(_ context.Context, _ string) ([]models.WorkShift, error) {
	return m.shifts, nil
}

func TestCalendarHandlerShiftFeed(t *testing.T) {
	gin.SetMode(gin.TestMode)
	start := time.Date(2024, 3, 4, 9, 0, 0, 0, time.UTC)
	source := &calendarSourceMock{shifts: []models.WorkShift{
		{ID: "shift-1", Name: "Corner Cafe", StartTime: start, EndTime: start.Add(8 * time.Hour), CreatedAt: start, UpdatedAt: start},
	}}
	svc := service.NewCalendarService(source, zap.NewNop(), "", "")
	handler := NewCalendarHandler(svc)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	req, _ := http.NewRequest(http.MethodGet, "/calendar/shifts.ics", nil)
	c.Request = req

	handler.ShiftFeed(c)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/calendar")
	assert.Contains(t, w.Body.String(), "BEGIN:VCALENDAR")
	assert.Contains(t, w.Body.String(), "SUMMARY:Corner Cafe")
}
