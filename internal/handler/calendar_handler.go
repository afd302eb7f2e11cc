package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster-api/internal/service"
	"github.com/rosterhq/roster-api/pkg/response"
)

// CalendarHandler exposes the iCalendar subscription feed.
type CalendarHandler struct {
	service *service.CalendarService
}

// NewCalendarHandler constructs handler.
func NewCalendarHandler(svc *service.CalendarService) *CalendarHandler {
	return &CalendarHandler{service: svc}
}

// ShiftFeed godoc
// @Summary iCalendar feed of work shifts
// @Tags Calendar
// @Produce text/calendar
// @Success 200 {string} string "VCALENDAR document"
// @Router /calendar/shifts.ics [get]
func (h *CalendarHandler) ShiftFeed(c *gin.Context) {
	feed, err := h.service.ShiftFeed(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", `attachment; filename="shifts.ics"`)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
