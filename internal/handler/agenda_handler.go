package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster-api/internal/service"
	"github.com/rosterhq/roster-api/pkg/response"
)

// AgendaHandler serves pre-built agenda views and live snapshot streams.
type AgendaHandler struct {
	agenda  *service.AgendaService
	hub     *service.SnapshotHub
	metrics *service.MetricsService
}

// NewAgendaHandler constructs handler.
func NewAgendaHandler(agenda *service.AgendaService, hub *service.SnapshotHub, metrics *service.MetricsService) *AgendaHandler {
	return &AgendaHandler{agenda: agenda, hub: hub, metrics: metrics}
}

// Shifts godoc
// @Summary Agenda view of work shifts
// @Tags Agenda
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /agenda/shifts [get]
func (h *AgendaHandler) Shifts(c *gin.Context) {
	start := time.Now()
	payload, cacheHit, err := h.agenda.Shifts(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, json.RawMessage(payload), nil, map[string]interface{}{
		"cache_hit":          cacheHit,
		"processing_time_ms": time.Since(start).Milliseconds(),
	})
}

// Adhocs godoc
// @Summary Agenda view of adhoc availability exceptions
// @Tags Agenda
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /agenda/adhocs [get]
func (h *AgendaHandler) Adhocs(c *gin.Context) {
	start := time.Now()
	payload, cacheHit, err := h.agenda.Adhocs(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, json.RawMessage(payload), nil, map[string]interface{}{
		"cache_hit":          cacheHit,
		"processing_time_ms": time.Since(start).Milliseconds(),
	})
}

// StreamShifts godoc
// @Summary Server-sent stream of work shift snapshots
// @Tags Agenda
// @Produce text/event-stream
// @Router /agenda/shifts/stream [get]
func (h *AgendaHandler) StreamShifts(c *gin.Context) {
	h.stream(c, service.KindWorkShift)
}

// StreamAdhocs godoc
// @Summary Server-sent stream of adhoc snapshots
// @Tags Agenda
// @Produce text/event-stream
// @Router /agenda/adhocs/stream [get]
func (h *AgendaHandler) StreamAdhocs(c *gin.Context) {
	h.stream(c, service.KindAdhoc)
}

// StreamWorkplaces godoc
// @Summary Server-sent stream of workplace snapshots
// @Tags Agenda
// @Produce text/event-stream
// @Router /workplaces/stream [get]
func (h *AgendaHandler) StreamWorkplaces(c *gin.Context) {
	h.stream(c, service.KindWorkplace)
}

// StreamTimeSlots godoc
// @Summary Server-sent stream of weekly time slot snapshots
// @Tags Agenda
// @Produce text/event-stream
// @Router /availability/slots/stream [get]
func (h *AgendaHandler) StreamTimeSlots(c *gin.Context) {
	h.stream(c, service.KindTimeSlot)
}

// stream pushes each published snapshot as one SSE event until the client
// disconnects.
func (h *AgendaHandler) stream(c *gin.Context, kind string) {
	userID := currentUserID(c)

	ch, cancel := h.hub.Subscribe(userID, kind)
	defer func() {
		cancel()
		if h.metrics != nil {
			h.metrics.SetSnapshotSubscribers(h.hub.SubscriberCount(userID, kind))
		}
	}()
	if h.metrics != nil {
		h.metrics.SetSnapshotSubscribers(h.hub.SubscriberCount(userID, kind))
	}

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-ch:
			if !ok {
				return false
			}
			c.SSEvent(snapshot.Kind, snapshot.Records)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
