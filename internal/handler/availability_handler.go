package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster-api/internal/service"
	appErrors "github.com/rosterhq/roster-api/pkg/errors"
	"github.com/rosterhq/roster-api/pkg/response"
)

// AvailabilityHandler manages weekly slot and adhoc exception endpoints.
type AvailabilityHandler struct {
	service *service.AvailabilityService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc}
}

// ListTimeSlots godoc
// @Summary List weekly time slots
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /availability/slots [get]
func (h *AvailabilityHandler) ListTimeSlots(c *gin.Context) {
	slots, err := h.service.ListTimeSlots(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slots, nil)
}

// GetTimeSlot godoc
// @Summary Get weekly time slot
// @Tags Availability
// @Produce json
// @Param id path string true "Time slot ID"
// @Success 200 {object} response.Envelope
// @Router /availability/slots/{id} [get]
func (h *AvailabilityHandler) GetTimeSlot(c *gin.Context) {
	slot, err := h.service.GetTimeSlot(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// CreateTimeSlot godoc
// @Summary Create weekly time slot
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.TimeSlotRequest true "Time slot payload"
// @Success 201 {object} response.Envelope
// @Router /availability/slots [post]
func (h *AvailabilityHandler) CreateTimeSlot(c *gin.Context) {
	var req service.TimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	slot, err := h.service.CreateTimeSlot(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, slot)
}

// UpdateTimeSlot godoc
// @Summary Update weekly time slot
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Time slot ID"
// @Param payload body service.TimeSlotRequest true "Time slot payload"
// @Success 200 {object} response.Envelope
// @Router /availability/slots/{id} [put]
func (h *AvailabilityHandler) UpdateTimeSlot(c *gin.Context) {
	var req service.TimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	slot, err := h.service.UpdateTimeSlot(c.Request.Context(), c.Param("id"), currentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, slot, nil)
}

// DeleteTimeSlot godoc
// @Summary Delete weekly time slot
// @Tags Availability
// @Param id path string true "Time slot ID"
// @Success 204 "No Content"
// @Router /availability/slots/{id} [delete]
func (h *AvailabilityHandler) DeleteTimeSlot(c *gin.Context) {
	if err := h.service.DeleteTimeSlot(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListAdhocs godoc
// @Summary List adhoc availability exceptions
// @Tags Availability
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /availability/adhocs [get]
func (h *AvailabilityHandler) ListAdhocs(c *gin.Context) {
	adhocs, err := h.service.ListAdhocs(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, adhocs, nil)
}

// GetAdhoc godoc
// @Summary Get adhoc availability exception
// @Tags Availability
// @Produce json
// @Param id path string true "Adhoc ID"
// @Success 200 {object} response.Envelope
// @Router /availability/adhocs/{id} [get]
func (h *AvailabilityHandler) GetAdhoc(c *gin.Context) {
	adhoc, err := h.service.GetAdhoc(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, adhoc, nil)
}

// CreateAdhoc godoc
// @Summary Create adhoc availability exception
// @Tags Availability
// @Accept json
// @Produce json
// @Param payload body service.AdhocRequest true "Adhoc payload"
// @Success 201 {object} response.Envelope
// @Router /availability/adhocs [post]
func (h *AvailabilityHandler) CreateAdhoc(c *gin.Context) {
	var req service.AdhocRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	adhoc, err := h.service.CreateAdhoc(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, adhoc)
}

// UpdateAdhoc godoc
// @Summary Update adhoc availability exception
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Adhoc ID"
// @Param payload body service.AdhocRequest true "Adhoc payload"
// @Success 200 {object} response.Envelope
// @Router /availability/adhocs/{id} [put]
func (h *AvailabilityHandler) UpdateAdhoc(c *gin.Context) {
	var req service.AdhocRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	adhoc, err := h.service.UpdateAdhoc(c.Request.Context(), c.Param("id"), currentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, adhoc, nil)
}

// DeleteAdhoc godoc
// @Summary Delete adhoc availability exception
// @Tags Availability
// @Param id path string true "Adhoc ID"
// @Success 204 "No Content"
// @Router /availability/adhocs/{id} [delete]
func (h *AvailabilityHandler) DeleteAdhoc(c *gin.Context) {
	if err := h.service.DeleteAdhoc(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
