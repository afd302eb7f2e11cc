package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster-api/internal/service"
	appErrors "github.com/rosterhq/roster-api/pkg/errors"
	"github.com/rosterhq/roster-api/pkg/response"
)

// WorkShiftHandler manages work shift endpoints.
type WorkShiftHandler struct {
	service *service.WorkShiftService
}

// NewWorkShiftHandler constructs handler.
func NewWorkShiftHandler(svc *service.WorkShiftService) *WorkShiftHandler {
	return &WorkShiftHandler{service: svc}
}

// List godoc
// @Summary List work shifts
// @Tags Shifts
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /shifts [get]
func (h *WorkShiftHandler) List(c *gin.Context) {
	shifts, err := h.service.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shifts, nil)
}

// Get godoc
// @Summary Get work shift
// @Tags Shifts
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.Envelope
// @Router /shifts/{id} [get]
func (h *WorkShiftHandler) Get(c *gin.Context) {
	shift, err := h.service.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shift, nil)
}

// Create godoc
// @Summary Create work shift
// @Tags Shifts
// @Accept json
// @Produce json
// @Param payload body service.WorkShiftRequest true "Shift payload"
// @Success 201 {object} response.Envelope
// @Router /shifts [post]
func (h *WorkShiftHandler) Create(c *gin.Context) {
	var req service.WorkShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	shift, err := h.service.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, shift)
}

// Update godoc
// @Summary Update work shift
// @Tags Shifts
// @Accept json
// @Produce json
// @Param id path string true "Shift ID"
// @Param payload body service.WorkShiftRequest true "Shift payload"
// @Success 200 {object} response.Envelope
// @Router /shifts/{id} [put]
func (h *WorkShiftHandler) Update(c *gin.Context) {
	var req service.WorkShiftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	shift, err := h.service.Update(c.Request.Context(), c.Param("id"), currentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, shift, nil)
}

// Delete godoc
// @Summary Delete work shift
// @Tags Shifts
// @Param id path string true "Shift ID"
// @Success 204 "No Content"
// @Router /shifts/{id} [delete]
func (h *WorkShiftHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Earning godoc
// @Summary Estimated earning for a shift
// @Tags Shifts
// @Produce json
// @Param id path string true "Shift ID"
// @Success 200 {object} response.Envelope
// @Router /shifts/{id}/earning [get]
func (h *WorkShiftHandler) Earning(c *gin.Context) {
	earning, err := h.service.Earning(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, earning, nil)
}
