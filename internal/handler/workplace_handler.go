package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster-api/internal/service"
	appErrors "github.com/rosterhq/roster-api/pkg/errors"
	"github.com/rosterhq/roster-api/pkg/response"
)

// WorkplaceHandler manages workplace endpoints.
type WorkplaceHandler struct {
	service *service.WorkplaceService
}

// NewWorkplaceHandler constructs handler.
func NewWorkplaceHandler(svc *service.WorkplaceService) *WorkplaceHandler {
	return &WorkplaceHandler{service: svc}
}

// List godoc
// @Summary List workplaces
// @Tags Workplaces
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /workplaces [get]
func (h *WorkplaceHandler) List(c *gin.Context) {
	workplaces, err := h.service.List(c.Request.Context(), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, workplaces, nil)
}

// Get godoc
// @Summary Get workplace
// @Tags Workplaces
// @Produce json
// @Param id path string true "Workplace ID"
// @Success 200 {object} response.Envelope
// @Router /workplaces/{id} [get]
func (h *WorkplaceHandler) Get(c *gin.Context) {
	wp, err := h.service.Get(c.Request.Context(), c.Param("id"), currentUserID(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, wp, nil)
}

// Create godoc
// @Summary Create workplace
// @Tags Workplaces
// @Accept json
// @Produce json
// @Param payload body service.WorkplaceRequest true "Workplace payload"
// @Success 201 {object} response.Envelope
// @Router /workplaces [post]
func (h *WorkplaceHandler) Create(c *gin.Context) {
	var req service.WorkplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	wp, err := h.service.Create(c.Request.Context(), currentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, wp)
}

// Update godoc
// @Summary Update workplace
// @Tags Workplaces
// @Accept json
// @Produce json
// @Param id path string true "Workplace ID"
// @Param payload body service.WorkplaceRequest true "Workplace payload"
// @Success 200 {object} response.Envelope
// @Router /workplaces/{id} [put]
func (h *WorkplaceHandler) Update(c *gin.Context) {
	var req service.WorkplaceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	wp, err := h.service.Update(c.Request.Context(), c.Param("id"), currentUserID(c), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, wp, nil)
}

// Delete godoc
// @Summary Delete workplace
// @Tags Workplaces
// @Param id path string true "Workplace ID"
// @Success 204 "No Content"
// @Router /workplaces/{id} [delete]
func (h *WorkplaceHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id"), currentUserID(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
