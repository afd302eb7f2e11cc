package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/rosterhq/roster-api/internal/service"
	appErrors "github.com/rosterhq/roster-api/pkg/errors"
	"github.com/rosterhq/roster-api/pkg/response"
)

// ProfileHandler serves the personal details attached to an account.
type ProfileHandler struct {
	service *service.ProfileService
}

// NewProfileHandler constructs handler.
func NewProfileHandler(svc *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{service: svc}
}

// Get godoc
// @Summary Get profile
// @Tags Profile
// @Produce json
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /profile [get]
func (h *ProfileHandler) Get(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	profile, err := h.service.Get(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}

// Save godoc
// @Summary Save profile
// @Description Create or replace the user's profile
// @Tags Profile
// @Accept json
// @Produce json
// @Param payload body service.ProfileRequest true "Profile payload"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /profile [put]
func (h *ProfileHandler) Save(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	var req service.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	profile, err := h.service.Save(c.Request.Context(), claims.UserID, req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, profile, nil)
}
