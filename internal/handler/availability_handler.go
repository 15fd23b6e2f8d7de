package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bocho8/chronos/internal/dto"
	"github.com/bocho8/chronos/internal/service"
	appErrors "github.com/bocho8/chronos/pkg/errors"
	"github.com/bocho8/chronos/pkg/response"
)

// AvailabilityHandler manages teacher availability endpoints.
type AvailabilityHandler struct {
	service *service.AvailabilityService
}

// NewAvailabilityHandler constructs handler.
func NewAvailabilityHandler(svc *service.AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{service: svc}
}

// Matrix godoc
// @Summary Weekly availability matrix for a teacher
// @Tags Availability
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/availability [get]
func (h *AvailabilityHandler) Matrix(c *gin.Context) {
	matrix, err := h.service.Matrix(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, matrix, nil)
}

// Toggle godoc
// @Summary Toggle one availability slot
// @Tags Availability
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body dto.AvailabilityToggleRequest true "Slot toggle"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/availability [put]
func (h *AvailabilityHandler) Toggle(c *gin.Context) {
	var req dto.AvailabilityToggleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	result, err := h.service.Toggle(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}
