package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bocho8/chronos/internal/dto"
	"github.com/bocho8/chronos/internal/service"
	appErrors "github.com/bocho8/chronos/pkg/errors"
	"github.com/bocho8/chronos/pkg/response"
)

// ObservationHandler manages teacher observation endpoints.
type ObservationHandler struct {
	service *service.ObservationService
}

// NewObservationHandler constructs handler.
func NewObservationHandler(svc *service.ObservationService) *ObservationHandler {
	return &ObservationHandler{service: svc}
}

// ListByTeacher godoc
// @Summary List observations for a teacher
// @Tags Observations
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/observations [get]
func (h *ObservationHandler) ListByTeacher(c *gin.Context) {
	observations, err := h.service.ListByTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, observations, nil)
}

// Create godoc
// @Summary Attach an observation to a teacher
// @Tags Observations
// @Accept json
// @Produce json
// @Param id path string true "Teacher ID"
// @Param payload body dto.CreateObservationRequest true "Observation"
// @Success 201 {object} response.Envelope
// @Router /teachers/{id}/observations [post]
func (h *ObservationHandler) Create(c *gin.Context) {
	var req dto.CreateObservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}

	observation, err := h.service.Create(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, observation)
}

// Delete godoc
// @Summary Delete an observation
// @Tags Observations
// @Param id path string true "Teacher ID"
// @Param obsId path string true "Observation ID"
// @Success 204
// @Router /teachers/{id}/observations/{obsId} [delete]
func (h *ObservationHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("obsId")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// ListPredefined godoc
// @Summary List the predefined observation catalog
// @Tags Observations
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /observations/predefined [get]
func (h *ObservationHandler) ListPredefined(c *gin.Context) {
	predefined, err := h.service.ListPredefined(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, predefined, nil)
}
