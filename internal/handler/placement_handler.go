package handler

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/bocho8/chronos/internal/dto"
	"github.com/bocho8/chronos/internal/models"
	appErrors "github.com/bocho8/chronos/pkg/errors"
	"github.com/bocho8/chronos/pkg/response"
)

type placementService interface {
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.Assignment, *models.Pagination, error)
	ListByGroup(ctx context.Context, groupID string) ([]models.Assignment, error)
	ListByTeacher(ctx context.Context, teacherID string) ([]models.Assignment, error)
	Validate(ctx context.Context, req dto.PlacementRequest) (*dto.PlacementResult, error)
	Create(ctx context.Context, req dto.PlacementRequest) (*dto.PlacementResult, error)
	Update(ctx context.Context, id string, req dto.PlacementRequest) (*dto.PlacementResult, error)
	Delete(ctx context.Context, id string) error
	Compliance(ctx context.Context, groupID, subjectID string) (*dto.ComplianceResponse, error)
	SuggestTeachers(ctx context.Context, subjectID string) (*dto.SubjectTeachersResponse, error)
}

type bulkService interface {
	Execute(ctx context.Context, req dto.BulkRequest) (*dto.BulkResult, error)
}

// PlacementHandler manages assignment placement endpoints.
type PlacementHandler struct {
	placements placementService
	bulk       bulkService
}

// NewPlacementHandler constructs handler.
func NewPlacementHandler(placements placementService, bulk bulkService) *PlacementHandler {
	return &PlacementHandler{placements: placements, bulk: bulk}
}

// strictOverride reads the ?strict= query flag. A body value wins when set.
func strictOverride(c *gin.Context, current *bool) *bool {
	if current != nil {
		return current
	}
	raw, ok := c.GetQuery("strict")
	if !ok {
		return nil
	}
	strict, err := strconv.ParseBool(raw)
	if err != nil {
		return nil
	}
	return &strict
}

// List godoc
// @Summary List placements
// @Tags Placements
// @Produce json
// @Param groupId query string false "Filter by group"
// @Param subjectId query string false "Filter by subject"
// @Param teacherId query string false "Filter by teacher"
// @Param day query string false "Filter by day"
// @Param blockId query string false "Filter by time block"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /placements [get]
func (h *PlacementHandler) List(c *gin.Context) {
	var filter models.AssignmentFilter
	filter.GroupID = c.Query("groupId")
	filter.SubjectID = c.Query("subjectId")
	filter.TeacherID = c.Query("teacherId")
	filter.Day = c.Query("day")
	filter.BlockID = c.Query("blockId")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if limit, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = limit
	}
	filter.SortBy = c.Query("sort")
	filter.SortOrder = c.Query("order")

	assignments, pagination, err := h.placements.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, pagination)
}

// ListByGroup godoc
// @Summary List placements by group
// @Tags Placements
// @Produce json
// @Param id path string true "Group ID"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/placements [get]
func (h *PlacementHandler) ListByGroup(c *gin.Context) {
	assignments, err := h.placements.ListByGroup(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// ListByTeacher godoc
// @Summary List placements by teacher
// @Tags Placements
// @Produce json
// @Param id path string true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Router /teachers/{id}/placements [get]
func (h *PlacementHandler) ListByTeacher(c *gin.Context) {
	assignments, err := h.placements.ListByTeacher(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, assignments, nil)
}

// Validate godoc
// @Summary Validate a candidate placement without committing
// @Tags Placements
// @Accept json
// @Produce json
// @Param payload body dto.PlacementRequest true "Candidate placement"
// @Success 200 {object} response.Envelope
// @Router /placements/validate [post]
func (h *PlacementHandler) Validate(c *gin.Context) {
	var req dto.PlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.Strict = strictOverride(c, req.Strict)

	result, err := h.placements.Validate(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Create godoc
// @Summary Commit a placement
// @Tags Placements
// @Accept json
// @Produce json
// @Param payload body dto.PlacementRequest true "Placement"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /placements [post]
func (h *PlacementHandler) Create(c *gin.Context) {
	var req dto.PlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.Strict = strictOverride(c, req.Strict)

	result, err := h.placements.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !result.Accepted {
		response.JSON(c, http.StatusConflict, result, nil)
		return
	}
	response.Created(c, result)
}

// Update godoc
// @Summary Re-place an existing assignment
// @Tags Placements
// @Accept json
// @Produce json
// @Param id path string true "Assignment ID"
// @Param payload body dto.PlacementRequest true "Placement"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /placements/{id} [put]
func (h *PlacementHandler) Update(c *gin.Context) {
	var req dto.PlacementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.Strict = strictOverride(c, req.Strict)

	result, err := h.placements.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !result.Accepted {
		response.JSON(c, http.StatusConflict, result, nil)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// Delete godoc
// @Summary Delete an assignment
// @Tags Placements
// @Param id path string true "Assignment ID"
// @Success 204
// @Router /placements/{id} [delete]
func (h *PlacementHandler) Delete(c *gin.Context) {
	if err := h.placements.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Bulk godoc
// @Summary Execute a bulk delete/copy/move over selected assignments
// @Tags Placements
// @Accept json
// @Produce json
// @Param payload body dto.BulkRequest true "Bulk operation"
// @Success 200 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /placements/bulk [post]
func (h *PlacementHandler) Bulk(c *gin.Context) {
	var req dto.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid payload"))
		return
	}
	req.Strict = strictOverride(c, req.Strict)

	result, err := h.bulk.Execute(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	if req.Atomic && len(result.Committed) == 0 && anyRejectionConflicts(result.Rejected) {
		response.JSON(c, http.StatusConflict, result, nil)
		return
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// anyRejectionConflicts reports whether a bulk rejection was caused by
// blocking findings rather than a missing id.
func anyRejectionConflicts(rejected []dto.BulkRejection) bool {
	for _, r := range rejected {
		if len(r.Conflicts) > 0 {
			return true
		}
	}
	return false
}

// Compliance godoc
// @Summary Guideline compliance for a (group, subject) pair
// @Tags Compliance
// @Produce json
// @Param id path string true "Group ID"
// @Param subjectId path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /groups/{id}/subjects/{subjectId}/compliance [get]
func (h *PlacementHandler) Compliance(c *gin.Context) {
	resp, err := h.placements.Compliance(c.Request.Context(), c.Param("id"), c.Param("subjectId"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// SubjectTeachers godoc
// @Summary Teachers already assigned to a subject
// @Tags Catalog
// @Produce json
// @Param id path string true "Subject ID"
// @Success 200 {object} response.Envelope
// @Router /subjects/{id}/teachers [get]
func (h *PlacementHandler) SubjectTeachers(c *gin.Context) {
	resp, err := h.placements.SuggestTeachers(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
