package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bocho8/chronos/internal/service"
	appErrors "github.com/bocho8/chronos/pkg/errors"
	"github.com/bocho8/chronos/pkg/response"
)

// ExportHandler serves timetable downloads.
type ExportHandler struct {
	service *service.ExportService
}

// NewExportHandler constructs handler.
func NewExportHandler(svc *service.ExportService) *ExportHandler {
	return &ExportHandler{service: svc}
}

// GroupTimetable godoc
// @Summary Export a group's weekly timetable
// @Tags Exports
// @Produce octet-stream
// @Param id path string true "Group ID"
// @Param format query string false "csv or pdf" default(pdf)
// @Success 200 {file} binary
// @Router /groups/{id}/timetable/export [get]
func (h *ExportHandler) GroupTimetable(c *gin.Context) {
	groupID := c.Param("id")
	switch c.DefaultQuery("format", "pdf") {
	case "csv":
		payload, _, err := h.service.GroupTimetableCSV(c.Request.Context(), groupID)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=horario-%s.csv", groupID))
		c.Data(http.StatusOK, "text/csv", payload)
	case "pdf":
		payload, _, err := h.service.GroupTimetablePDF(c.Request.Context(), groupID)
		if err != nil {
			response.Error(c, err)
			return
		}
		c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=horario-%s.pdf", groupID))
		c.Data(http.StatusOK, "application/pdf", payload)
	default:
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "format must be csv or pdf"))
	}
}

// TeacherTimetable godoc
// @Summary Export a teacher's weekly timetable as PDF
// @Tags Exports
// @Produce octet-stream
// @Param id path string true "Teacher ID"
// @Success 200 {file} binary
// @Router /teachers/{id}/timetable/export [get]
func (h *ExportHandler) TeacherTimetable(c *gin.Context) {
	teacherID := c.Param("id")
	payload, _, err := h.service.TeacherTimetablePDF(c.Request.Context(), teacherID)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=horario-%s.pdf", teacherID))
	c.Data(http.StatusOK, "application/pdf", payload)
}
