package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/bocho8/chronos/internal/service"
	"github.com/bocho8/chronos/pkg/response"
)

// CatalogHandler serves the read-only reference data.
type CatalogHandler struct {
	service *service.CatalogService
}

// NewCatalogHandler constructs handler.
func NewCatalogHandler(svc *service.CatalogService) *CatalogHandler {
	return &CatalogHandler{service: svc}
}

// Snapshot godoc
// @Summary Full reference snapshot (groups, subjects, teachers, blocks, guidelines)
// @Tags Catalog
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /catalog [get]
func (h *CatalogHandler) Snapshot(c *gin.Context) {
	snap, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, snap, nil)
}

// Invalidate godoc
// @Summary Drop the cached snapshot
// @Tags Catalog
// @Success 204
// @Router /catalog/cache [delete]
func (h *CatalogHandler) Invalidate(c *gin.Context) {
	if err := h.service.Invalidate(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
