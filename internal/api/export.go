package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"

	"lead-capture/internal/export"
	dto "lead-capture/pkg/models"

	"github.com/gin-gonic/gin"
)

type Exporter interface {
	ExportAll(ctx context.Context, format string) (export.Document, error)
}

type ExportHandler struct {
	exporter Exporter
}

func NewExportHandler(exporter Exporter) *ExportHandler {
	return &ExportHandler{exporter: exporter}
}

func (h *ExportHandler) ExportLeads(c *gin.Context) {
	doc, err := h.exporter.ExportAll(c.Request.Context(), c.Query("format"))
	switch {
	case errors.Is(err, export.ErrNoData):
		c.JSON(http.StatusBadRequest, dto.APIResponse{Message: "No leads to export"})
		return
	case errors.Is(err, export.ErrUnsupportedFormat):
		c.JSON(http.StatusBadRequest, dto.APIResponse{Message: "Unsupported export format"})
		return
	case err != nil:
		log.Printf("[%s] Error exporting leads: %v", requestID(c), err)
		c.JSON(http.StatusInternalServerError, dto.APIResponse{Message: "Failed to export leads"})
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", doc.Filename))
	c.Data(http.StatusOK, doc.ContentType, doc.Data)
}
