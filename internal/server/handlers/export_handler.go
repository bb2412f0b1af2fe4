package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/services"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/response"
)

// ExportHandler serves the live log as downloadable CSV and PDF.
type ExportHandler struct {
	export *services.ExportService
}

// NewExportHandler creates an export handler.
func NewExportHandler(export *services.ExportService) *ExportHandler {
	return &ExportHandler{export: export}
}

// DownloadCSV streams the full live log as an attachment.
func (h *ExportHandler) DownloadCSV(c *gin.Context) {
	c.Header("Content-Type", "text/csv")
	c.Header("Content-Disposition", `attachment; filename="logs.csv"`)

	if err := h.export.WriteCSV(c.Writer); err != nil {
		// Headers are already out; all that is left is to cut the body.
		c.Abort()
	}
}

// GeneratePDF renders and serves the monitoring report.
func (h *ExportHandler) GeneratePDF(c *gin.Context) {
	data, err := h.export.GeneratePDF()
	if err != nil {
		response.InternalError(c, "generate report failed")
		return
	}

	c.Header("Content-Disposition", `attachment; filename="report.pdf"`)
	c.Data(http.StatusOK, "application/pdf", data)
}
