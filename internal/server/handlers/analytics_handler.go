package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/services"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/response"
)

// AnalyticsHandler serves the polled occupancy snapshot.
type AnalyticsHandler struct {
	analytics *services.AnalyticsService
}

// NewAnalyticsHandler creates an analytics handler.
func NewAnalyticsHandler(analytics *services.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{analytics: analytics}
}

// Poll runs one analytics pass and returns the snapshot. The dashboard
// polls this endpoint; the body is the bare log entry, not an envelope,
// because the page scripts consume it directly.
func (h *AnalyticsHandler) Poll(c *gin.Context) {
	entry, err := h.analytics.Poll()
	if err != nil {
		response.InternalError(c, "analytics unavailable")
		return
	}
	c.JSON(http.StatusOK, entry)
}

// History returns the retained live log, oldest first, for the admin
// analytics view.
func (h *AnalyticsHandler) History(c *gin.Context) {
	c.JSON(http.StatusOK, h.analytics.Log().Snapshot())
}
