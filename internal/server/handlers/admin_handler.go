package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/services"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/store"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/response"
)

// AdminHandler owns the admin pages and their mutations: zones, users,
// alert settings and the raw thresholds document.
type AdminHandler struct {
	dashboard  *services.DashboardService
	users      *services.UserService
	zones      *store.ZoneStore
	config     *store.ConfigStore
	thresholds *store.ThresholdStore
}

// NewAdminHandler creates an admin handler.
func NewAdminHandler(
	dashboard *services.DashboardService,
	users *services.UserService,
	zones *store.ZoneStore,
	config *store.ConfigStore,
	thresholds *store.ThresholdStore,
) *AdminHandler {
	return &AdminHandler{
		dashboard:  dashboard,
		users:      users,
		zones:      zones,
		config:     config,
		thresholds: thresholds,
	}
}

// Home renders the admin summary dashboard.
func (h *AdminHandler) Home(c *gin.Context) {
	stats, err := h.dashboard.Stats()
	if err != nil {
		response.InternalError(c, "load dashboard failed")
		return
	}

	c.HTML(http.StatusOK, "admin_dashboard.html", gin.H{
		"stats": stats,
	})
}

// Users renders the user management page.
func (h *AdminHandler) Users(c *gin.Context) {
	users, err := h.users.List()
	if err != nil {
		response.InternalError(c, "load users failed")
		return
	}

	c.HTML(http.StatusOK, "admin_users.html", gin.H{
		"users": users,
	})
}

// SetUserStatus toggles a user between active/inactive/disabled.
func (h *AdminHandler) SetUserStatus(c *gin.Context) {
	username := c.Param("username")
	status := c.PostForm("status")

	if err := h.users.SetStatus(username, status); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	c.Redirect(http.StatusFound, "/admin/users")
}

// Zones renders the zone management page.
func (h *AdminHandler) Zones(c *gin.Context) {
	zones, err := h.zones.All()
	if err != nil {
		response.InternalError(c, "load zones failed")
		return
	}

	c.HTML(http.StatusOK, "admin_zones.html", gin.H{
		"zones": zones,
	})
}

// zoneForm reads and validates the shared zone form fields. A malformed
// form creates or changes nothing.
func zoneForm(c *gin.Context) (camera, name string, threshold int, ok bool) {
	camera = c.PostForm("camera")
	name = c.PostForm("name")
	thresholdStr := c.PostForm("threshold")

	if camera == "" || name == "" || thresholdStr == "" {
		response.BadRequest(c, "camera, name and threshold are required")
		return "", "", 0, false
	}

	threshold, err := strconv.Atoi(thresholdStr)
	if err != nil || threshold <= 0 {
		response.BadRequest(c, "threshold must be a positive integer")
		return "", "", 0, false
	}

	return camera, name, threshold, true
}

// AddZone creates a zone; the registry assigns the next id and new zones
// start active.
func (h *AdminHandler) AddZone(c *gin.Context) {
	camera, name, threshold, ok := zoneForm(c)
	if !ok {
		return
	}

	_, err := h.zones.Create(models.Zone{
		Camera:    camera,
		Name:      name,
		Threshold: threshold,
		Status:    models.ZoneActive,
	})
	if err != nil {
		response.InternalError(c, "create zone failed")
		return
	}

	c.Redirect(http.StatusFound, "/admin/zones")
}

// EditZone replaces all fields of the zone with the given id. An unknown
// id falls through silently.
func (h *AdminHandler) EditZone(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid zone id")
		return
	}

	camera, name, threshold, ok := zoneForm(c)
	if !ok {
		return
	}

	status := c.PostForm("status")
	if status != models.ZoneActive && status != models.ZoneInactive {
		response.BadRequest(c, "status must be active or inactive")
		return
	}

	if err := h.zones.Update(models.Zone{
		ID:        id,
		Camera:    camera,
		Name:      name,
		Threshold: threshold,
		Status:    status,
	}); err != nil {
		response.InternalError(c, "update zone failed")
		return
	}

	c.Redirect(http.StatusFound, "/admin/zones")
}

// DeleteZone removes the zone with the given id.
func (h *AdminHandler) DeleteZone(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid zone id")
		return
	}

	if err := h.zones.Delete(id); err != nil {
		response.InternalError(c, "delete zone failed")
		return
	}

	c.Redirect(http.StatusFound, "/admin/zones")
}

// Settings renders the alert configuration page.
func (h *AdminHandler) Settings(c *gin.Context) {
	cfg, err := h.config.Get()
	if err != nil {
		response.InternalError(c, "load settings failed")
		return
	}

	c.HTML(http.StatusOK, "admin_settings.html", gin.H{
		"config": cfg,
	})
}

// UpdateSettings replaces the alert configuration from the settings form.
// alert_enabled is a checkbox: present means on. alert_cooldown is stored
// but not applied anywhere.
func (h *AdminHandler) UpdateSettings(c *gin.Context) {
	_, alertEnabled := c.GetPostForm("alert_enabled")

	cooldown, err := strconv.Atoi(c.PostForm("alert_cooldown"))
	if err != nil || cooldown < 0 {
		response.BadRequest(c, "alert_cooldown must be a non-negative integer")
		return
	}

	maxLogs, err := strconv.Atoi(c.PostForm("max_logs"))
	if err != nil || maxLogs <= 0 {
		response.BadRequest(c, "max_logs must be a positive integer")
		return
	}

	cfg := models.AlertConfig{
		AlertEnabled:  alertEnabled,
		AlertCooldown: cooldown,
		MaxLogs:       maxLogs,
	}
	if err := h.config.Save(cfg); err != nil {
		response.InternalError(c, "save settings failed")
		return
	}

	c.Redirect(http.StatusFound, "/admin/settings")
}

// Analytics renders the analytics history page.
func (h *AdminHandler) Analytics(c *gin.Context) {
	c.HTML(http.StatusOK, "admin_analytics.html", nil)
}

// Thresholds returns the raw thresholds document.
func (h *AdminHandler) Thresholds(c *gin.Context) {
	data, err := h.thresholds.Get()
	if err != nil {
		response.InternalError(c, "load thresholds failed")
		return
	}
	c.JSON(http.StatusOK, data)
}

// UpdateThresholds replaces the thresholds document wholesale.
func (h *AdminHandler) UpdateThresholds(c *gin.Context) {
	var data map[string]interface{}
	if err := c.ShouldBindJSON(&data); err != nil {
		response.BadRequest(c, "request body must be a JSON object")
		return
	}

	if err := h.thresholds.Replace(data); err != nil {
		response.InternalError(c, "save thresholds failed")
		return
	}

	response.SuccessWithMessage(c, "thresholds updated successfully", nil)
}
