package routes

import (
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/handlers"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/middleware"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/auth"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/utils"
)

// Handlers bundles everything SetupRoutes wires up.
type Handlers struct {
	Auth      *handlers.AuthHandler
	Analytics *handlers.AnalyticsHandler
	Admin     *handlers.AdminHandler
	Export    *handlers.ExportHandler
	Video     *handlers.VideoHandler
}

// SetupRoutes assembles the gin engine: global middleware, templates,
// public routes, the session-gated surface and the admin surface.
func SetupRoutes(h Handlers, jwtService *auth.JWTService, loginLimiter *middleware.LoginLimiter) *gin.Engine {
	r := gin.New()

	r.Use(middleware.LoggerMiddleware())
	r.Use(middleware.RecoveryMiddleware())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestID())

	setupStaticAndTemplates(r)

	// Health check, unauthenticated.
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// Public surface.
	r.GET("/", func(c *gin.Context) {
		c.HTML(http.StatusOK, "login.html", nil)
	})
	r.POST("/auth/login", middleware.RateLimitLogin(loginLimiter), h.Auth.Login)
	r.GET("/logout", h.Auth.Logout)

	// Any valid session.
	session := r.Group("/", middleware.RequireSession(jwtService))
	{
		session.GET("/dashboard", func(c *gin.Context) {
			c.HTML(http.StatusOK, "index.html", gin.H{
				"username": c.GetString(middleware.CtxUsername),
				"role":     c.GetString(middleware.CtxRole),
			})
		})
		session.GET("/video_feed", h.Video.Feed)
		session.GET("/analytics", h.Analytics.Poll)
		session.GET("/download_csv", h.Export.DownloadCSV)
		session.GET("/generate_pdf", h.Export.GeneratePDF)
	}

	// Admin only.
	admin := r.Group("/", middleware.RequireSession(jwtService), middleware.RequireRole(models.RoleAdmin))
	{
		admin.GET("/admin", h.Admin.Home)
		admin.GET("/admin/users", h.Admin.Users)
		admin.POST("/admin/users/status/:username", h.Admin.SetUserStatus)
		admin.GET("/admin/zones", h.Admin.Zones)
		admin.POST("/admin/zones/add", h.Admin.AddZone)
		admin.POST("/admin/zones/edit/:id", h.Admin.EditZone)
		admin.POST("/admin/zones/delete/:id", h.Admin.DeleteZone)
		admin.GET("/admin/settings", h.Admin.Settings)
		admin.POST("/admin/settings", h.Admin.UpdateSettings)
		admin.GET("/admin/analytics", h.Admin.Analytics)
		admin.GET("/admin/analytics/history", h.Analytics.History)
		admin.GET("/thresholds", h.Admin.Thresholds)
		admin.POST("/thresholds", h.Admin.UpdateThresholds)
	}

	return r
}

// setupStaticAndTemplates mounts static assets and loads the HTML
// templates from the conventional web directory.
func setupStaticAndTemplates(r *gin.Engine) {
	staticPath := utils.FindWebPath("server/static")
	templatesPath := utils.FindWebPath("server/templates")

	r.Static("/static", staticPath)

	pattern := filepath.Join(templatesPath, "*.html")
	if files, _ := filepath.Glob(pattern); len(files) > 0 {
		r.LoadHTMLGlob(pattern)
	}
}
