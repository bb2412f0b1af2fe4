package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/handlers"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/middleware"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/routes"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/services"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/store"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/auth"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/config"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/utils"
)

var (
	configFile  = flag.String("config", "configs/server.yaml", "config file path")
	versionFlag = flag.Bool("version", false, "print version and exit")
)

// Set at build time via -ldflags.
var (
	version   = "1.0.0"
	buildTime = "unknown"
)

const appName = "CrowdWatch Server"

func main() {
	flag.Parse()

	if *versionFlag {
		log.Printf("%s v%s (built at %s)", appName, version, buildTime)
		os.Exit(0)
	}

	log.Printf("starting %s v%s", appName, version)

	cfg, err := config.LoadServerConfig(*configFile)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}
	config.SetGlobalServerConfig(cfg)

	gin.SetMode(cfg.App.Mode)

	// Document stores; first boot seeds the default records.
	users := store.NewUserStore(cfg.StoragePath(cfg.Storage.UsersFile))
	zones := store.NewZoneStore(cfg.StoragePath(cfg.Storage.ZonesFile))
	alertConfig := store.NewConfigStore(cfg.StoragePath(cfg.Storage.ConfigFile))
	thresholds := store.NewThresholdStore(cfg.StoragePath(cfg.Storage.ThresholdsFile))

	if err := seedDefaults(cfg, users, zones); err != nil {
		log.Fatalf("seed default data: %v", err)
	}

	// Services.
	liveLog := services.NewLiveLog()
	sampler := services.NewRandomSampler(2, 20, time.Now().UnixNano())
	analyticsService := services.NewAnalyticsService(zones, alertConfig, sampler, liveLog)
	userService := services.NewUserService(users)
	dashboardService := services.NewDashboardService(users, zones, liveLog)
	exportService := services.NewExportService(liveLog)
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret, cfg.Auth.TokenExpiry)
	loginLimiter := middleware.NewLoginLimiter(cfg.Auth.LoginRate, cfg.Auth.LoginBurst)

	// The video feed degrades to 503 when no frames are on disk.
	var frames services.FrameSource
	if src, err := services.NewDirFrameSource(cfg.Video.FramesDir); err != nil {
		log.Printf("video feed disabled: %v", err)
	} else {
		frames = src
		log.Printf("video feed: %d frames from %s", src.Len(), cfg.Video.FramesDir)
	}

	scheduler := services.NewMaintenanceScheduler(userService, loginLimiter, cfg.Auth.TokenExpiry)
	if err := scheduler.Start(); err != nil {
		log.Fatalf("start maintenance scheduler: %v", err)
	}
	defer scheduler.Stop()

	router := routes.SetupRoutes(routes.Handlers{
		Auth:      handlers.NewAuthHandler(userService, jwtService),
		Analytics: handlers.NewAnalyticsHandler(analyticsService),
		Admin:     handlers.NewAdminHandler(dashboardService, userService, zones, alertConfig, thresholds),
		Export:    handlers.NewExportHandler(exportService),
		Video:     handlers.NewVideoHandler(frames, cfg.Video.FrameInterval),
	}, jwtService, loginLimiter)

	server := &http.Server{
		Addr:           cfg.App.Listen,
		Handler:        router,
		ReadTimeout:    cfg.App.ReadTimeout,
		WriteTimeout:   cfg.App.WriteTimeout, // zero: the video feed never ends
		IdleTimeout:    cfg.App.IdleTimeout,
		MaxHeaderBytes: cfg.App.MaxHeaderBytes << 20, // MB to bytes
	}

	go func() {
		log.Printf("HTTP server listening on %s", cfg.App.Listen)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("HTTP server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		log.Printf("shutdown: %v", err)
	}
	log.Println("server stopped")
}

// seedDefaults creates the two first-boot user records and an empty zone
// registry. Passwords come from the config; a missing password gets a
// generated one, printed once so the operator can log in.
func seedDefaults(cfg *config.ServerConfig, users *store.UserStore, zones *store.ZoneStore) error {
	if users.Exists() {
		return zones.Seed()
	}

	seed := func(username, password, role string) (models.User, error) {
		if password == "" {
			generated, err := utils.GenerateRandomString(16)
			if err != nil {
				return models.User{}, err
			}
			password = generated
			log.Printf("generated password for %s: %s", username, password)
		}
		hash, err := utils.HashPassword(password)
		if err != nil {
			return models.User{}, err
		}
		return models.User{
			Username: username,
			Password: hash,
			Role:     role,
			Status:   models.UserInactive,
		}, nil
	}

	admin, err := seed(cfg.Auth.AdminUsername, cfg.Auth.AdminPassword, models.RoleAdmin)
	if err != nil {
		return err
	}
	operator, err := seed(cfg.Auth.OperatorUsername, cfg.Auth.OperatorPassword, models.RoleUser)
	if err != nil {
		return err
	}

	if err := users.Seed([]models.User{admin, operator}); err != nil {
		return err
	}
	return zones.Seed()
}
