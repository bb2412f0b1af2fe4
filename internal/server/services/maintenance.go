package services

import (
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// LimiterCleaner is what the maintenance scheduler needs from the login
// rate limiter.
type LimiterCleaner interface {
	Cleanup()
}

// MaintenanceScheduler runs the periodic housekeeping jobs. Analytics is
// deliberately not scheduled here: polls stay purely client-driven.
type MaintenanceScheduler struct {
	cron     *cron.Cron
	users    *UserService
	limiter  LimiterCleaner
	tokenTTL time.Duration
}

// NewMaintenanceScheduler creates the scheduler.
func NewMaintenanceScheduler(users *UserService, limiter LimiterCleaner, tokenTTL time.Duration) *MaintenanceScheduler {
	return &MaintenanceScheduler{
		cron:     cron.New(),
		users:    users,
		limiter:  limiter,
		tokenTTL: tokenTTL,
	}
}

// Start registers and starts the jobs.
func (m *MaintenanceScheduler) Start() error {
	// Users stuck "active" after a browser close drop back to inactive
	// once their token has certainly expired.
	_, err := m.cron.AddFunc("*/5 * * * *", func() {
		swept, err := m.users.SweepStaleActive(m.tokenTTL)
		if err != nil {
			log.Printf("stale-user sweep failed: %v", err)
			return
		}
		if swept > 0 {
			log.Printf("stale-user sweep: %d user(s) marked inactive", swept)
		}
	})
	if err != nil {
		return fmt.Errorf("add stale-user sweep: %w", err)
	}

	_, err = m.cron.AddFunc("0 * * * *", func() {
		m.limiter.Cleanup()
	})
	if err != nil {
		return fmt.Errorf("add limiter cleanup: %w", err)
	}

	m.cron.Start()
	log.Println("maintenance scheduler started (stale-user sweep 5m, limiter cleanup 1h)")
	return nil
}

// Stop stops the scheduler, waiting for running jobs.
func (m *MaintenanceScheduler) Stop() {
	ctx := m.cron.Stop()
	<-ctx.Done()
}
