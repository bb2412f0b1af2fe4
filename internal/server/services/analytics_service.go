package services

import (
	"fmt"
	"time"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/store"
)

// AnalyticsService computes one occupancy snapshot per poll. There is no
// background sampling: the "live" analytics are pulled on demand by client
// polling.
type AnalyticsService struct {
	zones   *store.ZoneStore
	config  *store.ConfigStore
	sampler OccupancySampler
	liveLog *LiveLog
	now     func() time.Time
}

// NewAnalyticsService creates the analytics engine.
func NewAnalyticsService(zones *store.ZoneStore, config *store.ConfigStore, sampler OccupancySampler, liveLog *LiveLog) *AnalyticsService {
	return &AnalyticsService{
		zones:   zones,
		config:  config,
		sampler: sampler,
		liveLog: liveLog,
		now:     time.Now,
	}
}

// Poll samples every active zone, evaluates the alert predicate, appends
// the snapshot to the live log and returns it. Zone registry and alert
// config are re-read on every call; a read failure is a hard error for
// this poll, no retry.
//
// The alert predicate compares each active zone's count against that
// zone's own threshold; there is no single global threshold.
func (s *AnalyticsService) Poll() (*models.LogEntry, error) {
	zones, err := s.zones.All()
	if err != nil {
		return nil, fmt.Errorf("read zone registry: %w", err)
	}
	cfg, err := s.config.Get()
	if err != nil {
		return nil, fmt.Errorf("read alert config: %w", err)
	}

	counts := make(map[string]int)
	total := 0
	alert := false

	for _, z := range zones {
		if !z.IsActive() {
			continue
		}

		count := s.sampler.Sample(z)
		counts[z.Name] = count
		total += count

		if cfg.AlertEnabled && count > z.Threshold {
			alert = true
		}
	}

	entry := models.LogEntry{
		Time:  s.now().Format("15:04:05"),
		Zones: counts,
		Total: total,
		Alert: alert,
	}

	s.liveLog.Append(entry, cfg.MaxLogs)

	return &entry, nil
}

// Log exposes the live log for dashboards and exports.
func (s *AnalyticsService) Log() *LiveLog {
	return s.liveLog
}
