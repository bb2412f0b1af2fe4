package services

import (
	"fmt"
	"time"

	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/disk"
	"github.com/shirou/gopsutil/v3/host"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/store"
)

// DashboardService aggregates the admin summary page data.
type DashboardService struct {
	users   *store.UserStore
	zones   *store.ZoneStore
	liveLog *LiveLog
}

// NewDashboardService creates the admin dashboard service.
func NewDashboardService(users *store.UserStore, zones *store.ZoneStore, liveLog *LiveLog) *DashboardService {
	return &DashboardService{
		users:   users,
		zones:   zones,
		liveLog: liveLog,
	}
}

// DashboardStats is the admin summary payload.
type DashboardStats struct {
	TotalUsers  int `json:"total_users"`
	ActiveUsers int `json:"active_users"`
	ZoneCount   int `json:"zone_count"`
	AlertsToday int `json:"alerts_today"`

	// CurrentThreshold is min over active zone thresholds, shown as a
	// single headline number. The alert predicate itself stays per-zone.
	CurrentThreshold int `json:"current_threshold"`

	System SystemStatsInfo `json:"system_stats"`
}

// SystemStatsInfo is the host resource panel of the admin dashboard.
type SystemStatsInfo struct {
	CPUPercent  float64 `json:"cpu_percent"`
	MemPercent  float64 `json:"mem_percent"`
	MemUsed     uint64  `json:"mem_used"`
	MemTotal    uint64  `json:"mem_total"`
	DiskPercent float64 `json:"disk_percent"`
	Uptime      uint64  `json:"uptime"`
}

// Stats builds the summary: user/zone counts, alert tally from the live
// log, headline threshold and host stats.
func (s *DashboardService) Stats() (*DashboardStats, error) {
	users, err := s.users.All()
	if err != nil {
		return nil, fmt.Errorf("read users: %w", err)
	}
	zones, err := s.zones.All()
	if err != nil {
		return nil, fmt.Errorf("read zones: %w", err)
	}

	stats := &DashboardStats{
		TotalUsers:  len(users),
		ZoneCount:   len(zones),
		AlertsToday: s.liveLog.AlertCount(),
	}

	for _, u := range users {
		if u.Status == models.UserActive {
			stats.ActiveUsers++
		}
	}

	minThreshold := 0
	for _, z := range zones {
		if !z.IsActive() {
			continue
		}
		if minThreshold == 0 || z.Threshold < minThreshold {
			minThreshold = z.Threshold
		}
	}
	stats.CurrentThreshold = minThreshold

	stats.System = collectSystemStats()

	return stats, nil
}

// collectSystemStats reads host metrics; failures leave zero values rather
// than failing the dashboard.
func collectSystemStats() SystemStatsInfo {
	var info SystemStatsInfo

	if percents, err := cpu.Percent(100*time.Millisecond, false); err == nil && len(percents) > 0 {
		info.CPUPercent = percents[0]
	}
	if vm, err := mem.VirtualMemory(); err == nil {
		info.MemPercent = vm.UsedPercent
		info.MemUsed = vm.Used
		info.MemTotal = vm.Total
	}
	if du, err := disk.Usage("/"); err == nil {
		info.DiskPercent = du.UsedPercent
	}
	if up, err := host.Uptime(); err == nil {
		info.Uptime = up
	}

	return info
}
