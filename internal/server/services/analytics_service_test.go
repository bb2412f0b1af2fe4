package services

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/store"
)

func newAnalyticsFixture(t *testing.T, sampler OccupancySampler) (*AnalyticsService, *store.ZoneStore, *store.ConfigStore) {
	t.Helper()

	dir := t.TempDir()
	zones := store.NewZoneStore(filepath.Join(dir, "zones.json"))
	require.NoError(t, zones.Seed())
	config := store.NewConfigStore(filepath.Join(dir, "config.json"))

	svc := NewAnalyticsService(zones, config, sampler, NewLiveLog())
	return svc, zones, config
}

func TestPoll_AlertWhenCountExceedsZoneThreshold(t *testing.T) {
	t.Parallel()

	svc, zones, _ := newAnalyticsFixture(t, FixedSampler(15))
	_, err := zones.Create(models.Zone{Camera: "cam-1", Name: "Gate A", Threshold: 10, Status: models.ZoneActive})
	require.NoError(t, err)

	entry, err := svc.Poll()
	require.NoError(t, err)
	require.True(t, entry.Alert)
	require.Equal(t, 15, entry.Total)
	require.Equal(t, map[string]int{"Gate A": 15}, entry.Zones)
}

func TestPoll_InactiveZoneExcluded(t *testing.T) {
	t.Parallel()

	svc, zones, _ := newAnalyticsFixture(t, FixedSampler(15))
	_, err := zones.Create(models.Zone{Camera: "cam-1", Name: "Gate A", Threshold: 10, Status: models.ZoneInactive})
	require.NoError(t, err)

	entry, err := svc.Poll()
	require.NoError(t, err)
	require.False(t, entry.Alert)
	require.Equal(t, 0, entry.Total)
	require.Empty(t, entry.Zones)
}

func TestPoll_NoAlertWhenDisabled(t *testing.T) {
	t.Parallel()

	svc, zones, config := newAnalyticsFixture(t, FixedSampler(100))
	_, err := zones.Create(models.Zone{Camera: "cam-1", Name: "Gate A", Threshold: 10, Status: models.ZoneActive})
	require.NoError(t, err)

	require.NoError(t, config.Save(models.AlertConfig{AlertEnabled: false, AlertCooldown: 5, MaxLogs: 100}))

	entry, err := svc.Poll()
	require.NoError(t, err)
	require.False(t, entry.Alert)
	require.Equal(t, 100, entry.Total)
}

func TestPoll_NoAlertAtExactThreshold(t *testing.T) {
	t.Parallel()

	// The predicate is strictly-greater-than the zone's own threshold.
	svc, zones, _ := newAnalyticsFixture(t, FixedSampler(10))
	_, err := zones.Create(models.Zone{Camera: "cam-1", Name: "Gate A", Threshold: 10, Status: models.ZoneActive})
	require.NoError(t, err)

	entry, err := svc.Poll()
	require.NoError(t, err)
	require.False(t, entry.Alert)
}

func TestPoll_PerZoneThresholds(t *testing.T) {
	t.Parallel()

	// One zone over its own threshold is enough, even if another zone with
	// a higher threshold stays under.
	svc, zones, _ := newAnalyticsFixture(t, FixedSampler(12))
	_, err := zones.Create(models.Zone{Camera: "cam-1", Name: "Lobby", Threshold: 50, Status: models.ZoneActive})
	require.NoError(t, err)
	_, err = zones.Create(models.Zone{Camera: "cam-2", Name: "Gate A", Threshold: 10, Status: models.ZoneActive})
	require.NoError(t, err)

	entry, err := svc.Poll()
	require.NoError(t, err)
	require.True(t, entry.Alert)
	require.Equal(t, 24, entry.Total)
}

func TestPoll_LiveLogBoundedAcrossPolls(t *testing.T) {
	t.Parallel()

	svc, zones, config := newAnalyticsFixture(t, FixedSampler(1))
	_, err := zones.Create(models.Zone{Camera: "cam-1", Name: "Gate A", Threshold: 10, Status: models.ZoneActive})
	require.NoError(t, err)

	const maxLogs = 3
	require.NoError(t, config.Save(models.AlertConfig{AlertEnabled: true, AlertCooldown: 5, MaxLogs: maxLogs}))

	for i := 0; i < 10; i++ {
		_, err := svc.Poll()
		require.NoError(t, err)
	}

	require.Equal(t, maxLogs, svc.Log().Len())
}

func TestPoll_SamplerIsPerZone(t *testing.T) {
	t.Parallel()

	svc, zones, _ := newAnalyticsFixture(t, FixedSampler(3))
	for _, name := range []string{"A", "B", "C"} {
		_, err := zones.Create(models.Zone{Camera: "cam", Name: name, Threshold: 99, Status: models.ZoneActive})
		require.NoError(t, err)
	}

	entry, err := svc.Poll()
	require.NoError(t, err)
	require.Len(t, entry.Zones, 3)
	require.Equal(t, 9, entry.Total)
}

func TestRandomSampler_Range(t *testing.T) {
	t.Parallel()

	s := NewRandomSampler(2, 20, 1)
	for i := 0; i < 1000; i++ {
		n := s.Sample(models.Zone{})
		require.GreaterOrEqual(t, n, 2)
		require.LessOrEqual(t, n, 20)
	}
}
