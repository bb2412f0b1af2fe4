package store

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
)

func TestConfigStore_SeedsDefaultsOnFirstAccess(t *testing.T) {
	t.Parallel()

	s := NewConfigStore(filepath.Join(t.TempDir(), "config.json"))

	cfg, err := s.Get()
	require.NoError(t, err)
	require.Equal(t, models.DefaultAlertConfig(), cfg)
}

func TestConfigStore_RoundTrip(t *testing.T) {
	t.Parallel()

	s := NewConfigStore(filepath.Join(t.TempDir(), "config.json"))

	want := models.AlertConfig{AlertEnabled: false, AlertCooldown: 30, MaxLogs: 42}
	require.NoError(t, s.Save(want))

	got, err := s.Get()
	require.NoError(t, err)
	require.Equal(t, want, got)
}

func TestThresholdStore_ReplaceRoundTrip(t *testing.T) {
	t.Parallel()

	s := NewThresholdStore(filepath.Join(t.TempDir(), "thresholds.json"))

	first, err := s.Get()
	require.NoError(t, err)
	require.Empty(t, first)

	want := map[string]interface{}{"default": float64(25), "night": float64(10)}
	require.NoError(t, s.Replace(want))

	got, err := s.Get()
	require.NoError(t, err)
	require.Equal(t, want, got)
}
