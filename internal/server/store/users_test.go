package store

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
)

func newUserStore(t *testing.T) *UserStore {
	t.Helper()
	s := NewUserStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, s.Seed([]models.User{
		{Username: "admin", Password: "hash-a", Role: models.RoleAdmin, Status: models.UserInactive},
		{Username: "operator", Password: "hash-o", Role: models.RoleUser, Status: models.UserInactive},
	}))
	return s
}

func TestUserStore_SeedOnlyOnce(t *testing.T) {
	t.Parallel()

	s := newUserStore(t)

	// A second seed against an existing document must not overwrite it.
	require.NoError(t, s.RecordLogin("admin", time.Now()))
	require.NoError(t, s.Seed([]models.User{{Username: "other"}}))

	u, err := s.Get("admin")
	require.NoError(t, err)
	require.Equal(t, models.UserActive, u.Status)
}

func TestUserStore_CreateRejectsDuplicate(t *testing.T) {
	t.Parallel()

	s := newUserStore(t)

	err := s.Create(models.User{Username: "admin", Role: models.RoleUser, Status: models.UserInactive})
	require.ErrorIs(t, err, ErrUserExists)
}

func TestUserStore_RecordLoginSetsStatusAndTimestamp(t *testing.T) {
	t.Parallel()

	s := newUserStore(t)

	at := time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC)
	require.NoError(t, s.RecordLogin("operator", at))

	u, err := s.Get("operator")
	require.NoError(t, err)
	require.Equal(t, models.UserActive, u.Status)
	require.NotNil(t, u.LastLogin)
	require.True(t, u.LastLogin.Equal(at))
}

func TestUserStore_PasswordHashRoundTrips(t *testing.T) {
	t.Parallel()

	s := newUserStore(t)

	u, err := s.Get("admin")
	require.NoError(t, err)
	require.Equal(t, "hash-a", u.Password)
}

func TestUserStore_DeleteUnknown(t *testing.T) {
	t.Parallel()

	s := newUserStore(t)

	require.ErrorIs(t, s.Delete("ghost"), ErrUserNotFound)
}
