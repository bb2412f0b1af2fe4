package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/store"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/utils"
)

func newUserFixture(t *testing.T) (*UserService, *store.UserStore) {
	t.Helper()

	adminHash, err := utils.HashPassword("admin-pass")
	require.NoError(t, err)
	disabledHash, err := utils.HashPassword("gone-pass")
	require.NoError(t, err)

	users := store.NewUserStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, users.Seed([]models.User{
		{Username: "admin", Password: adminHash, Role: models.RoleAdmin, Status: models.UserInactive},
		{Username: "gone", Password: disabledHash, Role: models.RoleUser, Status: models.UserDisabled},
	}))

	return NewUserService(users), users
}

func TestLogin_Success(t *testing.T) {
	t.Parallel()

	svc, users := newUserFixture(t)

	u, err := svc.Login("admin", "admin-pass")
	require.NoError(t, err)
	require.Equal(t, models.UserActive, u.Status)
	require.NotNil(t, u.LastLogin)

	stored, err := users.Get("admin")
	require.NoError(t, err)
	require.Equal(t, models.UserActive, stored.Status)
	require.NotNil(t, stored.LastLogin)
}

func TestLogin_WrongPassword(t *testing.T) {
	t.Parallel()

	svc, users := newUserFixture(t)

	_, err := svc.Login("admin", "nope")
	require.ErrorIs(t, err, ErrBadCredentials)

	stored, err := users.Get("admin")
	require.NoError(t, err)
	require.Equal(t, models.UserInactive, stored.Status)
	require.Nil(t, stored.LastLogin)
}

func TestLogin_UnknownUser(t *testing.T) {
	t.Parallel()

	svc, _ := newUserFixture(t)

	_, err := svc.Login("ghost", "whatever")
	require.ErrorIs(t, err, ErrBadCredentials)
}

func TestLogin_DisabledUserRejectedUnchanged(t *testing.T) {
	t.Parallel()

	svc, users := newUserFixture(t)

	// Even with the correct password, a disabled user never gets in and
	// the record stays byte-for-byte the same.
	_, err := svc.Login("gone", "gone-pass")
	require.ErrorIs(t, err, ErrUserDisabled)

	stored, err := users.Get("gone")
	require.NoError(t, err)
	require.Equal(t, models.UserDisabled, stored.Status)
	require.Nil(t, stored.LastLogin)
}

func TestLogout_MarksInactive(t *testing.T) {
	t.Parallel()

	svc, users := newUserFixture(t)

	_, err := svc.Login("admin", "admin-pass")
	require.NoError(t, err)

	svc.Logout("admin")

	stored, err := users.Get("admin")
	require.NoError(t, err)
	require.Equal(t, models.UserInactive, stored.Status)
}

func TestSetStatus_RejectsUnknownValue(t *testing.T) {
	t.Parallel()

	svc, _ := newUserFixture(t)

	require.Error(t, svc.SetStatus("admin", "banned"))
}

func TestSweepStaleActive(t *testing.T) {
	t.Parallel()

	svc, users := newUserFixture(t)

	// admin logged in long ago but still shows active.
	old := time.Now().Add(-3 * time.Hour)
	require.NoError(t, users.RecordLogin("admin", old))

	swept, err := svc.SweepStaleActive(2 * time.Hour)
	require.NoError(t, err)
	require.Equal(t, 1, swept)

	stored, err := users.Get("admin")
	require.NoError(t, err)
	require.Equal(t, models.UserInactive, stored.Status)
}

func TestSweepStaleActive_KeepsFreshSessions(t *testing.T) {
	t.Parallel()

	svc, users := newUserFixture(t)

	require.NoError(t, users.RecordLogin("admin", time.Now()))

	swept, err := svc.SweepStaleActive(2 * time.Hour)
	require.NoError(t, err)
	require.Equal(t, 0, swept)

	stored, err := users.Get("admin")
	require.NoError(t, err)
	require.Equal(t, models.UserActive, stored.Status)
}
