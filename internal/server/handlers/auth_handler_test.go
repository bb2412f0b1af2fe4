package handlers

import (
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/middleware"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/services"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/store"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/auth"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/utils"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *store.UserStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	adminHash, err := utils.HashPassword("admin-pass")
	require.NoError(t, err)
	disabledHash, err := utils.HashPassword("gone-pass")
	require.NoError(t, err)

	users := store.NewUserStore(filepath.Join(t.TempDir(), "users.json"))
	require.NoError(t, users.Seed([]models.User{
		{Username: "admin", Password: adminHash, Role: models.RoleAdmin, Status: models.UserInactive},
		{Username: "gone", Password: disabledHash, Role: models.RoleUser, Status: models.UserDisabled},
	}))

	jwtService := auth.NewJWTService("test-secret", time.Hour)
	h := NewAuthHandler(services.NewUserService(users), jwtService)

	r := gin.New()
	r.POST("/auth/login", h.Login)
	r.GET("/logout", h.Logout)
	return r, users
}

func postLogin(r *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == middleware.SessionCookie {
			return c
		}
	}
	t.Fatal("session cookie not set")
	return nil
}

func TestLoginHandler_Success(t *testing.T) {
	t.Parallel()

	r, users := newAuthRouter(t)

	w := postLogin(r, `{"username":"admin","password":"admin-pass"}`)
	require.Equal(t, http.StatusOK, w.Code)

	cookie := sessionCookie(t, w)
	require.NotEmpty(t, cookie.Value)
	require.True(t, cookie.HttpOnly)

	stored, err := users.Get("admin")
	require.NoError(t, err)
	require.Equal(t, models.UserActive, stored.Status)
}

func TestLoginHandler_BadPassword(t *testing.T) {
	t.Parallel()

	r, _ := newAuthRouter(t)

	w := postLogin(r, `{"username":"admin","password":"wrong"}`)
	require.Equal(t, http.StatusUnauthorized, w.Code)
	require.Empty(t, w.Result().Cookies())
}

func TestLoginHandler_DisabledUser(t *testing.T) {
	t.Parallel()

	r, users := newAuthRouter(t)

	w := postLogin(r, `{"username":"gone","password":"gone-pass"}`)
	require.Equal(t, http.StatusForbidden, w.Code)
	require.Empty(t, w.Result().Cookies())

	stored, err := users.Get("gone")
	require.NoError(t, err)
	require.Equal(t, models.UserDisabled, stored.Status)
	require.Nil(t, stored.LastLogin)
}

func TestLoginHandler_MissingFields(t *testing.T) {
	t.Parallel()

	r, _ := newAuthRouter(t)

	w := postLogin(r, `{"username":"admin"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogoutHandler_ClearsCookieAndStatus(t *testing.T) {
	t.Parallel()

	r, users := newAuthRouter(t)

	loginW := postLogin(r, `{"username":"admin","password":"admin-pass"}`)
	cookie := sessionCookie(t, loginW)

	req := httptest.NewRequest(http.MethodGet, "/logout", nil)
	req.AddCookie(cookie)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/", w.Header().Get("Location"))

	cleared := sessionCookie(t, w)
	require.Empty(t, cleared.Value)

	stored, err := users.Get("admin")
	require.NoError(t, err)
	require.Equal(t, models.UserInactive, stored.Status)
}
