package services

import (
	"errors"
	"log"
	"time"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/store"
	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/utils"
)

// Login failure modes the auth handler branches on.
var (
	ErrBadCredentials = errors.New("invalid username or password")
	ErrUserDisabled   = errors.New("user disabled")
)

// UserService owns credential checks and user status bookkeeping over the
// credential store.
type UserService struct {
	users *store.UserStore
}

// NewUserService creates a user service.
func NewUserService(users *store.UserStore) *UserService {
	return &UserService{users: users}
}

// Login validates credentials and on success marks the user active and
// stamps last_login. A disabled user is rejected before the password check
// and its record is left untouched.
func (s *UserService) Login(username, password string) (*models.User, error) {
	user, err := s.users.Get(username)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			return nil, ErrBadCredentials
		}
		return nil, err
	}

	if user.IsDisabled() {
		return nil, ErrUserDisabled
	}

	if !utils.CheckPassword(password, user.Password) {
		return nil, ErrBadCredentials
	}

	now := time.Now()
	if err := s.users.RecordLogin(username, now); err != nil {
		return nil, err
	}
	user.Status = models.UserActive
	user.LastLogin = &now

	return user, nil
}

// Logout marks the user inactive. Best effort: the cookie is cleared
// regardless, so an unknown username or a write failure only gets logged.
func (s *UserService) Logout(username string) {
	err := s.users.SetStatus(username, models.UserInactive)
	if err != nil && !errors.Is(err, store.ErrUserNotFound) {
		log.Printf("logout: mark %s inactive: %v", username, err)
	}
}

// List returns all user records.
func (s *UserService) List() ([]models.User, error) {
	return s.users.All()
}

// SetStatus sets a user's status to one of active/inactive/disabled.
func (s *UserService) SetStatus(username, status string) error {
	switch status {
	case models.UserActive, models.UserInactive, models.UserDisabled:
	default:
		return errors.New("unknown user status: " + status)
	}
	return s.users.SetStatus(username, status)
}

// SweepStaleActive marks users back to inactive when they show active but
// have not logged in within maxAge. Covers browsers closed without logout.
func (s *UserService) SweepStaleActive(maxAge time.Duration) (int, error) {
	users, err := s.users.All()
	if err != nil {
		return 0, err
	}

	swept := 0
	cutoff := time.Now().Add(-maxAge)
	for _, u := range users {
		if u.Status != models.UserActive {
			continue
		}
		if u.LastLogin != nil && u.LastLogin.After(cutoff) {
			continue
		}
		if err := s.users.SetStatus(u.Username, models.UserInactive); err != nil {
			return swept, err
		}
		swept++
	}
	return swept, nil
}
