package store

import (
	"fmt"
	"time"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
)

// diskUser is the on-disk form of a user record; unlike models.User it
// carries the password hash.
type diskUser struct {
	Username  string     `json:"username"`
	Password  string     `json:"password"`
	Role      string     `json:"role"`
	Status    string     `json:"status"`
	LastLogin *time.Time `json:"last_login"`
}

func toDisk(u models.User) diskUser {
	return diskUser{
		Username:  u.Username,
		Password:  u.Password,
		Role:      u.Role,
		Status:    u.Status,
		LastLogin: u.LastLogin,
	}
}

func fromDisk(d diskUser) models.User {
	return models.User{
		Username:  d.Username,
		Password:  d.Password,
		Role:      d.Role,
		Status:    d.Status,
		LastLogin: d.LastLogin,
	}
}

// UserStore is the credential store, persisted as one JSON document keyed
// by username.
type UserStore struct {
	doc document
}

// NewUserStore creates a user store over the given file path.
func NewUserStore(path string) *UserStore {
	return &UserStore{doc: document{path: path}}
}

// Exists reports whether a users document is already on disk.
func (s *UserStore) Exists() bool {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()
	return s.doc.exists()
}

// Seed writes the given records if no users document exists yet.
func (s *UserStore) Seed(users []models.User) error {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	if s.doc.exists() {
		return nil
	}

	records := make([]diskUser, 0, len(users))
	for _, u := range users {
		records = append(records, toDisk(u))
	}
	return s.doc.save(records)
}

// loadLocked reads all records; the caller must hold the lock.
func (s *UserStore) loadLocked() ([]diskUser, error) {
	var records []diskUser
	if err := s.doc.load(&records); err != nil {
		return nil, fmt.Errorf("load users: %w", err)
	}
	return records, nil
}

// All returns every user record.
func (s *UserStore) All() ([]models.User, error) {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return nil, err
	}

	users := make([]models.User, 0, len(records))
	for _, r := range records {
		users = append(users, fromDisk(r))
	}
	return users, nil
}

// Get returns the user with the given username.
func (s *UserStore) Get(username string) (*models.User, error) {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return nil, err
	}

	for _, r := range records {
		if r.Username == username {
			user := fromDisk(r)
			return &user, nil
		}
	}
	return nil, ErrUserNotFound
}

// Create appends a new user; a duplicate username is rejected.
func (s *UserStore) Create(user models.User) error {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return err
	}

	for _, r := range records {
		if r.Username == user.Username {
			return ErrUserExists
		}
	}

	records = append(records, toDisk(user))
	return s.doc.save(records)
}

// Update replaces the record with the same username in full.
func (s *UserStore) Update(user models.User) error {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return err
	}

	for i, r := range records {
		if r.Username == user.Username {
			records[i] = toDisk(user)
			return s.doc.save(records)
		}
	}
	return ErrUserNotFound
}

// Delete removes the record with the given username.
func (s *UserStore) Delete(username string) error {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return err
	}

	kept := records[:0]
	found := false
	for _, r := range records {
		if r.Username == username {
			found = true
			continue
		}
		kept = append(kept, r)
	}
	if !found {
		return ErrUserNotFound
	}
	return s.doc.save(kept)
}

// SetStatus updates only the status field of the given user.
func (s *UserStore) SetStatus(username, status string) error {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].Username == username {
			records[i].Status = status
			return s.doc.save(records)
		}
	}
	return ErrUserNotFound
}

// RecordLogin marks the user active and stamps last_login.
func (s *UserStore) RecordLogin(username string, at time.Time) error {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	records, err := s.loadLocked()
	if err != nil {
		return err
	}

	for i := range records {
		if records[i].Username == username {
			records[i].Status = models.UserActive
			records[i].LastLogin = &at
			return s.doc.save(records)
		}
	}
	return ErrUserNotFound
}
