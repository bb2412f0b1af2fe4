package store

import (
	"errors"
	"fmt"
	"os"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
)

// ConfigStore persists the singleton alert configuration.
type ConfigStore struct {
	doc document
}

// NewConfigStore creates an alert-config store over the given file path.
func NewConfigStore(path string) *ConfigStore {
	return &ConfigStore{doc: document{path: path}}
}

// Get returns the alert configuration, seeding the default document on
// first access.
func (s *ConfigStore) Get() (models.AlertConfig, error) {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	var cfg models.AlertConfig
	err := s.doc.load(&cfg)
	if errors.Is(err, os.ErrNotExist) {
		cfg = models.DefaultAlertConfig()
		if err := s.doc.save(cfg); err != nil {
			return models.AlertConfig{}, err
		}
		return cfg, nil
	}
	if err != nil {
		return models.AlertConfig{}, fmt.Errorf("load alert config: %w", err)
	}
	return cfg, nil
}

// Save replaces the alert configuration.
func (s *ConfigStore) Save(cfg models.AlertConfig) error {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()
	return s.doc.save(cfg)
}
