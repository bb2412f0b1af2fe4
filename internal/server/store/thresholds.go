package store

import (
	"errors"
	"fmt"
	"os"
)

// ThresholdStore persists the free-form thresholds document, read and
// replaced wholesale through the admin API.
type ThresholdStore struct {
	doc document
}

// NewThresholdStore creates a thresholds store over the given file path.
func NewThresholdStore(path string) *ThresholdStore {
	return &ThresholdStore{doc: document{path: path}}
}

// Get returns the thresholds document, seeding an empty object on first
// access.
func (s *ThresholdStore) Get() (map[string]interface{}, error) {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	var data map[string]interface{}
	err := s.doc.load(&data)
	if errors.Is(err, os.ErrNotExist) {
		data = map[string]interface{}{}
		if err := s.doc.save(data); err != nil {
			return nil, err
		}
		return data, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load thresholds: %w", err)
	}
	return data, nil
}

// Replace overwrites the thresholds document with the given content.
func (s *ThresholdStore) Replace(data map[string]interface{}) error {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()
	return s.doc.save(data)
}
