package store

import (
	"fmt"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
)

// ZoneStore is the zone registry, persisted as one JSON document.
type ZoneStore struct {
	doc document
}

// NewZoneStore creates a zone store over the given file path.
func NewZoneStore(path string) *ZoneStore {
	return &ZoneStore{doc: document{path: path}}
}

// Seed writes an empty registry if no zones document exists yet.
func (s *ZoneStore) Seed() error {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	if s.doc.exists() {
		return nil
	}
	return s.doc.save([]models.Zone{})
}

func (s *ZoneStore) loadLocked() ([]models.Zone, error) {
	var zones []models.Zone
	if err := s.doc.load(&zones); err != nil {
		return nil, fmt.Errorf("load zones: %w", err)
	}
	return zones, nil
}

// All returns every zone.
func (s *ZoneStore) All() ([]models.Zone, error) {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()
	return s.loadLocked()
}

// Get returns the zone with the given id.
func (s *ZoneStore) Get(id int) (*models.Zone, error) {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	zones, err := s.loadLocked()
	if err != nil {
		return nil, err
	}
	for _, z := range zones {
		if z.ID == id {
			zone := z
			return &zone, nil
		}
	}
	return nil, ErrZoneNotFound
}

// Create appends a zone, assigning id = max existing + 1 (1 when empty),
// and returns the stored zone.
func (s *ZoneStore) Create(zone models.Zone) (*models.Zone, error) {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	zones, err := s.loadLocked()
	if err != nil {
		return nil, err
	}

	maxID := 0
	for _, z := range zones {
		if z.ID > maxID {
			maxID = z.ID
		}
	}
	zone.ID = maxID + 1

	zones = append(zones, zone)
	if err := s.doc.save(zones); err != nil {
		return nil, err
	}
	return &zone, nil
}

// Update replaces the zone with the same id in full. An unknown id is a
// silent no-op, matching the admin UI which only offers existing zones.
func (s *ZoneStore) Update(zone models.Zone) error {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	zones, err := s.loadLocked()
	if err != nil {
		return err
	}

	for i, z := range zones {
		if z.ID == zone.ID {
			zones[i] = zone
			return s.doc.save(zones)
		}
	}
	return nil
}

// Delete removes exactly the zone with the given id, leaving other ids
// untouched. An unknown id is a silent no-op.
func (s *ZoneStore) Delete(id int) error {
	s.doc.mu.Lock()
	defer s.doc.mu.Unlock()

	zones, err := s.loadLocked()
	if err != nil {
		return err
	}

	kept := zones[:0]
	for _, z := range zones {
		if z.ID != id {
			kept = append(kept, z)
		}
	}
	return s.doc.save(kept)
}
