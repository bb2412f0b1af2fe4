// Package store persists the application's state as whole JSON documents:
// users, zones, alert configuration and the raw thresholds file. Every
// operation is a load-all/save-all under the owning store's mutex, and
// writes replace the document atomically via temp-file-then-rename.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/shared/utils"
)

// Store errors.
var (
	ErrUserNotFound = errors.New("user not found")
	ErrUserExists   = errors.New("username already exists")
	ErrZoneNotFound = errors.New("zone not found")
)

// document is one JSON file on disk plus the lock serializing access to it.
type document struct {
	path string
	mu   sync.Mutex
}

// load reads and decodes the document into v. A missing file surfaces as
// os.ErrNotExist so callers can seed defaults.
func (d *document) load(v interface{}) error {
	data, err := os.ReadFile(d.path)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decode %s: %w", d.path, err)
	}
	return nil
}

// save encodes v and replaces the document atomically.
func (d *document) save(v interface{}) error {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", d.path, err)
	}
	if err := utils.WriteFileAtomic(d.path, data, 0644); err != nil {
		return fmt.Errorf("write %s: %w", d.path, err)
	}
	return nil
}

// exists reports whether the document file is present.
func (d *document) exists() bool {
	_, err := os.Stat(d.path)
	return err == nil
}
