package services

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
)

// FrameSource yields JPEG frames for the video feed. Implementations must
// restart at the beginning when the underlying material is exhausted, so
// the feed loops instead of terminating.
type FrameSource interface {
	Next() ([]byte, error)
}

// DirFrameSource loops over the JPEG files of a directory in name order.
// It stands in for a real capture pipeline; the annotated overlays of the
// eventual vision stack are out of scope here.
type DirFrameSource struct {
	mu    sync.Mutex
	files []string
	pos   int
}

// NewDirFrameSource scans dir for .jpg/.jpeg files.
func NewDirFrameSource(dir string) (*DirFrameSource, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read frames directory: %w", err)
	}

	var files []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".jpg" || ext == ".jpeg" {
			files = append(files, filepath.Join(dir, e.Name()))
		}
	}
	sort.Strings(files)

	if len(files) == 0 {
		return nil, fmt.Errorf("no jpeg frames in %s", dir)
	}

	return &DirFrameSource{files: files}, nil
}

// Next returns the next frame, wrapping to the first after the last.
func (d *DirFrameSource) Next() ([]byte, error) {
	d.mu.Lock()
	path := d.files[d.pos]
	d.pos = (d.pos + 1) % len(d.files)
	d.mu.Unlock()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read frame %s: %w", path, err)
	}
	return data, nil
}

// Len returns how many frames the source cycles through.
func (d *DirFrameSource) Len() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.files)
}
