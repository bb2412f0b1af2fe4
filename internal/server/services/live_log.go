package services

import (
	"sync"

	"github.com/DubbakaVarsha/crowdcountanalysis/internal/server/models"
)

// LiveLog is the bounded, time-ordered in-memory sequence of analytics
// snapshots. All access goes through its mutex; Append truncates to the
// retention limit in the same critical section, so the size invariant
// (len <= max) holds after every call even under concurrent polls.
type LiveLog struct {
	mu      sync.Mutex
	entries []models.LogEntry
}

// NewLiveLog creates an empty live log.
func NewLiveLog() *LiveLog {
	return &LiveLog{}
}

// Append adds an entry and discards the oldest entries beyond max. A max
// below 1 retains a single entry.
func (l *LiveLog) Append(entry models.LogEntry, max int) {
	if max < 1 {
		max = 1
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	l.entries = append(l.entries, entry)
	if len(l.entries) > max {
		l.entries = append(l.entries[:0:0], l.entries[len(l.entries)-max:]...)
	}
}

// Snapshot returns a copy of all retained entries, oldest first.
func (l *LiveLog) Snapshot() []models.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	out := make([]models.LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Recent returns a copy of the most recent n entries, oldest first.
func (l *LiveLog) Recent(n int) []models.LogEntry {
	l.mu.Lock()
	defer l.mu.Unlock()

	if n > len(l.entries) {
		n = len(l.entries)
	}
	out := make([]models.LogEntry, n)
	copy(out, l.entries[len(l.entries)-n:])
	return out
}

// Len returns the number of retained entries.
func (l *LiveLog) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// AlertCount returns how many retained entries carry the alert flag.
func (l *LiveLog) AlertCount() int {
	l.mu.Lock()
	defer l.mu.Unlock()

	count := 0
	for _, e := range l.entries {
		if e.Alert {
			count++
		}
	}
	return count
}
