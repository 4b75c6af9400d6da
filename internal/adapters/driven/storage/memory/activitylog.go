package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// Ensure ActivityLog implements the interface.
var _ driven.ActivityLog = (*ActivityLog)(nil)

// ActivityLog is an in-memory implementation of driven.ActivityLog.
type ActivityLog struct {
	mu      sync.RWMutex
	entries []domain.LogEntry
}

// NewActivityLog creates a new in-memory activity log.
func NewActivityLog() *ActivityLog {
	return &ActivityLog{}
}

// Append records an entry.
func (l *ActivityLog) Append(_ context.Context, entry *domain.LogEntry) error {
	if entry == nil {
		return domain.ErrInvalidInput
	}
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if entry.Timestamp.IsZero() {
		entry.Timestamp = time.Now()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries = append(l.entries, *entry)
	return nil
}

// List returns entries newest first.
func (l *ActivityLog) List(_ context.Context, module string, limit int) ([]domain.LogEntry, error) {
	l.mu.RLock()
	defer l.mu.RUnlock()

	out := make([]domain.LogEntry, 0, len(l.entries))
	for i := len(l.entries) - 1; i >= 0; i-- {
		if l.entries[i].MatchesModule(module) {
			out = append(out, l.entries[i])
		}
	}
	// Appends are usually in time order; the stable sort covers callers
	// that supply their own timestamps.
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// Entries returns a copy of all entries in append order.
func (l *ActivityLog) Entries() []domain.LogEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]domain.LogEntry, len(l.entries))
	copy(out, l.entries)
	return out
}
