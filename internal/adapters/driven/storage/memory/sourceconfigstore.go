package memory

import (
	"context"
	"sync"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// Ensure SourceConfigStore implements the interface.
var _ driven.SourceConfigStore = (*SourceConfigStore)(nil)

// SourceConfigStore is an in-memory implementation of driven.SourceConfigStore.
type SourceConfigStore struct {
	mu  sync.RWMutex
	cfg *domain.SourceConfig
}

// NewSourceConfigStore creates a new in-memory source config store.
func NewSourceConfigStore() *SourceConfigStore {
	return &SourceConfigStore{}
}

// Get retrieves the settings.
func (s *SourceConfigStore) Get(_ context.Context) (*domain.SourceConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.cfg == nil {
		return nil, domain.ErrNotFound
	}
	cfg := *s.cfg
	return &cfg, nil
}

// Save replaces the settings.
func (s *SourceConfigStore) Save(_ context.Context, cfg domain.SourceConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfg = &cfg
	return nil
}
