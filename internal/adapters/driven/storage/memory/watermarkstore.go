package memory

import (
	"context"
	"sync"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// Ensure WatermarkStore implements the interface.
var _ driven.WatermarkStore = (*WatermarkStore)(nil)

// WatermarkStore is an in-memory implementation of driven.WatermarkStore.
type WatermarkStore struct {
	mu         sync.RWMutex
	watermarks map[string]domain.SyncWatermark
}

// NewWatermarkStore creates a new in-memory watermark store.
func NewWatermarkStore() *WatermarkStore {
	return &WatermarkStore{
		watermarks: make(map[string]domain.SyncWatermark),
	}
}

// Set overwrites the watermark for its entity type.
func (s *WatermarkStore) Set(_ context.Context, watermark domain.SyncWatermark) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.watermarks[watermark.EntityType] = watermark
	return nil
}

// Get retrieves the watermark for an entity type.
func (s *WatermarkStore) Get(_ context.Context, entityType string) (*domain.SyncWatermark, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	wm, ok := s.watermarks[entityType]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return &wm, nil
}
