package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// watermarkStore implements driven.WatermarkStore.
type watermarkStore struct {
	store *Store
}

var _ driven.WatermarkStore = (*watermarkStore)(nil)

// Set overwrites the watermark for its entity type.
func (s *watermarkStore) Set(ctx context.Context, watermark domain.SyncWatermark) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO sync_watermarks (entity_type, last_synced_at)
		VALUES (?, ?)
		ON CONFLICT(entity_type) DO UPDATE SET
			last_synced_at = excluded.last_synced_at
	`, watermark.EntityType, formatTime(watermark.LastSyncedAt))

	if err != nil {
		return fmt.Errorf("saving watermark: %w", err)
	}
	return nil
}

// Get retrieves the watermark for an entity type.
func (s *watermarkStore) Get(ctx context.Context, entityType string) (*domain.SyncWatermark, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT entity_type, last_synced_at
		FROM sync_watermarks WHERE entity_type = ?
	`, entityType)

	var wm domain.SyncWatermark
	var lastSynced string
	if err := row.Scan(&wm.EntityType, &lastSynced); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning watermark: %w", err)
	}

	wm.LastSyncedAt = parseTime(lastSynced)
	return &wm, nil
}
