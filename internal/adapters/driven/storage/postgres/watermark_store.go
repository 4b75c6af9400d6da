package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// watermarkStore implements driven.WatermarkStore.
type watermarkStore struct {
	pool *pgxpool.Pool
}

var _ driven.WatermarkStore = (*watermarkStore)(nil)

// Set overwrites the watermark for its entity type.
func (s *watermarkStore) Set(ctx context.Context, watermark domain.SyncWatermark) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO sync_watermarks (entity_type, last_synced_at)
		VALUES ($1, $2)
		ON CONFLICT (entity_type) DO UPDATE SET
			last_synced_at = EXCLUDED.last_synced_at
	`, watermark.EntityType, watermark.LastSyncedAt.UTC())
	if err != nil {
		return fmt.Errorf("saving watermark: %w", err)
	}
	return nil
}

// Get retrieves the watermark for an entity type.
func (s *watermarkStore) Get(ctx context.Context, entityType string) (*domain.SyncWatermark, error) {
	var wm domain.SyncWatermark
	err := s.pool.QueryRow(ctx, `
		SELECT entity_type, last_synced_at
		FROM sync_watermarks WHERE entity_type = $1
	`, entityType).Scan(&wm.EntityType, &wm.LastSyncedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning watermark: %w", err)
	}
	wm.LastSyncedAt = wm.LastSyncedAt.UTC()
	return &wm, nil
}
