package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// sourceConfigStore implements driven.SourceConfigStore.
// The settings are a single row with id 1.
type sourceConfigStore struct {
	pool *pgxpool.Pool
}

var _ driven.SourceConfigStore = (*sourceConfigStore)(nil)

// Save creates or replaces the settings.
func (s *sourceConfigStore) Save(ctx context.Context, cfg domain.SourceConfig) error {
	_, err := s.pool.Exec(ctx, `
		INSERT INTO source_config (id, base_url, access_token, connected, updated_at)
		VALUES (1, $1, $2, $3, $4)
		ON CONFLICT (id) DO UPDATE SET
			base_url = EXCLUDED.base_url,
			access_token = EXCLUDED.access_token,
			connected = EXCLUDED.connected,
			updated_at = EXCLUDED.updated_at
	`, cfg.BaseURL, cfg.AccessToken, cfg.Connected, nullableTime(cfg.UpdatedAt))
	if err != nil {
		return fmt.Errorf("saving source config: %w", err)
	}
	return nil
}

// Get retrieves the settings.
func (s *sourceConfigStore) Get(ctx context.Context) (*domain.SourceConfig, error) {
	var cfg domain.SourceConfig
	var updatedAt *time.Time
	err := s.pool.QueryRow(ctx, `
		SELECT base_url, access_token, connected, updated_at
		FROM source_config WHERE id = 1
	`).Scan(&cfg.BaseURL, &cfg.AccessToken, &cfg.Connected, &updatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning source config: %w", err)
	}
	cfg.UpdatedAt = derefTime(updatedAt)
	return &cfg, nil
}

// nullableTime maps the zero time to SQL NULL.
func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return t.UTC()
}
