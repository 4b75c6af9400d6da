package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// sourceConfigStore implements driven.SourceConfigStore.
// The settings are a single row with id 1.
type sourceConfigStore struct {
	store *Store
}

var _ driven.SourceConfigStore = (*sourceConfigStore)(nil)

// Save creates or replaces the settings.
func (s *sourceConfigStore) Save(ctx context.Context, cfg domain.SourceConfig) error {
	_, err := s.store.db.ExecContext(ctx, `
		INSERT INTO source_config (id, base_url, access_token, connected, updated_at)
		VALUES (1, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			base_url = excluded.base_url,
			access_token = excluded.access_token,
			connected = excluded.connected,
			updated_at = excluded.updated_at
	`, cfg.BaseURL, cfg.AccessToken, boolToInt(cfg.Connected), formatNullableTime(cfg.UpdatedAt))

	if err != nil {
		return fmt.Errorf("saving source config: %w", err)
	}
	return nil
}

// Get retrieves the settings.
func (s *sourceConfigStore) Get(ctx context.Context) (*domain.SourceConfig, error) {
	row := s.store.db.QueryRowContext(ctx, `
		SELECT base_url, access_token, connected, updated_at
		FROM source_config WHERE id = 1
	`)

	var cfg domain.SourceConfig
	var connected int
	var updatedAt sql.NullString
	if err := row.Scan(&cfg.BaseURL, &cfg.AccessToken, &connected, &updatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("scanning source config: %w", err)
	}

	cfg.Connected = connected == 1
	cfg.UpdatedAt = parseNullableTime(updatedAt)
	return &cfg, nil
}
