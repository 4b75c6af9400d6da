package driven

import (
	"context"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

// SourceConfigStore persists the e-commerce connection settings.
type SourceConfigStore interface {
	// Get retrieves the settings.
	// Returns domain.ErrNotFound if the source was never configured.
	Get(ctx context.Context) (*domain.SourceConfig, error)

	// Save creates or replaces the settings.
	Save(ctx context.Context, cfg domain.SourceConfig) error
}
