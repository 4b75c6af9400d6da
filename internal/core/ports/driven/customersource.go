package driven

import (
	"context"
	"time"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

// CustomerSource fetches customers from the e-commerce platform one page at a time.
type CustomerSource interface {
	// InitialURL returns the first page URL. A non-nil since adds the
	// incremental "updated since" filter.
	InitialURL(since *time.Time) string

	// FetchPage fetches one page. Failures are returned as *domain.SyncError
	// classified by what was observed (status code, transport failure).
	FetchPage(ctx context.Context, url string) (*domain.CustomerPage, error)

	// Ping checks that the source accepts the configured credentials.
	Ping(ctx context.Context) error
}

// CustomerSourceFactory creates a CustomerSource for the given settings.
type CustomerSourceFactory interface {
	// Create returns a source for cfg.
	// Returns domain.ErrInvalidInput if cfg cannot produce a usable client.
	Create(cfg domain.SourceConfig) (CustomerSource, error)
}

// CustomerNormaliser maps raw source records into customers.
// Implementations must be pure.
type CustomerNormaliser interface {
	Normalise(raw *domain.RawCustomer) domain.Customer
}
