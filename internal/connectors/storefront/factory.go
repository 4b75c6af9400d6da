package storefront

import (
	"net/http"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// Ensure Factory implements the interface.
var _ driven.CustomerSourceFactory = (*Factory)(nil)

// Factory builds storefront clients from stored connection settings.
// The zero value uses client defaults.
type Factory struct {
	// HTTPClient is shared by every client created.
	HTTPClient *http.Client
}

// NewFactory creates a factory with client defaults.
func NewFactory() *Factory {
	return &Factory{}
}

// Create returns a client for cfg.
func (f *Factory) Create(cfg domain.SourceConfig) (driven.CustomerSource, error) {
	return NewClient(Config{
		BaseURL:     cfg.BaseURL,
		AccessToken: cfg.AccessToken,
		HTTPClient:  f.HTTPClient,
	})
}
