package driving

import (
	"context"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

// SourceSettingsService manages the e-commerce connection.
type SourceSettingsService interface {
	// Get returns the current connection settings.
	// Returns domain.ErrNotFound if the source was never configured.
	Get(ctx context.Context) (*domain.SourceConfig, error)

	// Connect validates and stores the settings, marking the source connected.
	Connect(ctx context.Context, baseURL, accessToken string) (*domain.SourceConfig, error)

	// Disconnect marks the source disconnected. Settings are kept.
	Disconnect(ctx context.Context) error

	// TestConnection checks that the stored settings reach the source.
	TestConnection(ctx context.Context) error
}

// ActivityLogService records and lists activity log entries.
type ActivityLogService interface {
	// Record appends an entry for the acting user.
	Record(ctx context.Context, action, module, details string) error

	// List returns entries newest first, filtered by module.
	List(ctx context.Context, module string, limit int) ([]domain.LogEntry, error)
}

// CustomerService provides read access to synchronised customers.
type CustomerService interface {
	// List returns all customers ordered by name.
	List(ctx context.Context) ([]domain.Customer, error)

	// Search returns customers whose name, code or email contains term.
	Search(ctx context.Context, term string) ([]domain.Customer, error)

	// Get returns one customer by external code.
	Get(ctx context.Context, code string) (*domain.Customer, error)

	// Count returns the number of stored customers.
	Count(ctx context.Context) (int, error)
}
