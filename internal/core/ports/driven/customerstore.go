package driven

import (
	"context"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

// CustomerStore persists customers.
// Operations are never retried inside the store.
type CustomerStore interface {
	// UpsertBatch writes all customers in one atomic call.
	// Conflicts are resolved on ExternalCode only: an existing row is updated
	// in place (keeping its ID), anything else is inserted with a new ID.
	UpsertBatch(ctx context.Context, customers []domain.Customer) error

	// List returns all customers ordered by name, then external code.
	List(ctx context.Context) ([]domain.Customer, error)

	// GetByExternalCode retrieves one customer.
	// Returns domain.ErrNotFound if it does not exist.
	GetByExternalCode(ctx context.Context, code string) (*domain.Customer, error)

	// Count returns the number of stored customers.
	Count(ctx context.Context) (int, error)
}

// WatermarkStore persists the incremental sync boundary per entity type.
type WatermarkStore interface {
	// Get retrieves the watermark for entityType.
	// Returns domain.ErrNotFound if no sync has completed yet.
	Get(ctx context.Context, entityType string) (*domain.SyncWatermark, error)

	// Set overwrites the watermark.
	Set(ctx context.Context, watermark domain.SyncWatermark) error
}
