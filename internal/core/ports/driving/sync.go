package driving

import (
	"context"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

// SyncOrchestrator runs customer synchronisation from the e-commerce platform.
type SyncOrchestrator interface {
	// RunSync executes one complete synchronisation pass.
	// If a session is already in progress it does nothing and returns a
	// result with Skipped set. Manual failures are returned as
	// *domain.SyncError; automatic failures are only recorded in the result.
	RunSync(ctx context.Context, mode domain.SyncMode) (*domain.SyncResult, error)

	// Session returns a snapshot of the current session state.
	Session() domain.SyncSession

	// Customers returns the customer list reloaded after the last successful sync.
	Customers(ctx context.Context) ([]domain.Customer, error)

	// Subscribe registers fn to receive a session snapshot on every change.
	// The returned function removes the subscription.
	Subscribe(fn func(domain.SyncSession)) (unsubscribe func())
}
