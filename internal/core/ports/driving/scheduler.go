package driving

import (
	"context"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

// Scheduler decides when customer synchronisation runs.
type Scheduler interface {
	// Start runs an automatic sync immediately, then on every tick.
	// Blocks until the context is cancelled or Stop is called.
	Start(ctx context.Context) error

	// Stop cancels future runs. Results of runs already dispatched are discarded.
	Stop() error

	// Wait blocks until dispatched runs have finished.
	Wait()

	// TriggerManual runs one manual sync. It is ignored (Skipped) while a session is in progress.
	TriggerManual(ctx context.Context) (*domain.SyncResult, error)

	// OnResult registers a callback for every completed run that was not discarded.
	OnResult(fn func(*domain.SyncResult, error))

	// History returns recent runs, most recent first.
	History(ctx context.Context, limit int) ([]domain.TaskResult, error)
}
