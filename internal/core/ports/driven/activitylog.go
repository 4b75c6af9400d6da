package driven

import (
	"context"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

// ActivityLog is the sink for activity log entries.
type ActivityLog interface {
	// Append records an entry. ID and Timestamp are filled in when empty.
	Append(ctx context.Context, entry *domain.LogEntry) error

	// List returns entries newest first.
	// The module filter follows domain.LogEntry.MatchesModule.
	// A limit of 0 means no limit.
	List(ctx context.Context, module string, limit int) ([]domain.LogEntry, error)
}
