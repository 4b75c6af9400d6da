package domain

import "time"

// SyncWatermark marks the point up to which synchronisation of an entity type is complete.
// It is created on the first successful sync and overwritten, never merged.
type SyncWatermark struct {
	// EntityType is the key, e.g. EntityCustomers.
	EntityType string

	// LastSyncedAt is the start time of the last completed sync.
	LastSyncedAt time.Time
}
