package domain

import "time"

// SyncMode identifies who triggered a synchronisation.
type SyncMode string

// Available sync modes.
const (
	// SyncModeManual is a user-initiated sync. Errors are surfaced to the caller
	// and the watermark is refreshed even when nothing changed.
	SyncModeManual SyncMode = "manual"

	// SyncModeAuto is a scheduled sync. Errors are only logged.
	SyncModeAuto SyncMode = "auto"
)

// IsValid returns true if the mode is recognised.
func (m SyncMode) IsValid() bool {
	return m == SyncModeManual || m == SyncModeAuto
}

// String returns the string representation.
func (m SyncMode) String() string {
	return string(m)
}

// DefaultActor returns the actor recorded for a run with no explicit actor.
func (m SyncMode) DefaultActor() string {
	if m == SyncModeManual {
		return "Admin"
	}
	return SystemActor
}

// SyncSession is the transient state of the customer synchronisation.
// It lives in memory only and is read through snapshot copies.
type SyncSession struct {
	// InProgress is the session guard.
	InProgress bool

	// Mode is the mode of the running (or last) session.
	Mode SyncMode

	// ProcessedCount is the running total of records written in the current session.
	ProcessedCount int

	// LastError is the last classified error, cleared at session start.
	LastError *SyncError

	// StartedAt is when the current (or last) session started.
	StartedAt time.Time

	// FinishedAt is when the last session finished. Zero while the first session runs.
	FinishedAt time.Time

	// LastSuccess is when a session last completed without error.
	LastSuccess time.Time
}

// SyncResult is the outcome of one RunSync call.
type SyncResult struct {
	// Mode is the requested mode.
	Mode SyncMode

	// Processed is the number of customer records upserted.
	Processed int

	// Pages is the number of pages fetched.
	Pages int

	// Skipped is true when the call was ignored because a session was in progress.
	Skipped bool

	// WatermarkAdvanced reports whether the watermark was written.
	WatermarkAdvanced bool

	// Watermark is the new watermark when WatermarkAdvanced is true.
	Watermark time.Time

	// StartedAt is when the run started.
	StartedAt time.Time

	// FinishedAt is when the run finished.
	FinishedAt time.Time

	// Err is the classified failure, if any.
	Err *SyncError
}

// Succeeded returns true if the run completed without error and was not skipped.
func (r *SyncResult) Succeeded() bool {
	return !r.Skipped && r.Err == nil
}

// Duration returns how long the run took.
func (r *SyncResult) Duration() time.Duration {
	if r.FinishedAt.IsZero() {
		return 0
	}
	return r.FinishedAt.Sub(r.StartedAt)
}
