package domain

import "time"

// ScheduledTask represents a recurring background task.
type ScheduledTask struct {
	// ID is the unique identifier for the task.
	ID string

	// Name is a human-readable name for the task.
	Name string

	// Interval defines how often the task should run.
	Interval time.Duration

	// LastRun is when the task last ran.
	LastRun time.Time

	// NextRun is when the task should run next.
	NextRun time.Time

	// LastError contains the last error message, if any.
	LastError string

	// LastSuccess is when the task last completed successfully.
	LastSuccess time.Time

	// Enabled indicates whether the task is active.
	Enabled bool
}

// TaskResult represents the outcome of a task execution.
type TaskResult struct {
	// TaskID identifies which task was run.
	TaskID string

	// Mode is the sync mode of the run.
	Mode SyncMode

	// StartedAt is when the task started.
	StartedAt time.Time

	// EndedAt is when the task completed.
	EndedAt time.Time

	// Success indicates whether the task completed without error.
	Success bool

	// Error contains the error message if Success is false.
	Error string

	// ItemsProcessed is the number of customers synchronised.
	ItemsProcessed int
}

// SchedulerConfig holds scheduler configuration.
type SchedulerConfig struct {
	// Interval between automatic syncs.
	Interval time.Duration

	// Schedule is an optional cron expression that replaces Interval.
	Schedule string

	// RunOnStart triggers an automatic sync as soon as the scheduler starts.
	RunOnStart bool

	// HistoryLimit is how many task results are kept.
	HistoryLimit int
}

// DefaultSyncInterval is the time between automatic customer syncs.
const DefaultSyncInterval = 5 * time.Minute

// DefaultSchedulerConfig returns sensible defaults for the scheduler.
func DefaultSchedulerConfig() SchedulerConfig {
	return SchedulerConfig{
		Interval:     DefaultSyncInterval,
		RunOnStart:   true,
		HistoryLimit: 100,
	}
}

// Task IDs for built-in tasks.
const (
	TaskIDCustomerSync = "customer-sync"
)
