package domain

import (
	"fmt"
	"time"
)

const unknownDescription = "Unknown"

// StorageBackend selects the customer store implementation.
type StorageBackend string

// Available storage backends.
const (
	// StorageSQLite is an embedded database file under the data directory.
	StorageSQLite StorageBackend = "sqlite"

	// StoragePostgres is a PostgreSQL server.
	StoragePostgres StorageBackend = "postgres"

	// StorageMemory keeps everything in process memory. Useful for demos and tests.
	StorageMemory StorageBackend = "memory"
)

// IsValid returns true if the backend is recognised.
func (b StorageBackend) IsValid() bool {
	switch b {
	case StorageSQLite, StoragePostgres, StorageMemory:
		return true
	default:
		return false
	}
}

// String returns the string representation.
func (b StorageBackend) String() string {
	return string(b)
}

// Description returns a human-readable description of the backend.
func (b StorageBackend) Description() string {
	switch b {
	case StorageSQLite:
		return "SQLite (local file)"
	case StoragePostgres:
		return "PostgreSQL (server)"
	case StorageMemory:
		return "Memory (not persisted)"
	default:
		return unknownDescription
	}
}

// MaxPageLimit is the largest page size the e-commerce source accepts.
const MaxPageLimit = 250

// SyncSettings holds synchronisation behaviour.
type SyncSettings struct {
	// Interval between automatic syncs.
	Interval time.Duration

	// Schedule is an optional cron expression replacing Interval.
	Schedule string

	// HistoryLimit is how many sync run results are kept.
	HistoryLimit int
}

// StorageSettings holds store configuration.
type StorageSettings struct {
	// Backend selects the store.
	Backend StorageBackend

	// DataDir holds the SQLite database file.
	DataDir string

	// PostgresURL is the connection string for the postgres backend.
	PostgresURL string
}

// ServerSettings holds the HTTP API configuration.
type ServerSettings struct {
	// Addr is the listen address.
	Addr string

	// APIKey, when set, is required in the X-API-Key header.
	APIKey string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Sync    SyncSettings
	Storage StorageSettings
	Server  ServerSettings
}

// DefaultAppSettings returns settings with sensible defaults.
// DataDir is left empty; callers resolve it to ~/.eggwms.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Sync: SyncSettings{
			Interval:     DefaultSyncInterval,
			HistoryLimit: DefaultSchedulerConfig().HistoryLimit,
		},
		Storage: StorageSettings{
			Backend: StorageSQLite,
		},
		Server: ServerSettings{
			Addr: ":8080",
		},
	}
}

// Validate checks the settings for values that cannot work.
func (s *AppSettings) Validate() error {
	if s.Sync.Interval <= 0 && s.Sync.Schedule == "" {
		return fmt.Errorf("%w: sync.interval must be positive", ErrInvalidInput)
	}
	if s.Sync.HistoryLimit < 1 {
		return fmt.Errorf("%w: sync.history_limit must be positive", ErrInvalidInput)
	}
	if !s.Storage.Backend.IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", ErrInvalidInput, s.Storage.Backend)
	}
	if s.Storage.Backend == StoragePostgres && s.Storage.PostgresURL == "" {
		return fmt.Errorf("%w: storage.postgres_url is required for the postgres backend", ErrInvalidInput)
	}
	return nil
}
