package driving

import "github.com/jmachaddo/egg-back-home-wms/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings merged over defaults.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// SetSyncInterval updates the automatic sync interval.
	SetSyncInterval(interval string) error

	// SetSyncSchedule updates the cron schedule. An empty schedule restores the interval.
	SetSyncSchedule(schedule string) error

	// SetStorageBackend selects the customer store.
	SetStorageBackend(backend domain.StorageBackend) error

	// GetDefaults returns default settings.
	GetDefaults() domain.AppSettings
}
