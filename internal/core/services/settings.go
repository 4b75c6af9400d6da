package services

import (
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
//
//nolint:gosec // G101: These are config key names, not actual credentials.
const (
	keySyncInterval    = "sync.interval"
	keySyncSchedule    = "sync.schedule"
	keySyncHistory     = "sync.history_limit"
	keyStorageBackend  = "storage.backend"
	keyStorageDataDir  = "storage.data_dir"
	keyStoragePostgres = "storage.postgres_url"
	keyServerAddr      = "server.addr"
	keyServerAPIKey    = "server.api_key"
)

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
	overrides   []driven.SettingsOverride
}

// NewSettingsService creates a new settings service.
// Overrides are applied in order on every Get.
func NewSettingsService(configStore driven.ConfigStore, overrides ...driven.SettingsOverride) *SettingsService {
	return &SettingsService{
		configStore: configStore,
		overrides:   overrides,
	}
}

// Get retrieves current application settings.
// Missing or unusable values fall back to defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Sync: domain.SyncSettings{
			Interval:     s.getDuration(keySyncInterval, defaults.Sync.Interval),
			Schedule:     s.configStore.GetString(keySyncSchedule),
			HistoryLimit: s.getPositiveInt(keySyncHistory, defaults.Sync.HistoryLimit),
		},
		Storage: domain.StorageSettings{
			Backend:     s.getBackend(defaults.Storage.Backend),
			DataDir:     s.configStore.GetString(keyStorageDataDir),
			PostgresURL: s.configStore.GetString(keyStoragePostgres),
		},
		Server: domain.ServerSettings{
			Addr:   s.getString(keyServerAddr, defaults.Server.Addr),
			APIKey: s.configStore.GetString(keyServerAPIKey),
		},
	}

	for _, o := range s.overrides {
		if err := o.Apply(settings); err != nil {
			return nil, fmt.Errorf("apply settings override: %w", err)
		}
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if settings == nil {
		return domain.ErrInvalidInput
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	values := []struct {
		key   string
		value any
	}{
		{keySyncInterval, settings.Sync.Interval.String()},
		{keySyncSchedule, settings.Sync.Schedule},
		{keySyncHistory, settings.Sync.HistoryLimit},
		{keyStorageBackend, settings.Storage.Backend.String()},
		{keyStorageDataDir, settings.Storage.DataDir},
		{keyStoragePostgres, settings.Storage.PostgresURL},
		{keyServerAddr, settings.Server.Addr},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}

	// An empty key is not written so a stored key is never erased by accident.
	if settings.Server.APIKey != "" {
		if err := s.configStore.Set(keyServerAPIKey, settings.Server.APIKey); err != nil {
			return fmt.Errorf("save %s: %w", keyServerAPIKey, err)
		}
	}

	return nil
}

// SetSyncInterval updates the automatic sync interval ("5m", "1h").
func (s *SettingsService) SetSyncInterval(interval string) error {
	d, err := time.ParseDuration(interval)
	if err != nil {
		return fmt.Errorf("%w: sync interval %q: %v", domain.ErrInvalidInput, interval, err)
	}
	if d <= 0 {
		return fmt.Errorf("%w: sync interval must be positive", domain.ErrInvalidInput)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Sync.Interval = d
	return s.Save(settings)
}

// SetSyncSchedule updates the cron schedule. An empty schedule restores the interval.
func (s *SettingsService) SetSyncSchedule(schedule string) error {
	if schedule != "" {
		if _, err := cron.ParseStandard(schedule); err != nil {
			return fmt.Errorf("%w: sync schedule %q: %v", domain.ErrInvalidInput, schedule, err)
		}
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Sync.Schedule = schedule
	return s.Save(settings)
}

// SetStorageBackend selects the customer store.
func (s *SettingsService) SetStorageBackend(backend domain.StorageBackend) error {
	if !backend.IsValid() {
		return fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, backend)
	}

	settings, err := s.Get()
	if err != nil {
		return err
	}
	settings.Storage.Backend = backend
	return s.Save(settings)
}

// GetDefaults returns default settings.
func (s *SettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

// GetSchedulerConfig returns the scheduler configuration derived from settings.
func (s *SettingsService) GetSchedulerConfig() domain.SchedulerConfig {
	cfg := domain.DefaultSchedulerConfig()
	settings, err := s.Get()
	if err != nil {
		return cfg
	}
	cfg.Interval = settings.Sync.Interval
	cfg.Schedule = settings.Sync.Schedule
	cfg.HistoryLimit = settings.Sync.HistoryLimit
	return cfg
}

// Helper methods for reading config with defaults.

func (s *SettingsService) getString(key, defaultVal string) string {
	val := s.configStore.GetString(key)
	if val == "" {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getDuration(key string, defaultVal time.Duration) time.Duration {
	val := s.configStore.GetDuration(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getPositiveInt(key string, defaultVal int) int {
	val := s.configStore.GetInt(key)
	if val <= 0 {
		return defaultVal
	}
	return val
}

func (s *SettingsService) getBackend(defaultVal domain.StorageBackend) domain.StorageBackend {
	val := s.configStore.GetString(keyStorageBackend)
	if val == "" {
		return defaultVal
	}
	backend := domain.StorageBackend(val)
	if !backend.IsValid() {
		return defaultVal
	}
	return backend
}
