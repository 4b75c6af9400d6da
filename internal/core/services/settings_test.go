package services

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmachaddo/egg-back-home-wms/internal/adapters/driven/storage/memory"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

// overrideFunc adapts a function to driven.SettingsOverride.
type overrideFunc func(*domain.AppSettings) error

func (f overrideFunc) Apply(s *domain.AppSettings) error { return f(s) }

func TestSettingsService_Get_ReturnsDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	settings, err := service.Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults, *settings)
	assert.Equal(t, 5*time.Minute, settings.Sync.Interval)
	assert.Equal(t, 100, settings.Sync.HistoryLimit)
	assert.Equal(t, domain.StorageSQLite, settings.Storage.Backend)
}

func TestSettingsService_Get_ReturnsStoredValues(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("sync.interval", "10m")
	_ = store.Set("sync.schedule", "*/15 * * * *")
	_ = store.Set("sync.history_limit", 20)
	_ = store.Set("storage.backend", "postgres")
	_ = store.Set("storage.postgres_url", "postgres://localhost/eggwms")
	_ = store.Set("server.addr", "127.0.0.1:9000")

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	assert.Equal(t, 10*time.Minute, settings.Sync.Interval)
	assert.Equal(t, "*/15 * * * *", settings.Sync.Schedule)
	assert.Equal(t, 20, settings.Sync.HistoryLimit)
	assert.Equal(t, domain.StoragePostgres, settings.Storage.Backend)
	assert.Equal(t, "postgres://localhost/eggwms", settings.Storage.PostgresURL)
	assert.Equal(t, "127.0.0.1:9000", settings.Server.Addr)
}

func TestSettingsService_Get_InvalidValuesReturnDefaults(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("sync.interval", "soon")
	_ = store.Set("sync.history_limit", -5)
	_ = store.Set("storage.backend", "mongodb")

	settings, err := NewSettingsService(store).Get()
	require.NoError(t, err)

	defaults := domain.DefaultAppSettings()
	assert.Equal(t, defaults.Sync.Interval, settings.Sync.Interval)
	assert.Equal(t, defaults.Sync.HistoryLimit, settings.Sync.HistoryLimit)
	assert.Equal(t, defaults.Storage.Backend, settings.Storage.Backend)
}

func TestSettingsService_Get_AppliesOverrides(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("server.addr", ":8080")

	service := NewSettingsService(store,
		overrideFunc(func(s *domain.AppSettings) error {
			s.Server.Addr = ":9999"
			return nil
		}),
		overrideFunc(func(s *domain.AppSettings) error {
			s.Server.APIKey = "from-env"
			return nil
		}),
	)

	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, ":9999", settings.Server.Addr)
	assert.Equal(t, "from-env", settings.Server.APIKey)

	assert.Equal(t, ":8080", store.GetString("server.addr"), "overrides are not persisted")
}

func TestSettingsService_Get_OverrideError(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore(),
		overrideFunc(func(*domain.AppSettings) error { return errors.New("bad env") }))

	_, err := service.Get()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad env")
}

func TestSettingsService_Save(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	settings.Sync.Interval = 2 * time.Minute
	settings.Storage.Backend = domain.StorageMemory
	settings.Server.APIKey = "secret"

	require.NoError(t, service.Save(&settings))
	assert.Equal(t, "2m0s", store.GetString("sync.interval"))
	assert.Equal(t, "memory", store.GetString("storage.backend"))
	assert.Equal(t, "secret", store.GetString("server.api_key"))

	got, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, settings, *got)
}

func TestSettingsService_Save_KeepsAPIKeyWhenEmpty(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("server.api_key", "keep-me")
	service := NewSettingsService(store)

	settings := domain.DefaultAppSettings()
	require.NoError(t, service.Save(&settings))
	assert.Equal(t, "keep-me", store.GetString("server.api_key"))
}

func TestSettingsService_Save_Validates(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	assert.ErrorIs(t, service.Save(nil), domain.ErrInvalidInput)

	settings := domain.DefaultAppSettings()
	settings.Storage.Backend = domain.StoragePostgres
	assert.ErrorIs(t, service.Save(&settings), domain.ErrInvalidInput)
}

func TestSettingsService_SetSyncInterval(t *testing.T) {
	store := memory.NewConfigStore()
	service := NewSettingsService(store)

	require.NoError(t, service.SetSyncInterval("15m"))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, settings.Sync.Interval)

	assert.ErrorIs(t, service.SetSyncInterval("fast"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetSyncInterval("-1m"), domain.ErrInvalidInput)
	assert.ErrorIs(t, service.SetSyncInterval("0s"), domain.ErrInvalidInput)
}

func TestSettingsService_SetSyncSchedule(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetSyncSchedule("0 * * * *"))
	cfg := service.GetSchedulerConfig()
	assert.Equal(t, "0 * * * *", cfg.Schedule)

	assert.ErrorIs(t, service.SetSyncSchedule("whenever"), domain.ErrInvalidInput)

	require.NoError(t, service.SetSyncSchedule(""))
	assert.Empty(t, service.GetSchedulerConfig().Schedule)
}

func TestSettingsService_SetStorageBackend(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())

	require.NoError(t, service.SetStorageBackend(domain.StorageMemory))
	settings, err := service.Get()
	require.NoError(t, err)
	assert.Equal(t, domain.StorageMemory, settings.Storage.Backend)

	assert.ErrorIs(t, service.SetStorageBackend("mongodb"), domain.ErrInvalidInput)
	// postgres without a URL cannot be selected
	assert.ErrorIs(t, service.SetStorageBackend(domain.StoragePostgres), domain.ErrInvalidInput)
}

func TestSettingsService_GetSchedulerConfig(t *testing.T) {
	store := memory.NewConfigStore()
	_ = store.Set("sync.interval", "30m")

	cfg := NewSettingsService(store).GetSchedulerConfig()
	assert.Equal(t, 30*time.Minute, cfg.Interval)
	assert.True(t, cfg.RunOnStart)
	assert.Equal(t, domain.DefaultSchedulerConfig().HistoryLimit, cfg.HistoryLimit)
}

func TestSettingsService_GetDefaults(t *testing.T) {
	service := NewSettingsService(memory.NewConfigStore())
	assert.Equal(t, domain.DefaultAppSettings(), service.GetDefaults())
}
