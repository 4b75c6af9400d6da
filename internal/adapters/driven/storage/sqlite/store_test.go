package sqlite

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)

	t.Cleanup(func() {
		assert.NoError(t, store.Close())
	})

	return store
}

func TestNewStore_MigratesOnce(t *testing.T) {
	dir := t.TempDir()

	store, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.CustomerStore().UpsertBatch(context.Background(), []domain.Customer{{ExternalCode: "1", Name: "Ana"}}))
	require.NoError(t, store.Close())

	reopened, err := NewStore(dir)
	require.NoError(t, err)
	defer reopened.Close()

	var version int
	require.NoError(t, reopened.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)

	count, err := reopened.CustomerStore().Count(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStore_Path(t *testing.T) {
	store := setupTestStore(t)
	assert.Contains(t, store.Path(), "eggwms.db")
}

func TestCustomerStore_UpsertBatch_Idempotent(t *testing.T) {
	store := setupTestStore(t).CustomerStore()
	ctx := context.Background()
	first := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)
	second := first.Add(90 * time.Minute)

	require.NoError(t, store.UpsertBatch(ctx, []domain.Customer{
		{ExternalCode: "207119551", Name: "Ana", Email: "ana@example.com", Active: true, UpdatedAt: first},
	}))
	original, err := store.GetByExternalCode(ctx, "207119551")
	require.NoError(t, err)

	require.NoError(t, store.UpsertBatch(ctx, []domain.Customer{
		{ExternalCode: "207119551", Name: "Ana Silva", Email: "ana@example.com", City: "Lisboa", Active: true, UpdatedAt: second},
	}))

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	updated, err := store.GetByExternalCode(ctx, "207119551")
	require.NoError(t, err)
	assert.Equal(t, original.ID, updated.ID)
	assert.Equal(t, "Ana Silva", updated.Name)
	assert.Equal(t, "Lisboa", updated.City)
	assert.True(t, updated.Active)
	assert.True(t, second.Equal(updated.UpdatedAt))
}

func TestCustomerStore_UpsertBatch_AtomicOnFailure(t *testing.T) {
	store := setupTestStore(t).CustomerStore()
	ctx := context.Background()

	err := store.UpsertBatch(ctx, []domain.Customer{
		{ExternalCode: "1", Name: "Ana"},
		{ExternalCode: "", Name: "Broken"},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestCustomerStore_UpsertBatch_Empty(t *testing.T) {
	store := setupTestStore(t).CustomerStore()
	assert.NoError(t, store.UpsertBatch(context.Background(), nil))
}

func TestCustomerStore_List_OrderedByName(t *testing.T) {
	store := setupTestStore(t).CustomerStore()
	ctx := context.Background()

	require.NoError(t, store.UpsertBatch(ctx, []domain.Customer{
		{ExternalCode: "3", Name: "Carla"},
		{ExternalCode: "2", Name: "Ana"},
		{ExternalCode: "1", Name: "Ana"},
		{ExternalCode: "4", Name: "Bruno"},
	}))

	list, err := store.List(ctx)
	require.NoError(t, err)

	codes := make([]string, len(list))
	for i, c := range list {
		codes[i] = c.ExternalCode
	}
	assert.Equal(t, []string{"1", "2", "4", "3"}, codes)
}

func TestCustomerStore_GetByExternalCode_NotFound(t *testing.T) {
	store := setupTestStore(t).CustomerStore()
	_, err := store.GetByExternalCode(context.Background(), "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestCustomerStore_ContextCancelled(t *testing.T) {
	store := setupTestStore(t).CustomerStore()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := store.UpsertBatch(ctx, []domain.Customer{{ExternalCode: "1"}})
	assert.Error(t, err)
}

func TestWatermarkStore(t *testing.T) {
	store := setupTestStore(t).WatermarkStore()
	ctx := context.Background()

	_, err := store.Get(ctx, domain.EntityCustomers)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	t0 := time.Date(2026, 4, 2, 9, 30, 15, 123456789, time.UTC)
	require.NoError(t, store.Set(ctx, domain.SyncWatermark{EntityType: domain.EntityCustomers, LastSyncedAt: t0}))

	wm, err := store.Get(ctx, domain.EntityCustomers)
	require.NoError(t, err)
	assert.True(t, t0.Equal(wm.LastSyncedAt))

	t1 := t0.Add(5 * time.Minute)
	require.NoError(t, store.Set(ctx, domain.SyncWatermark{EntityType: domain.EntityCustomers, LastSyncedAt: t1}))

	wm, err = store.Get(ctx, domain.EntityCustomers)
	require.NoError(t, err)
	assert.True(t, t1.Equal(wm.LastSyncedAt))
}

func TestSourceConfigStore(t *testing.T) {
	store := setupTestStore(t).SourceConfigStore()
	ctx := context.Background()

	_, err := store.Get(ctx)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	now := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)
	require.NoError(t, store.Save(ctx, domain.SourceConfig{BaseURL: "shop.example.com", AccessToken: "tok", Connected: true, UpdatedAt: now}))
	require.NoError(t, store.Save(ctx, domain.SourceConfig{BaseURL: "shop.example.com", AccessToken: "tok", Connected: false, UpdatedAt: now}))

	cfg, err := store.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, "shop.example.com", cfg.BaseURL)
	assert.False(t, cfg.Connected)
	assert.True(t, now.Equal(cfg.UpdatedAt))
}

func TestActivityLog(t *testing.T) {
	log := setupTestStore(t).ActivityLog()
	ctx := context.Background()
	base := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	modules := []string{domain.ModuleMasterData, domain.ModuleIntegrations, domain.ModuleUsers, domain.ModuleMasterData}
	for i, m := range modules {
		require.NoError(t, log.Append(ctx, &domain.LogEntry{
			Action: "a", Module: m, User: "Admin", Timestamp: base.Add(time.Duration(i) * time.Second),
		}))
	}

	all, err := log.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.True(t, base.Add(3*time.Second).Equal(all[0].Timestamp))
	assert.NotEmpty(t, all[0].ID)

	settings, err := log.List(ctx, domain.ModuleSettings, 0)
	require.NoError(t, err)
	assert.Len(t, settings, 2)

	limited, err := log.List(ctx, domain.ModuleMasterData, 1)
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	assert.ErrorIs(t, log.Append(ctx, nil), domain.ErrInvalidInput)
}

func TestSchedulerStore_Tasks(t *testing.T) {
	store := setupTestStore(t).SchedulerStore()
	ctx := context.Background()

	task, err := store.GetTask(ctx, domain.TaskIDCustomerSync)
	require.NoError(t, err)
	assert.Nil(t, task)

	next := time.Date(2026, 4, 2, 9, 5, 0, 0, time.UTC)
	require.NoError(t, store.SaveTask(ctx, &domain.ScheduledTask{
		ID: domain.TaskIDCustomerSync, Name: "Customer Sync", Interval: 5 * time.Minute,
		NextRun: next, LastError: "network", Enabled: true,
	}))

	task, err = store.GetTask(ctx, domain.TaskIDCustomerSync)
	require.NoError(t, err)
	require.NotNil(t, task)
	assert.Equal(t, 5*time.Minute, task.Interval)
	assert.True(t, next.Equal(task.NextRun))
	assert.Equal(t, "network", task.LastError)
	assert.True(t, task.LastRun.IsZero())
	assert.True(t, task.Enabled)

	assert.ErrorIs(t, store.SaveTask(ctx, nil), domain.ErrInvalidInput)
}

func TestSchedulerStore_HistoryAndPrune(t *testing.T) {
	store := setupTestStore(t).SchedulerStore()
	ctx := context.Background()
	base := time.Date(2026, 4, 2, 9, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		require.NoError(t, store.RecordResult(ctx, &domain.TaskResult{
			TaskID:         domain.TaskIDCustomerSync,
			Mode:           domain.SyncModeAuto,
			StartedAt:      base.Add(time.Duration(i) * time.Minute),
			EndedAt:        base.Add(time.Duration(i)*time.Minute + time.Second),
			Success:        i%2 == 0,
			ItemsProcessed: i,
		}))
	}

	history, err := store.GetTaskHistory(ctx, domain.TaskIDCustomerSync, 2)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, 4, history[0].ItemsProcessed)
	assert.Equal(t, domain.SyncModeAuto, history[0].Mode)

	require.NoError(t, store.PruneHistory(ctx, 3))

	history, err = store.GetTaskHistory(ctx, domain.TaskIDCustomerSync, 0)
	require.NoError(t, err)
	require.Len(t, history, 3)
	assert.Equal(t, 2, history[2].ItemsProcessed)
}

func TestParseNullableTime(t *testing.T) {
	assert.True(t, parseNullableTime(sql.NullString{}).IsZero())
	assert.True(t, parseNullableTime(sql.NullString{Valid: true, String: "garbage"}).IsZero())

	ts := time.Date(2026, 1, 1, 0, 0, 0, 5, time.UTC)
	assert.True(t, ts.Equal(parseNullableTime(sql.NullString{Valid: true, String: formatTime(ts)})))
}
