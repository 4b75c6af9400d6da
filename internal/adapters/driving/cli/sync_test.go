package cli

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

func TestSyncCmd_Use(t *testing.T) {
	assert.Equal(t, "sync", syncCmd.Use)
	assert.Equal(t, "Synchronise customers from the online store", syncCmd.Short)
}

func TestSyncCmd_Success(t *testing.T) {
	ts := setupServices(t)
	start := time.Now()
	ts.scheduler.result = &domain.SyncResult{
		Mode: domain.SyncModeManual, Processed: 230, Pages: 2,
		StartedAt: start, FinishedAt: start.Add(1500 * time.Millisecond),
	}

	out, err := execute(t, "sync", "--user", "maria")

	require.NoError(t, err)
	assert.Contains(t, out, "Synchronising customers...")
	assert.Contains(t, out, "Synchronised 230 customers (2 pages) in 1.5s.")
	assert.Equal(t, "maria", ts.scheduler.triggerActor)
}

func TestSyncCmd_Skipped(t *testing.T) {
	ts := setupServices(t)
	ts.scheduler.result = &domain.SyncResult{Mode: domain.SyncModeManual, Skipped: true}

	out, err := execute(t, "sync")

	require.NoError(t, err)
	assert.Contains(t, out, "already running")
}

func TestSyncCmd_FailureShowsMessage(t *testing.T) {
	ts := setupServices(t)
	syncErr := domain.NewSyncError(domain.KindConfiguration, nil)
	ts.scheduler.result = &domain.SyncResult{Mode: domain.SyncModeManual, Err: syncErr}
	ts.scheduler.err = syncErr

	_, err := execute(t, "sync")

	require.Error(t, err)
	assert.Equal(t, syncErr.Message(), err.Error())
}

func TestSyncCmd_OtherError(t *testing.T) {
	ts := setupServices(t)
	ts.scheduler.err = errors.New("boom")

	_, err := execute(t, "sync")

	assert.EqualError(t, err, "boom")
}

func TestSyncCmd_ShowsProgress(t *testing.T) {
	ts := setupServices(t)
	ts.sync.setSession(domain.SyncSession{InProgress: true, Mode: domain.SyncModeManual, ProcessedCount: 42})
	ts.scheduler.delay = 100 * time.Millisecond
	ts.scheduler.result = &domain.SyncResult{Mode: domain.SyncModeManual, Processed: 42, Pages: 1}

	old := progressInterval
	progressInterval = 5 * time.Millisecond
	defer func() { progressInterval = old }()

	out, err := execute(t, "sync")

	require.NoError(t, err)
	assert.Contains(t, out, "Processing... 42 customers")
}

func TestSyncCmd_ErrorsWithoutServices(t *testing.T) {
	setupServices(t)
	SetServices(Services{})

	_, err := execute(t, "sync")

	assert.EqualError(t, err, "sync service not configured")
}

func TestSyncCmd_RejectsArgs(t *testing.T) {
	setupServices(t)

	_, err := execute(t, "sync", "extra")

	assert.Error(t, err)
}

func TestSyncStatusCmd(t *testing.T) {
	t.Run("never synchronised", func(t *testing.T) {
		setupServices(t)

		out, err := execute(t, "sync", "status")

		require.NoError(t, err)
		assert.Contains(t, out, "Status:       idle")
		assert.Contains(t, out, "Last success: never")
	})

	t.Run("running with previous error", func(t *testing.T) {
		ts := setupServices(t)
		ts.sync.setSession(domain.SyncSession{
			InProgress:     true,
			Mode:           domain.SyncModeAuto,
			ProcessedCount: 7,
			StartedAt:      time.Now(),
			LastError:      domain.NewSyncError(domain.KindNetwork, errors.New("dial tcp")),
		})

		out, err := execute(t, "sync", "status")

		require.NoError(t, err)
		assert.Contains(t, out, "running (auto)")
		assert.Contains(t, out, "Processed:    7")
		assert.Contains(t, out, "Last error:")
	})
}

func TestSyncHistoryCmd(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		setupServices(t)

		out, err := execute(t, "sync", "history")

		require.NoError(t, err)
		assert.Contains(t, out, "No synchronisation runs recorded.")
	})

	t.Run("entries", func(t *testing.T) {
		ts := setupServices(t)
		now := time.Now()
		ts.scheduler.history = []domain.TaskResult{
			{Mode: domain.SyncModeAuto, StartedAt: now, Success: true, ItemsProcessed: 12},
			{Mode: domain.SyncModeManual, StartedAt: now.Add(-time.Hour), Error: "network error: offline"},
		}

		out, err := execute(t, "sync", "history", "-n", "5")

		require.NoError(t, err)
		assert.Equal(t, 5, ts.scheduler.historyLimit)
		assert.Contains(t, out, "12 customers  ok")
		assert.Contains(t, out, "failed: network error: offline")
	})
}

func TestFormatTime(t *testing.T) {
	assert.Equal(t, "never", formatTime(time.Time{}))
	ts := time.Date(2024, 3, 1, 10, 30, 0, 0, time.Local)
	assert.Equal(t, "2024-03-01 10:30:00", formatTime(ts))
}
