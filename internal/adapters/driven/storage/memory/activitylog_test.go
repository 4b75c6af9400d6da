package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

func TestActivityLog_AppendFillsDefaults(t *testing.T) {
	log := NewActivityLog()

	entry := &domain.LogEntry{Action: "Sync (manual)", Module: domain.ModuleMasterData}
	require.NoError(t, log.Append(context.Background(), entry))

	assert.NotEmpty(t, entry.ID)
	assert.False(t, entry.Timestamp.IsZero())
	assert.ErrorIs(t, log.Append(context.Background(), nil), domain.ErrInvalidInput)
}

func TestActivityLog_ListNewestFirstWithFilter(t *testing.T) {
	log := NewActivityLog()
	ctx := context.Background()
	base := time.Date(2026, 5, 1, 8, 0, 0, 0, time.UTC)

	for i, module := range []string{domain.ModuleMasterData, domain.ModuleIntegrations, domain.ModuleUsers, domain.ModuleMasterData} {
		require.NoError(t, log.Append(ctx, &domain.LogEntry{Module: module, Timestamp: base.Add(time.Duration(i) * time.Minute)}))
	}

	all, err := log.List(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.True(t, all[0].Timestamp.After(all[3].Timestamp))

	settings, err := log.List(ctx, domain.ModuleSettings, 0)
	require.NoError(t, err)
	assert.Len(t, settings, 2)

	master, err := log.List(ctx, domain.ModuleMasterData, 1)
	require.NoError(t, err)
	require.Len(t, master, 1)
	assert.Equal(t, base.Add(3*time.Minute), master[0].Timestamp)
}
