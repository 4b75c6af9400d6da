package memory

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

func TestWatermarkStore_GetMissing(t *testing.T) {
	_, err := NewWatermarkStore().Get(context.Background(), domain.EntityCustomers)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestWatermarkStore_SetOverwrites(t *testing.T) {
	store := NewWatermarkStore()
	ctx := context.Background()
	t0 := time.Date(2026, 2, 1, 12, 0, 0, 0, time.UTC)
	t1 := t0.Add(-time.Hour)

	require.NoError(t, store.Set(ctx, domain.SyncWatermark{EntityType: domain.EntityCustomers, LastSyncedAt: t0}))
	require.NoError(t, store.Set(ctx, domain.SyncWatermark{EntityType: domain.EntityCustomers, LastSyncedAt: t1}))

	wm, err := store.Get(ctx, domain.EntityCustomers)
	require.NoError(t, err)
	assert.Equal(t, t1, wm.LastSyncedAt)

	_, err = store.Get(ctx, "orders")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
