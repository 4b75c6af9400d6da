package main

import (
	"context"
	"fmt"

	"github.com/jmachaddo/egg-back-home-wms/internal/adapters/driven/storage/memory"
	"github.com/jmachaddo/egg-back-home-wms/internal/adapters/driven/storage/postgres"
	"github.com/jmachaddo/egg-back-home-wms/internal/adapters/driven/storage/sqlite"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driven"
)

// stores are the driven stores of the selected backend.
type stores struct {
	customers    driven.CustomerStore
	watermarks   driven.WatermarkStore
	sourceConfig driven.SourceConfigStore
	activity     driven.ActivityLog
	scheduler    driven.SchedulerStore
	close        func() error
}

// openStores opens the backend named in settings.
func openStores(ctx context.Context, cfg domain.StorageSettings) (*stores, error) {
	switch cfg.Backend {
	case domain.StorageSQLite:
		store, err := sqlite.NewStore(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite store: %w", err)
		}
		return &stores{
			customers:    store.CustomerStore(),
			watermarks:   store.WatermarkStore(),
			sourceConfig: store.SourceConfigStore(),
			activity:     store.ActivityLog(),
			scheduler:    store.SchedulerStore(),
			close:        store.Close,
		}, nil

	case domain.StoragePostgres:
		store, err := postgres.NewStore(ctx, cfg.PostgresURL)
		if err != nil {
			return nil, fmt.Errorf("failed to open postgres store: %w", err)
		}
		return &stores{
			customers:    store.CustomerStore(),
			watermarks:   store.WatermarkStore(),
			sourceConfig: store.SourceConfigStore(),
			activity:     store.ActivityLog(),
			scheduler:    store.SchedulerStore(),
			close:        store.Close,
		}, nil

	case domain.StorageMemory:
		return &stores{
			customers:    memory.NewCustomerStore(),
			watermarks:   memory.NewWatermarkStore(),
			sourceConfig: memory.NewSourceConfigStore(),
			activity:     memory.NewActivityLog(),
			scheduler:    memory.NewSchedulerStore(),
			close:        func() error { return nil },
		}, nil

	default:
		return nil, fmt.Errorf("%w: unknown storage backend %q", domain.ErrInvalidInput, cfg.Backend)
	}
}
