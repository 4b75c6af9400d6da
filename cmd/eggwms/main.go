// Command eggwms synchronises the warehouse customer list with the online store.
package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jmachaddo/egg-back-home-wms/internal/adapters/driven/config/env"
	"github.com/jmachaddo/egg-back-home-wms/internal/adapters/driven/config/file"
	"github.com/jmachaddo/egg-back-home-wms/internal/adapters/driving/cli"
	"github.com/jmachaddo/egg-back-home-wms/internal/connectors/storefront"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/services"
	storefrontnorm "github.com/jmachaddo/egg-back-home-wms/internal/normalisers/storefront"
)

// version is set with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	ctx := context.Background()

	cleanup, err := wire(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	err = cli.ExecuteContext(ctx)
	cleanup()
	if err != nil {
		os.Exit(1)
	}
}

// wire builds the services from settings and hands them to the CLI.
func wire(ctx context.Context) (func(), error) {
	configStore, err := file.NewConfigStore("")
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}

	override, err := env.NewOverride()
	if err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	settingsService := services.NewSettingsService(configStore, override)
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}

	if settings.Storage.DataDir == "" {
		settings.Storage.DataDir = filepath.Dir(configStore.Path())
	}

	st, err := openStores(ctx, settings.Storage)
	if err != nil {
		return nil, err
	}

	factory := storefront.NewFactory()

	orch := services.NewSyncOrchestrator(
		st.sourceConfig,
		st.customers,
		st.watermarks,
		factory,
		storefrontnorm.New(),
		st.activity,
	)
	scheduler := services.NewScheduler(settingsService.GetSchedulerConfig(), st.scheduler, orch)

	cli.SetVersion(version)
	cli.SetServices(cli.Services{
		Sync:      orch,
		Scheduler: scheduler,
		Customers: services.NewCustomerService(st.customers),
		Source:    services.NewSourceSettingsService(st.sourceConfig, factory, st.activity),
		Activity:  services.NewActivityLogService(st.activity),
		Settings:  settingsService,
	})
	cli.SetServeConfig(cli.ServeConfig{
		Addr:   settings.Server.Addr,
		APIKey: settings.Server.APIKey,
	})

	return func() {
		if err := st.close(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close store: %v\n", err)
		}
	}, nil
}
