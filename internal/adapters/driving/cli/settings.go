package cli

import (
	"errors"
	"fmt"
	"net/url"

	"github.com/spf13/cobra"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage application settings",
	Long: `View and change synchronisation and storage settings.

Settings are stored in ~/.eggwms/config.toml. EGGWMS_* environment
variables override them for a single run.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current settings",
	Args:  cobra.NoArgs,
	RunE:  runSettingsShow,
}

var settingsIntervalCmd = &cobra.Command{
	Use:   "interval <duration>",
	Short: "Set the automatic sync interval (e.g. 5m, 1h)",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		if err := settingsService.SetSyncInterval(args[0]); err != nil {
			return err
		}
		cmd.Printf("Sync interval set to %s.\n", args[0])
		return nil
	},
}

var settingsScheduleCmd = &cobra.Command{
	Use:   "schedule <cron-expression>",
	Short: "Set a cron schedule for automatic syncs",
	Long: `Sets a standard five-field cron expression (or a descriptor such as
@hourly) that replaces the interval. An empty string restores the interval.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		if err := settingsService.SetSyncSchedule(args[0]); err != nil {
			return err
		}
		if args[0] == "" {
			cmd.Println("Sync schedule cleared; the interval applies.")
		} else {
			cmd.Printf("Sync schedule set to %q.\n", args[0])
		}
		return nil
	},
}

var settingsBackendCmd = &cobra.Command{
	Use:   "backend <sqlite|postgres|memory>",
	Short: "Select the customer store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if settingsService == nil {
			return errors.New("settings service not configured")
		}
		backend := domain.StorageBackend(args[0])
		if err := settingsService.SetStorageBackend(backend); err != nil {
			return err
		}
		cmd.Printf("Storage backend set to %s. Restart eggwms to apply.\n", backend.Description())
		return nil
	},
}

func init() {
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsIntervalCmd)
	settingsCmd.AddCommand(settingsScheduleCmd)
	settingsCmd.AddCommand(settingsBackendCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	if settingsService == nil {
		return errors.New("settings service not configured")
	}

	settings, err := settingsService.Get()
	if err != nil {
		return fmt.Errorf("failed to get settings: %w", err)
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	cmd.Println("[Sync]")
	if settings.Sync.Schedule != "" {
		cmd.Printf("  Schedule: %s\n", settings.Sync.Schedule)
	} else {
		cmd.Printf("  Interval: %s\n", settings.Sync.Interval)
	}
	cmd.Printf("  History limit: %d\n", settings.Sync.HistoryLimit)
	cmd.Println()

	cmd.Println("[Storage]")
	cmd.Printf("  Backend: %s\n", settings.Storage.Backend.Description())
	switch settings.Storage.Backend {
	case domain.StorageSQLite:
		cmd.Printf("  Data dir: %s\n", orNotSet(settings.Storage.DataDir))
	case domain.StoragePostgres:
		cmd.Printf("  URL: %s\n", maskConnString(settings.Storage.PostgresURL))
	}
	cmd.Println()

	cmd.Println("[Server]")
	cmd.Printf("  Address: %s\n", settings.Server.Addr)
	if settings.Server.APIKey != "" {
		cmd.Printf("  API Key: %s\n", maskAPIKey(settings.Server.APIKey))
	} else {
		cmd.Printf("  API Key: (not set)\n")
	}
	return nil
}

func maskAPIKey(key string) string {
	if len(key) <= 8 {
		return "****"
	}
	return key[:4] + "..." + key[len(key)-4:]
}

// maskConnString hides the password in a postgres URL.
func maskConnString(conn string) string {
	if conn == "" {
		return orNotSet(conn)
	}
	u, err := url.Parse(conn)
	if err != nil {
		return "(invalid URL)"
	}
	return u.Redacted()
}
