package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driving"
	"github.com/jmachaddo/egg-back-home-wms/internal/logger"
)

// version is set at build time.
var version = "dev"

// Services wired by main.
var (
	syncOrchestrator driving.SyncOrchestrator
	scheduler        driving.Scheduler
	customerService  driving.CustomerService
	sourceService    driving.SourceSettingsService
	activityService  driving.ActivityLogService
	settingsService  driving.SettingsService
)

// Global flags.
var (
	verbose bool
	actor   string
)

// Services groups the core services the commands use.
type Services struct {
	Sync      driving.SyncOrchestrator
	Scheduler driving.Scheduler
	Customers driving.CustomerService
	Source    driving.SourceSettingsService
	Activity  driving.ActivityLogService
	Settings  driving.SettingsService
}

var rootCmd = &cobra.Command{
	Use:   "eggwms",
	Short: "Customer synchronisation for the egg-back-home warehouse",
	Long: `eggwms keeps the warehouse customer list in step with the online store.

It pulls customers from the store's API page by page, upserts them into the
local database by customer code, and remembers when it last synchronised so
the next run only asks for changes.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "print debug output")
	rootCmd.PersistentFlags().StringVar(&actor, "user", "", "name recorded in the activity log")
}

// SetVersion sets the version printed by the version command.
func SetVersion(v string) {
	version = v
}

// SetServices wires the services used by every command.
func SetServices(s Services) {
	syncOrchestrator = s.Sync
	scheduler = s.Scheduler
	customerService = s.Customers
	sourceService = s.Source
	activityService = s.Activity
	settingsService = s.Settings
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with ctx.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

// commandContext returns the command context carrying the --user actor.
func commandContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	if actor != "" {
		ctx = domain.WithActor(ctx, actor)
	}
	return ctx
}
