package cli

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmachaddo/egg-back-home-wms/internal/adapters/driving/httpapi"
	"github.com/jmachaddo/egg-back-home-wms/internal/logger"
)

// ServeConfig holds the HTTP server settings for the serve command.
type ServeConfig struct {
	Addr   string
	APIKey string
}

var serveConfig ServeConfig

var (
	serveAddr        string
	serveNoScheduler bool
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API and the sync scheduler",
	Long: `Starts the HTTP API used by the dashboard and runs automatic customer
syncs in the background until interrupted.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// SetServeConfig sets the configuration for the serve command.
func SetServeConfig(c ServeConfig) {
	serveConfig = c
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides server.addr)")
	serveCmd.Flags().BoolVar(&serveNoScheduler, "no-scheduler", false, "serve the API without automatic syncs")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if syncOrchestrator == nil || customerService == nil || sourceService == nil || activityService == nil {
		return errors.New("services not configured")
	}

	addr := serveConfig.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	if addr == "" {
		return errors.New("no listen address configured")
	}

	logger.SetTimestamps(true)
	defer logger.SetTimestamps(false)

	ctx, stop := signal.NotifyContext(commandContext(cmd), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if scheduler != nil && !serveNoScheduler {
		go func() {
			if err := scheduler.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("scheduler stopped: %v", err)
			}
		}()
		defer func() {
			if err := scheduler.Stop(); err != nil {
				logger.Error("scheduler stop error: %v", err)
			}
			scheduler.Wait()
		}()
	}

	handler := httpapi.NewRouter(httpapi.Services{
		Customers: customerService,
		Sync:      syncOrchestrator,
		Scheduler: scheduler,
		Source:    sourceService,
		Activity:  activityService,
	}, serveConfig.APIKey)

	server := httpapi.NewServer(addr, handler)
	cmd.Printf("Serving on %s\n", server.Addr())
	return server.Run(ctx)
}
