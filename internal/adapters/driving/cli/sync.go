package cli

import (
	"context"
	"errors"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
	"github.com/jmachaddo/egg-back-home-wms/internal/core/ports/driving"
)

// progressInterval is how often the sync command polls the session.
var progressInterval = 500 * time.Millisecond

var historyLimit int

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Synchronise customers from the online store",
	Long: `Runs one manual customer synchronisation and waits for it to finish.

Only customers changed since the last successful sync are fetched. If a
synchronisation is already running, this command does nothing.`,
	Args: cobra.NoArgs,
	RunE: runSync,
}

var syncStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the synchronisation status",
	Args:  cobra.NoArgs,
	RunE:  runSyncStatus,
}

var syncHistoryCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent synchronisation runs",
	Args:  cobra.NoArgs,
	RunE:  runSyncHistory,
}

func init() {
	syncHistoryCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "number of runs to show")
	syncCmd.AddCommand(syncStatusCmd)
	syncCmd.AddCommand(syncHistoryCmd)
	rootCmd.AddCommand(syncCmd)
}

func runSync(cmd *cobra.Command, _ []string) error {
	if scheduler == nil || syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	cmd.Println("Synchronising customers...")

	result, err := syncWithProgress(commandContext(cmd), cmd, scheduler, syncOrchestrator)
	if result != nil && result.Skipped {
		cmd.Println("A synchronisation is already running.")
		return nil
	}
	if err != nil {
		var syncErr *domain.SyncError
		if errors.As(err, &syncErr) {
			return errors.New(syncErr.Message())
		}
		return err
	}
	if result == nil {
		return errors.New("sync returned no result")
	}

	cmd.Printf("Synchronised %d customers (%d pages) in %s.\n",
		result.Processed, result.Pages, result.Duration().Round(time.Millisecond))
	return nil
}

// syncWithProgress runs a manual sync while printing the processed count.
func syncWithProgress(
	ctx context.Context,
	cmd *cobra.Command,
	sched driving.Scheduler,
	syncOrch driving.SyncOrchestrator,
) (*domain.SyncResult, error) {
	type outcome struct {
		result *domain.SyncResult
		err    error
	}
	done := make(chan outcome, 1)
	go func() {
		result, err := sched.TriggerManual(ctx)
		done <- outcome{result, err}
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()

	lastCount := 0
	for {
		select {
		case o := <-done:
			if lastCount > 0 {
				cmd.Println()
			}
			return o.result, o.err
		case <-ticker.C:
			session := syncOrch.Session()
			if session.InProgress && session.ProcessedCount > lastCount {
				cmd.Printf("\rProcessing... %d customers", session.ProcessedCount)
				lastCount = session.ProcessedCount
			}
		}
	}
}

func runSyncStatus(cmd *cobra.Command, _ []string) error {
	if syncOrchestrator == nil {
		return errors.New("sync service not configured")
	}

	session := syncOrchestrator.Session()

	state := "idle"
	if session.InProgress {
		state = "running (" + session.Mode.String() + ")"
	}
	cmd.Printf("Status:       %s\n", state)
	cmd.Printf("Last success: %s\n", formatTime(session.LastSuccess))
	if !session.StartedAt.IsZero() {
		cmd.Printf("Last started: %s\n", formatTime(session.StartedAt))
		cmd.Printf("Processed:    %d\n", session.ProcessedCount)
	}
	if session.LastError != nil {
		cmd.Printf("Last error:   %s\n", session.LastError.Message())
	}
	return nil
}

func runSyncHistory(cmd *cobra.Command, _ []string) error {
	if scheduler == nil {
		return errors.New("scheduler not configured")
	}

	history, err := scheduler.History(commandContext(cmd), historyLimit)
	if err != nil {
		return err
	}
	if len(history) == 0 {
		cmd.Println("No synchronisation runs recorded.")
		return nil
	}

	for _, h := range history {
		outcome := "ok"
		if !h.Success {
			outcome = "failed: " + h.Error
		}
		cmd.Printf("%s  %-6s  %5d customers  %s\n",
			formatTime(h.StartedAt), h.Mode, h.ItemsProcessed, outcome)
	}
	return nil
}

func formatTime(t time.Time) string {
	if t.IsZero() {
		return "never"
	}
	return t.Local().Format("2006-01-02 15:04:05")
}
