package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
)

var (
	logsModule string
	logsLimit  int
)

var logsCmd = &cobra.Command{
	Use:   "logs",
	Short: "Show the activity log",
	Long: `Shows recorded actions, newest first.

--module filters by module (MasterData, Integrations, Settings, Users).
The Settings filter also shows Users and Integrations entries.`,
	Args: cobra.NoArgs,
	RunE: runLogs,
}

func init() {
	logsCmd.Flags().StringVarP(&logsModule, "module", "m", "", "filter by module")
	logsCmd.Flags().IntVarP(&logsLimit, "limit", "n", 50, "number of entries to show (0 for all)")
	rootCmd.AddCommand(logsCmd)
}

func runLogs(cmd *cobra.Command, _ []string) error {
	if activityService == nil {
		return errors.New("activity log not configured")
	}

	entries, err := activityService.List(commandContext(cmd), logsModule, logsLimit)
	if err != nil {
		return fmt.Errorf("failed to list activity: %w", err)
	}
	if len(entries) == 0 {
		cmd.Println("No activity recorded.")
		return nil
	}

	for _, e := range entries {
		cmd.Printf("%s  %-12s  %-10s  %-18s  %s\n",
			formatTime(e.Timestamp), e.Module, e.User, e.Action, e.Details)
	}
	return nil
}
