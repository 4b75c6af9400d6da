package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/jmachaddo/egg-back-home-wms/internal/core/domain"
)

var sourceToken string

// tokenInput is read when --token is not given and stdin is not a terminal.
var tokenInput io.Reader = os.Stdin

var sourceCmd = &cobra.Command{
	Use:   "source",
	Short: "Manage the online store connection",
	RunE:  runSourceShow,
}

var sourceShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the store connection",
	Args:  cobra.NoArgs,
	RunE:  runSourceShow,
}

var sourceConnectCmd = &cobra.Command{
	Use:   "connect <store-url>",
	Short: "Connect to the online store",
	Long: `Stores the store API URL and access token and marks the store connected.

The token is read from --token or prompted for without echo.`,
	Args: cobra.ExactArgs(1),
	RunE: runSourceConnect,
}

var sourceDisconnectCmd = &cobra.Command{
	Use:   "disconnect",
	Short: "Disconnect from the online store",
	Long:  `Marks the store disconnected and forgets the access token. Automatic syncs stop until you connect again.`,
	Args:  cobra.NoArgs,
	RunE:  runSourceDisconnect,
}

var sourceTestCmd = &cobra.Command{
	Use:   "test",
	Short: "Check that the stored settings reach the store",
	Args:  cobra.NoArgs,
	RunE:  runSourceTest,
}

func init() {
	sourceConnectCmd.Flags().StringVar(&sourceToken, "token", "", "store access token")
	sourceCmd.AddCommand(sourceShowCmd)
	sourceCmd.AddCommand(sourceConnectCmd)
	sourceCmd.AddCommand(sourceDisconnectCmd)
	sourceCmd.AddCommand(sourceTestCmd)
	rootCmd.AddCommand(sourceCmd)
}

func runSourceShow(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	cfg, err := sourceService.Get(commandContext(cmd))
	if errors.Is(err, domain.ErrNotFound) {
		cmd.Println("No store configured. Run 'eggwms source connect <store-url>'.")
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to get store settings: %w", err)
	}

	status := "connected"
	if !cfg.Connected {
		status = "disconnected"
	}
	cmd.Printf("Store URL:    %s\n", cfg.BaseURL)
	cmd.Printf("Access token: %s\n", orNotSet(cfg.MaskedToken()))
	cmd.Printf("Status:       %s\n", status)
	cmd.Printf("Updated:      %s\n", formatTime(cfg.UpdatedAt))
	return nil
}

func runSourceConnect(cmd *cobra.Command, args []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	token := sourceToken
	if token == "" {
		cmd.Print("Access token: ")
		token = readSecret()
		cmd.Println()
	}

	cfg, err := sourceService.Connect(commandContext(cmd), args[0], token)
	if err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	cmd.Printf("Connected to %s.\n", cfg.BaseURL)
	return nil
}

func runSourceDisconnect(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}
	if err := sourceService.Disconnect(commandContext(cmd)); err != nil {
		return fmt.Errorf("failed to disconnect: %w", err)
	}
	cmd.Println("Store disconnected.")
	return nil
}

func runSourceTest(cmd *cobra.Command, _ []string) error {
	if sourceService == nil {
		return errors.New("source service not configured")
	}

	cmd.Println("Testing connection...")
	if err := sourceService.TestConnection(commandContext(cmd)); err != nil {
		var syncErr *domain.SyncError
		if errors.As(err, &syncErr) {
			return errors.New(syncErr.Message())
		}
		return err
	}
	cmd.Println("Connection successful.")
	return nil
}

//nolint:errcheck // CLI helper, error ignored for UX
func readSecret() string {
	if f, ok := tokenInput.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		secret, err := term.ReadPassword(int(f.Fd()))
		if err == nil {
			return strings.TrimSpace(string(secret))
		}
	}
	reader := bufio.NewReader(tokenInput)
	input, _ := reader.ReadString('\n')
	return strings.TrimSpace(input)
}

func orNotSet(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}
