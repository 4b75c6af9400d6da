package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var customersCmd = &cobra.Command{
	Use:   "customers [search-term]",
	Short: "List synchronised customers",
	Long: `Lists the customers in the local store, ordered by name.

An optional search term filters by name, customer code or email.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runCustomers,
}

func init() {
	rootCmd.AddCommand(customersCmd)
}

func runCustomers(cmd *cobra.Command, args []string) error {
	if customerService == nil {
		return errors.New("customer service not configured")
	}

	term := ""
	if len(args) > 0 {
		term = args[0]
	}

	customers, err := customerService.Search(commandContext(cmd), term)
	if err != nil {
		return fmt.Errorf("failed to list customers: %w", err)
	}

	if len(customers) == 0 {
		if term != "" {
			cmd.Printf("No customers match %q.\n", term)
		} else {
			cmd.Println("No customers. Run 'eggwms sync' to fetch them from the store.")
		}
		return nil
	}

	cmd.Printf("%-12s  %-30s  %-30s  %s\n", "CODE", "NAME", "EMAIL", "LOCATION")
	cmd.Println(strings.Repeat("-", 90))
	for i := range customers {
		c := &customers[i]
		cmd.Printf("%-12s  %-30s  %-30s  %s\n",
			c.ExternalCode, truncate(c.Name, 30), truncate(c.Email, 30), c.Location())
	}
	cmd.Printf("\n%d customers\n", len(customers))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
