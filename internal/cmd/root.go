package cmd

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	verbose    bool
	apiURLFlag string
)

var rootCmd = &cobra.Command{
	Use:   "kopi",
	Short: "Order coffee from your terminal",
	Long: `kopi is the terminal client for the coffee shop: browse the menu,
build a cart, check out, track orders and loyalty points, and run the
back office as an administrator.

State (your session, cart, and theme) lives in ~/.kopi and survives
between runs, so a half-built cart is still there tomorrow.`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// ExecuteContext runs the root command with the given context so commands
// stop on Ctrl+C.
func ExecuteContext(ctx context.Context) error {
	return rootCmd.ExecuteContext(ctx)
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&apiURLFlag, "api-url", "", "override the API base URL")

	rootCmd.PersistentPostRun = func(cmd *cobra.Command, args []string) {
		closeApp()
	}
}
