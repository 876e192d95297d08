package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/kopi/internal/tui"
)

var pointsCmd = &cobra.Command{
	Use:   "points",
	Short: "Show your loyalty points",
	Long: `Show the loyalty account: available points, member level, and progress
towards the next level. With --history the recent point transactions are
listed as well.

Examples:
  kopi points
  kopi points --history
  kopi points --history --page 2`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAuth(ctx); err != nil {
			return err
		}

		info, err := a.loyalty.FetchInfo(ctx)
		if err != nil {
			return err
		}
		cmd.Println(tui.PointsView(info, a.styles))

		history, _ := cmd.Flags().GetBool("history")
		if !history {
			return nil
		}

		page, _ := cmd.Flags().GetInt("page")
		txPage, err := a.loyalty.FetchTransactions(ctx, page, 0)
		if err != nil {
			return err
		}
		cmd.Println()
		cmd.Println(tui.TransactionsTable(txPage, a.styles))
		return nil
	},
}

func init() {
	pointsCmd.Flags().Bool("history", false, "Show recent point transactions")
	pointsCmd.Flags().Int("page", 1, "History page to fetch")

	rootCmd.AddCommand(pointsCmd)
}
