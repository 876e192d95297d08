package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/kopi/internal/api"
	"github.com/felixgeelhaar/kopi/internal/tui"
)

var ordersCmd = &cobra.Command{
	Use:   "orders",
	Short: "List your orders",
	Long: `List your orders, newest first.

Examples:
  kopi orders
  kopi orders --status pending
  kopi orders show 42
  kopi orders cancel 42`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAuth(ctx); err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		page, _ := cmd.Flags().GetInt("page")

		orders, err := a.client.FetchOrders(ctx, api.OrderStatus(status), page, 0)
		if err != nil {
			return err
		}

		cmd.Println(tui.OrdersTable(orders, a.styles))
		return nil
	},
}

var ordersShowCmd = &cobra.Command{
	Use:   "show [order-id]",
	Short: "Show one order",
	Long: `Show one order, either by id or by its pickup code.

Examples:
  kopi orders show 42
  kopi orders show --pickup A7X2`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAuth(ctx); err != nil {
			return err
		}

		pickup, _ := cmd.Flags().GetString("pickup")

		var order *api.Order
		switch {
		case pickup != "":
			order, err = a.client.FetchOrderByPickupCode(ctx, pickup)
		case len(args) == 1:
			var id uint
			id, err = parseID(args[0])
			if err != nil {
				return err
			}
			order, err = a.client.FetchOrder(ctx, id)
		default:
			return fmt.Errorf("pass an order id or --pickup")
		}
		if err != nil {
			return err
		}

		cmd.Println(tui.OrderDetail(order, a.styles))
		return nil
	},
}

var ordersCancelCmd = &cobra.Command{
	Use:   "cancel <order-id>",
	Short: "Cancel a pending order",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAuth(ctx); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := a.client.CancelOrder(ctx, id); err != nil {
			return err
		}

		a.printSuccess("Order cancelled.")
		return nil
	},
}

func init() {
	ordersCmd.Flags().String("status", "", "Filter by status (pending, preparing, ready, completed, cancelled)")
	ordersCmd.Flags().Int("page", 0, "Page to fetch")

	ordersShowCmd.Flags().String("pickup", "", "Look up by pickup code instead of id")

	ordersCmd.AddCommand(ordersShowCmd)
	ordersCmd.AddCommand(ordersCancelCmd)
	rootCmd.AddCommand(ordersCmd)
}
