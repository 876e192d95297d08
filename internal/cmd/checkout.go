package cmd

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/kopi/internal/api"
	"github.com/felixgeelhaar/kopi/internal/errors"
	"github.com/felixgeelhaar/kopi/internal/tui"
)

var checkoutCmd = &cobra.Command{
	Use:   "checkout",
	Short: "Place an order from your cart",
	Long: `Place an order from the current cart. You must be signed in.

With --use-points, available loyalty points are applied as a discount;
the backend quotes the deduction before you confirm. Each submission
carries a generated reference so a retried command cannot place the
same order twice.

Examples:
  kopi checkout
  kopi checkout --notes "oat milk please"
  kopi checkout --use-points 200
  kopi checkout --yes`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAuth(ctx); err != nil {
			return err
		}

		if v := a.cart.Validate(); !v.Valid {
			if a.cart.IsEmpty() {
				return errors.NewEmptyCartError()
			}
			return fmt.Errorf("cart is not submittable: %s", strings.Join(v.Errors, "; "))
		}

		notes, _ := cmd.Flags().GetString("notes")
		pointsToUse, _ := cmd.Flags().GetInt("use-points")
		skipConfirm, _ := cmd.Flags().GetBool("yes")

		lines := a.cart.OrderLines()
		total := a.cart.TotalPrice()

		req := api.OrderRequest{
			Items:      lines,
			TotalPrice: total,
			Notes:      notes,
			Reference:  uuid.NewString(),
		}

		finalAmount := total
		if pointsToUse > 0 {
			quote, err := a.loyalty.CalculateDiscount(ctx, lines, pointsToUse)
			if err != nil {
				return err
			}
			req.UsePoints = true
			req.PointsToUse = quote.PointsToUse
			finalAmount = quote.FinalTotal

			a.printMuted(fmt.Sprintf("Using %d points for a $%.2f discount.",
				quote.PointsToUse, quote.PointsValue))
		}

		cmd.Println(tui.CartView(a.cart.Lines(), total, a.styles))

		if !skipConfirm {
			if !tui.IsInteractive() {
				return fmt.Errorf("pass --yes to check out in non-interactive mode")
			}
			ok, err := tui.Confirm(fmt.Sprintf("Place this order for $%.2f?", finalAmount), true)
			if err != nil {
				return err
			}
			if !ok {
				a.printMuted("Checkout cancelled. Your cart is untouched.")
				return nil
			}
		}

		order, err := a.client.CreateOrder(ctx, req)
		if err != nil {
			return err
		}

		// Only a confirmed order empties the cart.
		a.cart.ResetCart()

		a.printSuccess(fmt.Sprintf("Order %s placed!", order.OrderNumber))
		cmd.Println(tui.OrderDetail(order, a.styles))
		return nil
	},
}

func init() {
	checkoutCmd.Flags().String("notes", "", "Notes for the barista")
	checkoutCmd.Flags().Int("use-points", 0, "Loyalty points to apply as a discount")
	checkoutCmd.Flags().Bool("yes", false, "Skip the confirmation prompt")

	rootCmd.AddCommand(checkoutCmd)
}
