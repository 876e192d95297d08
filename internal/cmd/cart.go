package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/kopi/internal/tui"
)

var cartCmd = &cobra.Command{
	Use:   "cart",
	Short: "Show and edit your cart",
	Long: `Show the cart and edit its lines. The cart lives locally and keeps its
contents between runs until you check out or clear it.

Subcommands:
  add     Add a menu item
  remove  Remove a line
  set     Set the quantity of a line
  clear   Empty the cart

Examples:
  kopi cart
  kopi cart add 3 --qty 2
  kopi cart set 3 1
  kopi cart remove 3`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		cmd.Println(cartView(a))
		return nil
	},
}

var cartAddCmd = &cobra.Command{
	Use:   "add <menu-id>",
	Short: "Add a menu item to the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		qty, _ := cmd.Flags().GetInt("qty")

		// The price snapshot comes from the live menu at add time.
		item, err := a.client.FetchMenuItem(cmd.Context(), id)
		if err != nil {
			return err
		}
		if !item.IsAvailable {
			return fmt.Errorf("%s is currently unavailable", item.Name)
		}

		res := a.cart.AddItem(item, qty)
		if !res.Success {
			return fmt.Errorf("%s", res.Message)
		}
		a.printSuccess(res.Message)
		return nil
	},
}

var cartRemoveCmd = &cobra.Command{
	Use:   "remove <menu-id>",
	Short: "Remove a line from the cart",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		res := a.cart.RemoveItem(id)
		if !res.Success {
			return fmt.Errorf("%s", res.Message)
		}
		a.printSuccess("Removed from cart.")
		return nil
	},
}

var cartSetCmd = &cobra.Command{
	Use:   "set <menu-id> <quantity>",
	Short: "Set the quantity of a cart line",
	Long: `Set the quantity of a cart line. Setting it to zero removes the line.

Examples:
  kopi cart set 3 2
  kopi cart set 3 0`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}
		qty, err := strconv.Atoi(args[1])
		if err != nil {
			return fmt.Errorf("quantity must be a number: %q", args[1])
		}

		res := a.cart.UpdateQuantity(id, qty)
		if !res.Success {
			return fmt.Errorf("%s", res.Message)
		}
		cmd.Println(cartView(a))
		return nil
	},
}

var cartClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Empty the cart",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		a.cart.ClearCart()
		a.printSuccess("Cart cleared.")
		return nil
	},
}

func cartView(a *app) string {
	return tui.CartView(a.cart.Lines(), a.cart.TotalPrice(), a.styles)
}

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("menu id must be a number: %q", raw)
	}
	return uint(id), nil
}

func init() {
	cartAddCmd.Flags().Int("qty", 1, "Quantity to add")

	cartCmd.AddCommand(cartAddCmd)
	cartCmd.AddCommand(cartRemoveCmd)
	cartCmd.AddCommand(cartSetCmd)
	cartCmd.AddCommand(cartClearCmd)
	rootCmd.AddCommand(cartCmd)
}
