package cmd

import (
	"sort"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/kopi/internal/api"
	"github.com/felixgeelhaar/kopi/internal/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Browse the menu",
	Long: `List the menu, optionally filtered by category or a name search.
The search runs server-side against item names and descriptions.

Examples:
  kopi menu
  kopi menu --category coffee
  kopi menu --search latte
  kopi menu categories
  kopi menu browse`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		search, _ := cmd.Flags().GetString("search")
		popular, _ := cmd.Flags().GetBool("popular")

		items, err := a.client.FetchMenu(cmd.Context(), category, search)
		if err != nil {
			return err
		}

		if popular {
			items = sortPopular(items)
		}
		cmd.Println(tui.MenuTable(items, a.styles))
		return nil
	},
}

var menuCategoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List the menu categories",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		categories, err := a.client.FetchCategories(cmd.Context())
		if err != nil {
			return err
		}

		for _, c := range categories {
			cmd.Println(c.Value)
		}
		return nil
	},
}

var menuBrowseCmd = &cobra.Command{
	Use:   "browse",
	Short: "Browse the menu interactively",
	Long: `Open an interactive menu browser. Move with the arrow keys, press
enter to add the highlighted item to your cart, x to take it out again,
and q when you are done. The cart is saved as you go.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		items, err := a.client.FetchMenu(cmd.Context(), category, "")
		if err != nil {
			return err
		}

		if err := tui.RunBrowser(items, a.cart, a.styles); err != nil {
			return err
		}

		cmd.Println(tui.CartView(a.cart.Lines(), a.cart.TotalPrice(), a.styles))
		return nil
	},
}

// sortPopular orders popular items first. Without sales data in the menu
// payload, cheapest-first is the closest stand-in.
func sortPopular(items []api.MenuItem) []api.MenuItem {
	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Price < items[j].Price
	})
	return items
}

func init() {
	menuCmd.Flags().String("category", "", "Filter by category")
	menuCmd.Flags().String("search", "", "Search by name or description")
	menuCmd.Flags().Bool("popular", false, "Sort popular items first")

	menuBrowseCmd.Flags().String("category", "", "Filter by category")

	menuCmd.AddCommand(menuBrowseCmd)
	menuCmd.AddCommand(menuCategoriesCmd)
	rootCmd.AddCommand(menuCmd)
}
