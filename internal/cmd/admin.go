package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/kopi/internal/api"
	"github.com/felixgeelhaar/kopi/internal/guard"
	"github.com/felixgeelhaar/kopi/internal/session"
	"github.com/felixgeelhaar/kopi/internal/tui"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Back-office management",
	Long: `Back-office management for administrators: the menu, every order in
the shop, and customer accounts.

All subcommands require an administrator session; sign in first with
'kopi admin login'.

Examples:
  kopi admin login
  kopi admin orders stats
  kopi admin menu list
  kopi admin users list`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var adminLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the back office",
	Long: `Sign in with an administrator account.

With --fake, a degraded local session is established without contacting
the auth service at all. The fabricated token only satisfies this
client's own gate; every real backend request still needs the server to
accept it. Use it when the auth service is down but the rest of the
backend is not.

Examples:
  kopi admin login --username boss --password secret
  kopi admin login --fake --username boss`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if d := guard.EvaluatePath(ctx, "/admin/login", a.session); !d.Allow {
			a.printMuted("Already signed in as an administrator.")
			return nil
		}

		username, _ := cmd.Flags().GetString("username")
		password, _ := cmd.Flags().GetString("password")
		fake, _ := cmd.Flags().GetBool("fake")

		if fake {
			if username == "" {
				username = "admin"
			}
			res := a.session.SetAdminAuth(&api.User{
				Username: username,
				Role:     api.RoleAdmin,
				IsActive: true,
			})
			if !res.Success {
				return resultErr(res)
			}
			a.printSuccess(res.Message)
			return nil
		}

		creds := api.Credentials{Username: username, Password: password}
		if creds.Username == "" || creds.Password == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("--username and --password are required in non-interactive mode")
			}
			creds, err = tui.AdminLoginForm()
			if err != nil {
				return err
			}
		}

		res := a.session.AdminLogin(ctx, creds)
		if !res.Success {
			return resultErr(res)
		}

		a.printSuccess("Signed in to the back office.")

		// Replay the destination recorded when an earlier admin command
		// bounced off the gate.
		if dest := a.session.RedirectPath(); dest != session.DefaultRedirectPath {
			a.session.ClearRedirectPath()
			a.printMuted("You were headed to " + dest + ".")
		}
		return nil
	},
}

var adminMenuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Manage the menu",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var adminMenuListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all menu items, including unavailable ones",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAdmin(ctx); err != nil {
			return err
		}

		category, _ := cmd.Flags().GetString("category")
		page, _ := cmd.Flags().GetInt("page")

		items, err := a.client.FetchAdminMenu(ctx, category, "", page, 0)
		if err != nil {
			return err
		}
		cmd.Println(tui.MenuTable(items, a.styles))
		return nil
	},
}

var adminMenuCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Add a menu item",
	Long: `Add a menu item.

Examples:
  kopi admin menu create --name "Flat White" --price 4.5 --category coffee`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAdmin(ctx); err != nil {
			return err
		}

		input, err := menuInputFromFlags(cmd)
		if err != nil {
			return err
		}
		if input.Name == "" || input.Price <= 0 {
			return fmt.Errorf("--name and a positive --price are required")
		}

		item, err := a.client.CreateMenuItem(ctx, input)
		if err != nil {
			return err
		}

		a.printSuccess(fmt.Sprintf("Created %s (id %d).", item.Name, item.ID))
		return nil
	},
}

var adminMenuUpdateCmd = &cobra.Command{
	Use:   "update <menu-id>",
	Short: "Update a menu item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAdmin(ctx); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		// Start from the current item so unchanged fields survive the PUT.
		current, err := a.client.FetchMenuItem(ctx, id)
		if err != nil {
			return err
		}

		input := api.MenuItemInput{
			Name:        current.Name,
			Description: current.Description,
			Price:       current.Price,
			Category:    current.Category,
			ImageURL:    current.ImageURL,
			IsAvailable: current.IsAvailable,
		}
		overlay, err := menuInputFromFlags(cmd)
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("name") {
			input.Name = overlay.Name
		}
		if cmd.Flags().Changed("description") {
			input.Description = overlay.Description
		}
		if cmd.Flags().Changed("price") {
			input.Price = overlay.Price
		}
		if cmd.Flags().Changed("category") {
			input.Category = overlay.Category
		}
		if cmd.Flags().Changed("image-url") {
			input.ImageURL = overlay.ImageURL
		}
		if cmd.Flags().Changed("available") {
			input.IsAvailable = overlay.IsAvailable
		}

		item, err := a.client.UpdateMenuItem(ctx, id, input)
		if err != nil {
			return err
		}

		a.printSuccess(fmt.Sprintf("Updated %s.", item.Name))
		return nil
	},
}

var adminMenuDeleteCmd = &cobra.Command{
	Use:   "delete <menu-id>",
	Short: "Remove a menu item",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAdmin(ctx); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := a.client.DeleteMenuItem(ctx, id); err != nil {
			return err
		}
		a.printSuccess("Menu item removed.")
		return nil
	},
}

var adminMenuToggleCmd = &cobra.Command{
	Use:   "toggle <menu-id>",
	Short: "Flip a menu item's availability",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAdmin(ctx); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		item, err := a.client.ToggleMenuItem(ctx, id)
		if err != nil {
			return err
		}

		state := "available"
		if !item.IsAvailable {
			state = "unavailable"
		}
		a.printSuccess(fmt.Sprintf("%s is now %s.", item.Name, state))
		return nil
	},
}

var adminOrdersCmd = &cobra.Command{
	Use:   "orders",
	Short: "Manage orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var adminOrdersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every order in the shop",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAdmin(ctx); err != nil {
			return err
		}

		status, _ := cmd.Flags().GetString("status")
		page, _ := cmd.Flags().GetInt("page")

		orders, err := a.client.FetchAllOrders(ctx, api.OrderStatus(status), page, 0)
		if err != nil {
			return err
		}
		cmd.Println(tui.OrdersTable(orders, a.styles))
		return nil
	},
}

var adminOrdersStatusCmd = &cobra.Command{
	Use:   "status <order-id> <status>",
	Short: "Advance an order through its lifecycle",
	Long: `Advance an order through its lifecycle. Valid statuses are pending,
preparing, ready, completed and cancelled.

Examples:
  kopi admin orders status 42 preparing
  kopi admin orders status 42 ready`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAdmin(ctx); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		status := api.OrderStatus(args[1])
		switch status {
		case api.OrderStatusPending, api.OrderStatusPreparing, api.OrderStatusReady,
			api.OrderStatusCompleted, api.OrderStatusCancelled:
		default:
			return fmt.Errorf("unknown status %q", args[1])
		}

		order, err := a.client.UpdateOrderStatus(ctx, id, status)
		if err != nil {
			return err
		}

		a.printSuccess(fmt.Sprintf("Order %s is now %s.", order.OrderNumber, order.Status))
		return nil
	},
}

var adminOrdersDeleteCmd = &cobra.Command{
	Use:   "delete <order-id>",
	Short: "Remove an order record",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAdmin(ctx); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := a.client.DeleteOrder(ctx, id); err != nil {
			return err
		}
		a.printSuccess("Order removed.")
		return nil
	},
}

var adminOrdersRecentCmd = &cobra.Command{
	Use:   "recent",
	Short: "Show the latest orders",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAdmin(ctx); err != nil {
			return err
		}

		orders, err := a.client.FetchAllOrders(ctx, "", 1, 10)
		if err != nil {
			return err
		}
		cmd.Println(tui.OrdersTable(orders, a.styles))
		return nil
	},
}

var adminOrdersStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show order statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAdmin(ctx); err != nil {
			return err
		}

		stats, err := a.client.FetchOrderStats(ctx)
		if err != nil {
			return err
		}
		cmd.Println(tui.StatsView(stats, a.styles))
		return nil
	},
}

var adminUsersCmd = &cobra.Command{
	Use:   "users",
	Short: "Manage customer accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var adminUsersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAdmin(ctx); err != nil {
			return err
		}

		page, _ := cmd.Flags().GetInt("page")
		users, err := a.client.FetchUsers(ctx, page, 0)
		if err != nil {
			return err
		}
		cmd.Println(tui.UsersTable(users, a.styles))
		return nil
	},
}

var adminUsersRoleCmd = &cobra.Command{
	Use:   "role <user-id> <role>",
	Short: "Change an account's role",
	Long: `Change an account's role. Valid roles are customer and admin.

Examples:
  kopi admin users role 7 admin
  kopi admin users role 7 customer`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAdmin(ctx); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		role := args[1]
		if role != "customer" && role != api.RoleAdmin {
			return fmt.Errorf("unknown role %q", role)
		}

		if err := a.client.SetUserRole(ctx, id, role); err != nil {
			return err
		}

		a.printSuccess(fmt.Sprintf("Account %d is now a %s.", id, role))
		return nil
	},
}

var adminUsersToggleCmd = &cobra.Command{
	Use:   "toggle <user-id>",
	Short: "Enable or disable an account",
	Long: `Flip an account between enabled and disabled.

Examples:
  kopi admin users toggle 7`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAdmin(ctx); err != nil {
			return err
		}

		id, err := parseID(args[0])
		if err != nil {
			return err
		}

		if err := a.client.ToggleUserStatus(ctx, id); err != nil {
			return err
		}

		a.printSuccess(fmt.Sprintf("Flipped account %d's status.", id))
		return nil
	},
}

// menuInputFromFlags reads the shared menu item flags.
func menuInputFromFlags(cmd *cobra.Command) (api.MenuItemInput, error) {
	name, _ := cmd.Flags().GetString("name")
	description, _ := cmd.Flags().GetString("description")
	price, _ := cmd.Flags().GetFloat64("price")
	category, _ := cmd.Flags().GetString("category")
	imageURL, _ := cmd.Flags().GetString("image-url")
	available, _ := cmd.Flags().GetBool("available")

	return api.MenuItemInput{
		Name:        name,
		Description: description,
		Price:       price,
		Category:    category,
		ImageURL:    imageURL,
		IsAvailable: available,
	}, nil
}

func addMenuItemFlags(cmd *cobra.Command) {
	cmd.Flags().String("name", "", "Item name")
	cmd.Flags().String("description", "", "Item description")
	cmd.Flags().Float64("price", 0, "Item price")
	cmd.Flags().String("category", "", "Item category")
	cmd.Flags().String("image-url", "", "Image URL")
	cmd.Flags().Bool("available", true, "Whether the item is orderable")
}

func init() {
	adminLoginCmd.Flags().String("username", "", "Administrator username")
	adminLoginCmd.Flags().String("password", "", "Password")
	adminLoginCmd.Flags().Bool("fake", false, "Establish a degraded local session without the auth service")

	addMenuItemFlags(adminMenuCreateCmd)
	addMenuItemFlags(adminMenuUpdateCmd)

	adminMenuListCmd.Flags().String("category", "", "Filter by category")
	adminMenuListCmd.Flags().Int("page", 0, "Page to fetch")

	adminOrdersListCmd.Flags().String("status", "", "Filter by status")
	adminOrdersListCmd.Flags().Int("page", 0, "Page to fetch")

	adminUsersListCmd.Flags().Int("page", 0, "Page to fetch")

	adminMenuCmd.AddCommand(adminMenuListCmd)
	adminMenuCmd.AddCommand(adminMenuCreateCmd)
	adminMenuCmd.AddCommand(adminMenuUpdateCmd)
	adminMenuCmd.AddCommand(adminMenuDeleteCmd)
	adminMenuCmd.AddCommand(adminMenuToggleCmd)

	adminOrdersCmd.AddCommand(adminOrdersListCmd)
	adminOrdersCmd.AddCommand(adminOrdersStatusCmd)
	adminOrdersCmd.AddCommand(adminOrdersDeleteCmd)
	adminOrdersCmd.AddCommand(adminOrdersRecentCmd)
	adminOrdersCmd.AddCommand(adminOrdersStatsCmd)

	adminUsersCmd.AddCommand(adminUsersListCmd)
	adminUsersCmd.AddCommand(adminUsersRoleCmd)
	adminUsersCmd.AddCommand(adminUsersToggleCmd)

	adminCmd.AddCommand(adminLoginCmd)
	adminCmd.AddCommand(adminMenuCmd)
	adminCmd.AddCommand(adminOrdersCmd)
	adminCmd.AddCommand(adminUsersCmd)
	rootCmd.AddCommand(adminCmd)
}
