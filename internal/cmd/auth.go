package cmd

import (
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/kopi/internal/api"
	"github.com/felixgeelhaar/kopi/internal/guard"
	"github.com/felixgeelhaar/kopi/internal/profile"
	"github.com/felixgeelhaar/kopi/internal/session"
	"github.com/felixgeelhaar/kopi/internal/tui"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Manage your sign-in session",
	Long: `Manage your sign-in session with the coffee service.

The session token is stored locally, so you stay signed in between runs.

Subcommands:
  login     Sign in with email and password
  register  Create an account
  logout    Sign out and clear the local session
  status    Show who is signed in

Examples:
  kopi auth login --email you@example.com --password secret
  kopi auth status
  kopi auth logout`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var authLoginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to the coffee service",
	Long: `Sign in with your email and password. When the flags are omitted and
the terminal is interactive, an input form is shown instead.

Examples:
  kopi auth login --email you@example.com --password secret
  kopi auth login`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if d := guard.EvaluatePath(ctx, "/auth/login", a.session); !d.Allow {
			a.printMuted("Already signed in. Run 'kopi auth logout' first to switch accounts.")
			return nil
		}

		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")

		creds := api.Credentials{Email: email, Password: password}
		if creds.Email == "" || creds.Password == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("--email and --password are required in non-interactive mode")
			}
			creds, err = tui.LoginForm()
			if err != nil {
				return err
			}
		}

		res := a.session.Login(ctx, creds)
		if !res.Success {
			return resultErr(res)
		}

		user := a.session.CurrentUser()
		a.printSuccess(fmt.Sprintf("Signed in as %s.", profile.FullName(user)))
		return nil
	},
}

var authRegisterCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account",
	Long: `Create an account and sign in with it. When flags are omitted and the
terminal is interactive, an input form is shown instead.

Examples:
  kopi auth register --username latte --email you@example.com --password secret
  kopi auth register`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if d := guard.EvaluatePath(ctx, "/auth/register", a.session); !d.Allow {
			a.printMuted("Already signed in. Run 'kopi auth logout' first to create another account.")
			return nil
		}

		username, _ := cmd.Flags().GetString("username")
		email, _ := cmd.Flags().GetString("email")
		password, _ := cmd.Flags().GetString("password")
		phone, _ := cmd.Flags().GetString("phone")

		reg := api.Registration{Username: username, Email: email, Password: password, Phone: phone}
		if reg.Username == "" || reg.Email == "" || reg.Password == "" {
			if !tui.IsInteractive() {
				return fmt.Errorf("--username, --email and --password are required in non-interactive mode")
			}
			reg, err = tui.RegisterForm()
			if err != nil {
				return err
			}
		}

		res := a.session.Register(ctx, reg)
		if !res.Success {
			return resultErr(res)
		}

		a.printSuccess(fmt.Sprintf("Welcome, %s! Your account is ready.", reg.Username))
		return nil
	},
}

var authLogoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear the local session",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		if !a.session.CheckAuthStatus(cmd.Context()) {
			a.printMuted("Not signed in.")
			return nil
		}

		name := profile.FullName(a.session.CurrentUser())
		a.session.Logout()
		a.loyalty.Clear()
		a.profile.Clear()

		a.printSuccess(fmt.Sprintf("Signed out %s.", name))
		return nil
	},
}

var authStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show who is signed in",
	Long: `Show the current session: the signed-in user, their role, and what the
stored token claims about its own expiry. The token is only decoded, not
verified; the backend remains the authority.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		if !a.session.CheckAuthStatus(cmd.Context()) {
			a.printMuted("Not signed in.")
			return nil
		}

		user := a.session.CurrentUser()
		fmt.Printf("Signed in as: %s\n", profile.FullName(user))
		fmt.Printf("Email:        %s\n", user.Email)
		fmt.Printf("Role:         %s\n", user.Role)

		token := a.session.Token()
		if session.IsFakeAdminToken(token) {
			fmt.Println(a.styles.Error.Render("Session:      degraded admin mode (no backend verification)"))
			return nil
		}

		if expiry := tokenExpiry(token); expiry != "" {
			fmt.Printf("Token expires: %s\n", expiry)
		}
		return nil
	},
}

// tokenExpiry decodes the JWT expiry claim for display, or "" when the
// token is opaque.
func tokenExpiry(token string) string {
	parsed, _, err := jwt.NewParser().ParseUnverified(token, jwt.MapClaims{})
	if err != nil {
		return ""
	}
	exp, err := parsed.Claims.GetExpirationTime()
	if err != nil || exp == nil {
		return ""
	}
	return exp.Format("2006-01-02 15:04:05")
}

func init() {
	authCmd.AddCommand(authLoginCmd)
	authCmd.AddCommand(authRegisterCmd)
	authCmd.AddCommand(authLogoutCmd)
	authCmd.AddCommand(authStatusCmd)

	authLoginCmd.Flags().String("email", "", "Email address")
	authLoginCmd.Flags().String("password", "", "Password")

	authRegisterCmd.Flags().String("username", "", "Username")
	authRegisterCmd.Flags().String("email", "", "Email address")
	authRegisterCmd.Flags().String("password", "", "Password")
	authRegisterCmd.Flags().String("phone", "", "Phone number (optional)")

	rootCmd.AddCommand(authCmd)
}
