package cmd

import (
	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/kopi/internal/api"
	"github.com/felixgeelhaar/kopi/internal/tui"
)

var profileCmd = &cobra.Command{
	Use:   "profile",
	Short: "Show and edit your profile",
	Long: `Show and edit your account profile.

Subcommands:
  show      Show the profile (default)
  update    Change profile fields
  password  Change the account password

Examples:
  kopi profile
  kopi profile update --first-name Lat --last-name Te
  kopi profile update --birth-date 1990-04-01
  kopi profile password`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return profileShowCmd.RunE(cmd, args)
	},
}

var profileShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show your profile",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAuth(ctx); err != nil {
			return err
		}

		user, err := a.profile.Fetch(ctx)
		if err != nil {
			return err
		}

		cmd.Println(tui.ProfileView(user, a.styles))
		return nil
	},
}

var profileUpdateCmd = &cobra.Command{
	Use:   "update",
	Short: "Change profile fields",
	Long: `Change profile fields. Only the flags you pass are sent; everything
else stays as it is. A birth date is given as YYYY-MM-DD.

Examples:
  kopi profile update --first-name Lat
  kopi profile update --phone "+62 812 000" --birth-date 1990-04-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAuth(ctx); err != nil {
			return err
		}

		var update api.ProfileUpdate
		changed := false
		for flag, target := range map[string]**string{
			"first-name": &update.FirstName,
			"last-name":  &update.LastName,
			"phone":      &update.Phone,
			"gender":     &update.Gender,
			"birth-date": &update.BirthDate,
			"avatar-url": &update.AvatarURL,
		} {
			if cmd.Flags().Changed(flag) {
				v, _ := cmd.Flags().GetString(flag)
				*target = &v
				changed = true
			}
		}
		if !changed {
			return cmd.Help()
		}

		user, err := a.profile.Update(ctx, update)
		if err != nil {
			return err
		}

		a.printSuccess("Profile updated.")
		cmd.Println(tui.ProfileView(user, a.styles))
		return nil
	},
}

var profilePasswordCmd = &cobra.Command{
	Use:   "password",
	Short: "Change the account password",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}
		ctx := cmd.Context()

		if err := a.requireAuth(ctx); err != nil {
			return err
		}

		change, err := tui.PasswordChangeForm()
		if err != nil {
			return err
		}

		if err := a.profile.ChangePassword(ctx, change); err != nil {
			return err
		}

		a.printSuccess("Password changed.")
		return nil
	},
}

func init() {
	profileUpdateCmd.Flags().String("first-name", "", "First name")
	profileUpdateCmd.Flags().String("last-name", "", "Last name")
	profileUpdateCmd.Flags().String("phone", "", "Phone number")
	profileUpdateCmd.Flags().String("gender", "", "Gender")
	profileUpdateCmd.Flags().String("birth-date", "", "Birth date (YYYY-MM-DD)")
	profileUpdateCmd.Flags().String("avatar-url", "", "Avatar image URL")

	profileCmd.AddCommand(profileShowCmd)
	profileCmd.AddCommand(profileUpdateCmd)
	profileCmd.AddCommand(profilePasswordCmd)
	rootCmd.AddCommand(profileCmd)
}
