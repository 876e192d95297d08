package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/kopi/internal/theme"
)

var themeCmd = &cobra.Command{
	Use:   "theme [dark|light]",
	Short: "Show or change the display theme",
	Long: `Show the active display theme, or switch to another one. The choice is
persisted and applies to all future output.

Examples:
  kopi theme
  kopi theme light`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		if len(args) == 0 {
			fmt.Printf("Active theme: %s\n", a.styles.Name)
			return nil
		}

		name := theme.Name(args[0])
		if err := theme.Save(a.store, name); err != nil {
			return err
		}

		a.styles = theme.Resolve(name)
		a.printSuccess(fmt.Sprintf("Theme set to %s.", name))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(themeCmd)
}
