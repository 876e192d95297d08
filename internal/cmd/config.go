package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/felixgeelhaar/kopi/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect the client configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		return cmd.Help()
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective configuration",
	Long: `Show the configuration after the file and environment overrides have
been applied. Environment variables (KOPI_API_URL, KOPI_TIMEOUT_SECONDS,
KOPI_STATE_PATH, KOPI_LOG_LEVEL) win over ~/.kopi/config.yaml.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := getApp()
		if err != nil {
			return err
		}

		fmt.Printf("Home:       %s\n", config.HomeDir())
		fmt.Printf("API URL:    %s\n", a.cfg.BaseURL)
		fmt.Printf("Timeout:    %s\n", a.cfg.Timeout())
		fmt.Printf("State path: %s\n", a.cfg.StatePath)
		fmt.Printf("Log level:  %s\n", a.cfg.LogLevel)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	rootCmd.AddCommand(configCmd)
}
