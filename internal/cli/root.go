package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var (
	output     string
	showCurl   bool
	apiBaseURL string
	authToken  string
	cfgPath    string
)

var rootCmd = &cobra.Command{
	Use:   "gge",
	Short: "Gaelic Games Europe platform CLI",
}

func Execute() error { return rootCmd.Execute() }

func init() {
	home, _ := os.UserHomeDir()
	defaultCfg := filepath.Join(home, ".gge", "config.yaml")

	rootCmd.PersistentFlags().StringVarP(&output, "output", "o", "json", "output format: json|table")
	rootCmd.PersistentFlags().BoolVar(&showCurl, "show-curl", false, "print equivalent curl for networked commands")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api-base-url", "http://localhost:8080", "platform API base URL")
	rootCmd.PersistentFlags().StringVar(&authToken, "token", "", "bearer token (overrides the saved one)")
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", defaultCfg, "config file path")

	// Wire top level groups
	rootCmd.AddCommand(cmdInit(), cmdServe(), cmdLogin(), cmdUsers(), cmdClubs(), cmdVersion())

	// Friendly hint on no args
	rootCmd.SilenceUsage = true
	rootCmd.SilenceErrors = true
	rootCmd.SetHelpCommand(&cobra.Command{
		Use:   "help",
		Short: "Show help",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Root().Help()
		},
	})
	rootCmd.Run = func(cmd *cobra.Command, args []string) {
		fmt.Println("Use -h for help, for example: gge users list --status PENDING")
	}
}

// bearer resolves the token to send: the --token flag wins, then the
// saved config.
func bearer() string {
	if authToken != "" {
		return authToken
	}
	if cfg, err := loadConfig(cfgPath); err == nil {
		return cfg.Token
	}
	return ""
}
