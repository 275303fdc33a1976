package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func cmdInit() *cobra.Command {
	var db string

	c := &cobra.Command{
		Use:   "init",
		Short: "Create ~/.gge/config.yaml",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := &Config{
				APIBaseURL: apiBaseURL,
				DBPath:     db,
			}
			if err := saveConfig(cfgPath, cfg); err != nil {
				return err
			}
			fmt.Printf("Wrote config: %s\n", cfgPath)
			return nil
		},
	}
	c.Flags().StringVar(&db, "db", "", "sqlite database path for `gge serve` (empty = in-memory)")
	return c
}
