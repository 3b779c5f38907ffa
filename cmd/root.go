package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/leadbridge/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "leadbridge",
	Short: "Convert lead exports into support-platform import tables",
	Long:  "Reads an Apollo-style lead export (CSV or XLSX), normalizes phones and identities, and writes Zendesk bulk-import CSVs for users and deduplicated organizations.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
