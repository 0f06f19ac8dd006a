package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/statements/internal/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "statements",
	Short: "Normalize XBRL facts into stitched multi-period financial statements",
	Long:  "Reads extracted XBRL fact lists (raw-facts JSON or a sqlite fact archive), standardizes filer-specific concepts against canonical mapping tables, and builds single-filing or stitched multi-filing statement tables.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := cfg.Validate(); err != nil {
			return err
		}

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
