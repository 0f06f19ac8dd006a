package main

import (
	"fmt"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/statements/internal/stitch"
)

var stitchCmd = &cobra.Command{
	Use:   "stitch <rawfacts.json> [rawfacts.json ...]",
	Short: "Stitch statements from multiple filings into one comparative table",
	Long: `Stitch assembles the target statement for each input filing and merges
them into a single multi-period table. Inputs must be ordered most recent
first; when a period is reported by several filings, the most recent filing
wins. Use --archive with --cik to read every archived filing for an entity
instead of JSON files.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		stmtType, _ := cmd.Flags().GetString("type")
		archivePath, _ := cmd.Flags().GetString("archive")
		cik, _ := cmd.Flags().GetString("cik")
		maxPeriods, _ := cmd.Flags().GetInt("max-periods")
		if maxPeriods == 0 {
			maxPeriods = cfg.Stitch.MaxPeriods
		}

		target, err := parseStatementType(stmtType)
		if err != nil {
			return err
		}
		if archivePath == "" && len(args) == 0 {
			return eris.New("stitch: no input filings (pass JSON files or --archive with --cik)")
		}

		std, err := loadStandardizer()
		if err != nil {
			return err
		}
		stores, err := loadStores(cmd.Context(), args, archivePath, cik)
		if err != nil {
			return err
		}

		stitcher := stitch.New(std, stitch.WithMinAnchors(cfg.Scale.MinAnchorFacts))
		result, err := stitcher.Stitch(cmd.Context(), stores, target, maxPeriods)
		if err != nil {
			return err
		}

		printTable(&result.Table)
		for _, c := range result.Columns {
			fmt.Printf("%s\tsourced from %s\n", c.Label, c.Source)
		}
		return nil
	},
}

func init() {
	stitchCmd.Flags().String("type", "is", "statement type: bs, is, or cf")
	stitchCmd.Flags().Int("max-periods", 0, "maximum period columns (default from config)")
	stitchCmd.Flags().String("archive", "", "sqlite fact archive path")
	stitchCmd.Flags().String("cik", "", "load all archived filings for this CIK")
	rootCmd.AddCommand(stitchCmd)
}
