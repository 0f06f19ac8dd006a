package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/statements/internal/scale"
	"github.com/sells-group/statements/internal/statement"
)

var statementCmd = &cobra.Command{
	Use:   "statement <rawfacts.json>",
	Short: "Build one filing's statement table",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		stmtType, err := cmd.Flags().GetString("type")
		if err != nil {
			return err
		}
		target, err := parseStatementType(stmtType)
		if err != nil {
			return err
		}

		std, err := loadStandardizer()
		if err != nil {
			return err
		}
		stores, err := loadStores(cmd.Context(), args, "", "")
		if err != nil {
			return err
		}
		if len(stores) != 1 {
			return eris.New("statement: expected exactly one filing")
		}

		table := statement.NewAssembler(std).Build(stores[0], target)
		table = scale.New(std, cfg.Scale.MinAnchorFacts).Apply(table)
		printTable(table)
		return nil
	},
}

func init() {
	statementCmd.Flags().String("type", "is", "statement type: bs, is, or cf")
	rootCmd.AddCommand(statementCmd)
}
