package main

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/statements/internal/model"
)

var queryCmd = &cobra.Command{
	Use:   "query <rawfacts.json>",
	Short: "Ad hoc fact lookup by concept or label, bypassing statement assembly",
	RunE: func(cmd *cobra.Command, args []string) error {
		concept, _ := cmd.Flags().GetString("concept")
		label, _ := cmd.Flags().GetString("label")
		if (concept == "") == (label == "") {
			return eris.New("query: pass exactly one of --concept or --label")
		}
		if len(args) != 1 {
			return eris.New("query: expected exactly one filing")
		}

		std, err := loadStandardizer()
		if err != nil {
			return err
		}
		stores, err := loadStores(cmd.Context(), args, "", "")
		if err != nil {
			return err
		}
		store := stores[0]

		var facts []model.Fact
		if concept != "" {
			facts = store.ByConcept(concept)
			if len(facts) == 0 {
				facts = store.ByCanonical(std, concept)
			}
		} else {
			facts = store.SearchLabel(std, label)
		}

		if len(facts) == 0 {
			fmt.Println("(no matching facts)")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 2, 4, 2, ' ', 0)
		fmt.Fprintln(w, "concept\tlabel\tvalue\tunit\tperiod\tdimensions")
		for _, f := range facts {
			dims := make([]string, len(f.Dimensions))
			for i, d := range f.Dimensions {
				dims[i] = d.Axis + "=" + d.Member
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
				f.RawConcept, f.Label, f.Value, f.Unit, f.Period.Label(), strings.Join(dims, ","))
		}
		w.Flush()
		return nil
	},
}

func init() {
	queryCmd.Flags().String("concept", "", "exact raw concept or canonical concept name")
	queryCmd.Flags().String("label", "", "case-insensitive label substring")
	rootCmd.AddCommand(queryCmd)
}
