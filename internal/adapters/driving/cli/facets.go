package cli

import (
	"github.com/spf13/cobra"
)

var facetsCmd = &cobra.Command{
	Use:   "facets [query]",
	Short: "Print the facet menus with live counts",
	Long: `Prints every enabled facet with the counts a browser page would show
under the given filter query.

Each count answers "how many objects would match if this value were the
only selection on its facet", so a facet's own constraint never empties
its menu. Selected values are marked and always listed, even at zero.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFacets,
}

func init() {
	rootCmd.AddCommand(facetsCmd)
}

func runFacets(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	s, err := buildSession(cmd.Context(), query, true)
	if err != nil {
		return err
	}

	for _, facet := range s.engine.Facets() {
		cmd.Printf("%s\n", facet.Label)
		rows := s.engine.FacetRows(facet.ID, s.settings.Facets.MaxMenuItems)
		if len(rows) == 0 {
			cmd.Println("  (no values)")
			cmd.Println()
			continue
		}
		for _, row := range rows {
			mark := " "
			if row.Selected {
				mark = "x"
			}
			cmd.Printf("  [%s] %s (%d)\n", mark, row.Label, row.Count)
		}
		cmd.Println()
	}
	return nil
}
