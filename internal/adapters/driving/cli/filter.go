package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/services"
)

var (
	filterJSON    bool
	filterHandoff string
)

var filterCmd = &cobra.Command{
	Use:   "filter [query]",
	Short: "Filter the catalogue once and print the matches",
	Long: `Applies a filter query to the catalogue and prints the matching objects.

The query uses the same URL parameter syntax the interactive views hand
off to each other: one parameter per facet with comma-separated values,
plus "search" for free text and "ids" for an identifier whitelist.

Examples:
  lapidarium filter "material=stone"
  lapidarium filter "tags=child,burial&search=lion"
  lapidarium filter --json "search=sarcophagus"`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFilter,
}

func init() {
	filterCmd.Flags().BoolVar(&filterJSON, "json", false, "output matches as JSON")
	filterCmd.Flags().StringVar(&filterHandoff, "handoff", "", "print the handoff URL for the given page instead of the matches")
	rootCmd.AddCommand(filterCmd)
}

func runFilter(cmd *cobra.Command, args []string) error {
	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	s, err := buildSession(cmd.Context(), query, true)
	if err != nil {
		return err
	}

	records := s.engine.Filtered()

	if filterHandoff != "" {
		ids := make([]string, len(records))
		for i, rec := range records {
			ids[i] = rec.ID
		}
		cmd.Println(services.HandoffURL(filterHandoff, s.engine.Snapshot(), ids, s.engine.Total()))
		return nil
	}

	if filterJSON {
		return outputFilterJSON(cmd, records)
	}
	return outputFilterTable(cmd, records, s.engine.Total())
}

func outputFilterJSON(cmd *cobra.Command, records []domain.Record) error {
	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling matches: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputFilterTable(cmd *cobra.Command, records []domain.Record, total int) error {
	if len(records) == 0 {
		cmd.Println("No objects match.")
		return nil
	}

	cmd.Printf("%d of %d objects\n\n", len(records), total)
	for _, rec := range records {
		title := rec.Field("title")
		if title == "" {
			title = rec.Field("object_name")
		}
		cmd.Printf("  %-14s %s\n", rec.ID, title)
		if material := rec.Field("material"); material != "" {
			cmd.Printf("  %-14s %s\n", "", material)
		}
	}
	return nil
}
