// Package cli implements the command-line interface.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/antiquarium-labs/lapidarium/internal/core/services"
	"github.com/antiquarium-labs/lapidarium/internal/logger"
)

// version is injected at build time via SetVersion.
var version = "dev"

var (
	verbose     bool
	datasetPath string
)

// settingsService resolves the application settings. Wired by main; a nil
// service falls back to built-in defaults so every command still runs.
var settingsService *services.SettingsService

var rootCmd = &cobra.Command{
	Use:   "lapidarium",
	Short: "Browse and filter the sarcophagus catalogue",
	Long: `Lapidarium is a faceted browser for an archaeological exhibit catalogue.

The same filter state drives three projections of the collection - the
object list, the image gallery and the site plan - and travels between
them as URL-style query parameters.`,
	SilenceUsage: true,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetVerbose(verbose)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")
	rootCmd.PersistentFlags().StringVar(&datasetPath, "dataset", "", "dataset file path or URL (overrides configuration)")
}

// SetVersion sets the version string shown by the version command.
func SetVersion(v string) {
	version = v
}

// SetSettingsService wires the settings service used by all commands.
func SetSettingsService(s *services.SettingsService) {
	settingsService = s
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
