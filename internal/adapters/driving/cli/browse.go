package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"runtime/debug"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/antiquarium-labs/lapidarium/internal/adapters/driven/storage/sqlite"
	"github.com/antiquarium-labs/lapidarium/internal/adapters/driving/tui"
	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/ports/driven"
	"github.com/antiquarium-labs/lapidarium/internal/logger"
)

var browsePage string

var browseCmd = &cobra.Command{
	Use:   "browse [query]",
	Short: "Launch the interactive exhibit browser",
	Long: `Launch the interactive terminal browser for the catalogue.

Three projections share one filter state: the object list, the image
gallery and the site plan. An optional query seeds the filters the same
way a handoff URL would; without one the last filter state of the page
is restored.

Controls:
  ↑/k, ↓/j  - Navigate
  /         - Focus search
  f         - Focus facet menus
  space     - Toggle facet value
  tab       - Next projection
  u         - Show handoff URL
  ?         - Help
  q         - Quit`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBrowse,
}

func init() {
	browseCmd.Flags().StringVar(&browsePage, "page", "objects.html", "page identity used for snapshot restore and handoff")
	rootCmd.AddCommand(browseCmd)
}

func runBrowse(cmd *cobra.Command, args []string) error {
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in browser: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	query := ""
	if len(args) > 0 {
		query = args[0]
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	s, err := buildSession(ctx, query, false)
	if err != nil {
		return err
	}
	s.startAuxiliary()
	s.startWatch(ctx)

	snapshots := openSnapshotStore(s.settings)
	if snapshots != nil {
		defer snapshots.Close() //nolint:errcheck // best-effort close
	}

	// A seeding query wins over the stored snapshot; restore only runs on
	// a bare launch.
	if query == "" && snapshots != nil {
		if snap, err := snapshots.Load(ctx, browsePage); err == nil {
			s.engine.ApplySnapshot(snap)
		} else if !errors.Is(err, domain.ErrNotFound) {
			logger.Warn("CLI: snapshot restore failed: %v", err)
		}
	}

	app, err := tui.NewApp(&tui.Ports{
		Browser:    s.engine,
		Settings:   s.settings,
		Geometries: s.loadGeometries(ctx),
		Page:       browsePage,
	})
	if err != nil {
		return fmt.Errorf("creating browser: %w", err)
	}

	p := tea.NewProgram(app, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("browser error: %w", err)
	}

	if snapshots != nil {
		if err := snapshots.Save(ctx, browsePage, s.engine.Snapshot()); err != nil {
			logger.Warn("CLI: snapshot save failed: %v", err)
		}
	}
	return nil
}

// openSnapshotStore opens the per-page filter snapshot database. Persistence
// is best effort; a failed open just disables restore for this run.
func openSnapshotStore(settings *domain.AppSettings) driven.SnapshotStore {
	if !settings.Snapshot.Enabled {
		return nil
	}
	store, err := sqlite.NewStore(settings.Snapshot.Dir)
	if err != nil {
		logger.Warn("CLI: snapshot store unavailable: %v", err)
		return nil
	}
	return store
}
