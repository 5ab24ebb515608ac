// Package messages defines Bubbletea message types for the TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
)

// FilterUpdated carries a fresh filter result from the bridge into the
// program. Every projection view re-renders from it.
type FilterUpdated struct {
	Records  []domain.Record
	Snapshot domain.Snapshot
}

// SearchDebounceExpired fires when the search input has been quiet for
// the debounce interval. Seq guards against stale timers: only the
// newest expiry triggers a recompute.
type SearchDebounceExpired struct {
	Seq int
}

// FacetToggled requests toggling one facet value.
type FacetToggled struct {
	Facet domain.FacetID
	Value string
}

// FiltersCleared requests a full reset of search and facet constraints.
type FiltersCleared struct{}

// RecordSelected signals a record was chosen in any projection view.
type RecordSelected struct {
	ID string
}

// DetailClosed signals the detail overlay was dismissed.
type DetailClosed struct{}

// TagAdded requests adding a tag constraint from the detail overlay.
type TagAdded struct {
	Value string
}

// ViewChanged is sent when switching between projection views.
type ViewChanged struct {
	View ViewType
}

// ViewType identifies which projection view is currently active.
type ViewType int

const (
	// ViewObjects is the object list projection.
	ViewObjects ViewType = iota
	// ViewGallery is the card grid projection.
	ViewGallery
	// ViewPlan is the site-plan projection.
	ViewPlan
	// ViewHelp is the help/keybindings view.
	ViewHelp
)

// String returns the string representation of the view type.
func (v ViewType) String() string {
	switch v {
	case ViewObjects:
		return "objects"
	case ViewGallery:
		return "gallery"
	case ViewPlan:
		return "plan"
	case ViewHelp:
		return "help"
	default:
		return "unknown"
	}
}

// Quit signals the application should exit.
type Quit struct{}
