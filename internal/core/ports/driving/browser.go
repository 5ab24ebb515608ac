package driving

import "github.com/antiquarium-labs/lapidarium/internal/core/domain"

// RenderCallback receives the freshly filtered records and a serializable
// state snapshot after every state-mutating operation. The record slice is
// a fresh copy on every call, so consumers can diff safely.
type RenderCallback func(filtered []domain.Record, snap domain.Snapshot)

// Browser is the contract between the filter engine and its views.
// All mutations are synchronous and trigger one recompute-and-notify cycle
// before returning. Debouncing rapid search input is the input adapter's
// responsibility, not the engine's.
type Browser interface {
	// SetSearch replaces the free-text search term.
	SetSearch(term string)

	// ToggleFacetValue adds the value to the facet's constraint set if
	// absent, else removes it. Unknown facet ids are a no-op.
	ToggleFacetValue(id domain.FacetID, value string)

	// SetFacetValues replaces a facet's whole constraint set.
	SetFacetValues(id domain.FacetID, values []string)

	// Reset clears the search term and every facet set.
	Reset()

	// Filtered returns the current filtered result as a fresh slice in
	// dataset order.
	Filtered() []domain.Record

	// Total returns the size of the full dataset after ingestion.
	Total() int

	// Facets returns the page's facet definitions in display order.
	Facets() []domain.Facet

	// FacetRows returns up to max visible menu rows for a facet, sorted
	// by descending exclude-self count, ties broken by first-seen order.
	// Zero-count rows are omitted unless their value is selected.
	FacetRows(id domain.FacetID, max int) []domain.FacetRow

	// Snapshot returns the serializable form of the current filter state.
	Snapshot() domain.Snapshot

	// Record looks a record up by identifier.
	Record(id string) (domain.Record, bool)

	// Subscribe registers a render callback and returns its cancel
	// function. Callbacks run synchronously, in registration order.
	Subscribe(cb RenderCallback) (cancel func())
}
