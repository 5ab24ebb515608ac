package domain

import "sort"

// FilterState is the mutable set of active constraints: one value set per
// facet plus a free-text search term. An empty set means "no constraint on
// this facet", never "match nothing". A FilterState is owned by exactly one
// engine instance; views read it only through snapshots.
type FilterState struct {
	// Search is the free-text term. Matching is case-insensitive
	// AND-of-words, not a phrase match.
	Search string

	// Selected holds the active value set per facet. Facet ids are fixed
	// at construction; Reset empties the sets but never removes ids.
	Selected map[FacetID]map[string]struct{}
}

// NewFilterState creates an empty state for the given facet ids.
func NewFilterState(ids []FacetID) *FilterState {
	st := &FilterState{
		Selected: make(map[FacetID]map[string]struct{}, len(ids)),
	}
	for _, id := range ids {
		st.Selected[id] = make(map[string]struct{})
	}
	return st
}

// SetSearch replaces the search term.
func (st *FilterState) SetSearch(term string) {
	st.Search = term
}

// Toggle adds value to the facet's set if absent, else removes it.
// Toggling twice returns the state to exactly its prior form. Unknown
// facet ids are ignored.
func (st *FilterState) Toggle(id FacetID, value string) {
	set, ok := st.Selected[id]
	if !ok {
		return
	}
	if _, has := set[value]; has {
		delete(set, value)
	} else {
		set[value] = struct{}{}
	}
}

// SetValues replaces the facet's whole set. Used for URL-parameter seeding
// and programmatic adds from the detail view. Unknown facet ids are ignored.
func (st *FilterState) SetValues(id FacetID, values []string) {
	if _, ok := st.Selected[id]; !ok {
		return
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		if v != "" {
			set[v] = struct{}{}
		}
	}
	st.Selected[id] = set
}

// Has reports whether value is selected on the facet.
func (st *FilterState) Has(id FacetID, value string) bool {
	_, ok := st.Selected[id][value]
	return ok
}

// Active reports whether the facet has a non-empty constraint set.
func (st *FilterState) Active(id FacetID) bool {
	return len(st.Selected[id]) > 0
}

// Reset clears the search term and every facet set. Facet ids stay in
// place, so a reset state is equivalent to a freshly constructed one.
func (st *FilterState) Reset() {
	st.Search = ""
	for id := range st.Selected {
		st.Selected[id] = make(map[string]struct{})
	}
}

// Snapshot returns the serializable form of the state: sorted value slices
// instead of sets, so equal states always serialize identically.
func (st *FilterState) Snapshot() Snapshot {
	snap := Snapshot{
		Search: st.Search,
		Facets: make(map[FacetID][]string, len(st.Selected)),
	}
	for id, set := range st.Selected {
		values := make([]string, 0, len(set))
		for v := range set {
			values = append(values, v)
		}
		sort.Strings(values)
		snap.Facets[id] = values
	}
	return snap
}

// Apply seeds the state from a snapshot. Facet ids in the snapshot that the
// state does not know are ignored.
func (st *FilterState) Apply(snap Snapshot) {
	st.Search = snap.Search
	for id := range st.Selected {
		st.Selected[id] = make(map[string]struct{})
	}
	for id, values := range snap.Facets {
		st.SetValues(id, values)
	}
}

// Snapshot is the serializable form of a FilterState, passed to render
// callbacks and persisted between page sessions.
type Snapshot struct {
	Search string               `json:"search"`
	Facets map[FacetID][]string `json:"facets"`
}

// IsZero reports whether the snapshot carries no constraints at all.
func (s Snapshot) IsZero() bool {
	if s.Search != "" {
		return false
	}
	for _, values := range s.Facets {
		if len(values) > 0 {
			return false
		}
	}
	return true
}
