package domain

// FacetID identifies a filterable dimension.
type FacetID string

// The built-in facets of the exhibit catalogue. Material and type come
// straight from record fields; tags are a delimited-list field; gender and
// goods are joined from lazily loaded auxiliary datasets.
const (
	FacetMaterial FacetID = "material"
	FacetType     FacetID = "type"
	FacetTags     FacetID = "tags"
	FacetGender   FacetID = "gender"
	FacetGoods    FacetID = "goods"
)

// Facet is the static definition of one filterable dimension. Definitions
// are created once at page construction and never mutated; adding a facet
// to a page means adding one definition, nothing else changes.
type Facet struct {
	// ID is the facet identifier, also used as the URL parameter name.
	ID FacetID

	// Label is the human-readable menu label.
	Label string

	// Icon is a short decoration shown next to the label.
	Icon string

	// MultiValue marks facets whose extractor yields zero or more values
	// per record (tags, joined categories). Single-value facets yield at
	// most one.
	MultiValue bool

	// CaseFold makes value comparison case-insensitive for this facet.
	// Matching then happens on lower-cased keys while the first-seen
	// original casing is kept as the display label.
	CaseFold bool

	// Extract returns the normalized value(s) of this facet for a record.
	// Single-value facets return a slice of length zero or one. An
	// extractor backed by a not-yet-loaded auxiliary index returns an
	// empty slice; it never blocks and never errors.
	Extract func(Record) []string
}

// Key returns the comparison key for a raw facet value, folding case for
// case-insensitive facets.
func (f Facet) Key(value string) string {
	if f.CaseFold {
		return foldKey(value)
	}
	return value
}

// FacetRow is one visible row of a facet menu: a value with its live
// exclude-self count and selection state.
type FacetRow struct {
	// Key is the comparison key of the value.
	Key string

	// Label is the display form (original casing for case-folded facets).
	Label string

	// Count is the number of records that would match if this value were
	// the only selection on its facet, under all other active constraints.
	Count int

	// Selected reports whether the value is currently part of the
	// facet's constraint set.
	Selected bool
}
