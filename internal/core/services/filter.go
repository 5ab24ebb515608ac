package services

import (
	"strings"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
)

// This file holds the reference filtering semantics as pure functions over
// a dataset scan. The stateful Engine computes the same results through
// bitmap posting lists; the scan versions stay the source of truth and are
// cross-checked against the engine in tests.

// searchBlob concatenates the searchable fields of a record, space-joined
// and lower-cased, in the fixed configured order.
func searchBlob(rec domain.Record, fields []string) string {
	parts := make([]string, 0, len(fields))
	for _, f := range fields {
		if v := rec.Field(f); v != "" {
			parts = append(parts, v)
		}
	}
	return strings.ToLower(strings.Join(parts, " "))
}

// matchesSearch reports whether every whitespace-separated word of the
// term appears as a substring of the blob. Multi-word terms are an AND of
// independent substrings, not a phrase match.
func matchesSearch(blob, term string) bool {
	for _, word := range strings.Fields(strings.ToLower(term)) {
		if !strings.Contains(blob, word) {
			return false
		}
	}
	return true
}

// matchesFacet reports whether the record's extracted value(s) intersect
// the facet's constraint set. A record with no value never matches an
// active constraint; absence is not a wildcard. Comparison folds case for
// case-insensitive facets.
func matchesFacet(rec domain.Record, f domain.Facet, selected map[string]struct{}) bool {
	if len(selected) == 0 {
		return true
	}
	keys := make(map[string]struct{}, len(selected))
	for v := range selected {
		keys[f.Key(v)] = struct{}{}
	}
	for _, v := range f.Extract(rec) {
		if _, ok := keys[f.Key(v)]; ok {
			return true
		}
	}
	return false
}

// passes applies the full predicate chain to one record, optionally
// skipping a single facet (exclude-self counting). skip < 0 skips nothing.
func passes(rec domain.Record, st *domain.FilterState, facets []domain.Facet,
	searchFields []string, extra func(domain.Record) bool, skip int,
) bool {
	if extra != nil && !extra(rec) {
		return false
	}
	if st.Search != "" && !matchesSearch(searchBlob(rec, searchFields), st.Search) {
		return false
	}
	for i, f := range facets {
		if i == skip {
			continue
		}
		if !st.Active(f.ID) {
			continue
		}
		if !matchesFacet(rec, f, st.Selected[f.ID]) {
			return false
		}
	}
	return true
}

// ComputeFiltered returns the records passing the extra predicate, the
// search term and every active facet constraint, in dataset order, as a
// fresh slice.
func ComputeFiltered(records []domain.Record, st *domain.FilterState, facets []domain.Facet,
	searchFields []string, extra func(domain.Record) bool,
) []domain.Record {
	out := make([]domain.Record, 0, len(records))
	for _, rec := range records {
		if passes(rec, st, facets, searchFields, extra, -1) {
			out = append(out, rec)
		}
	}
	return out
}

// ComputeFacetCounts returns, per facet and comparison key, the number of
// distinct records exhibiting that value among the records that satisfy
// every OTHER active constraint plus the search term. Excluding a facet's
// own constraint is what lets the UI preview the effect of toggling each
// value while selections on that facet are active.
func ComputeFacetCounts(records []domain.Record, st *domain.FilterState, facets []domain.Facet,
	searchFields []string, extra func(domain.Record) bool,
) map[domain.FacetID]map[string]int {
	counts := make(map[domain.FacetID]map[string]int, len(facets))
	for i, f := range facets {
		perValue := make(map[string]int)
		for _, rec := range records {
			if !passes(rec, st, facets, searchFields, extra, i) {
				continue
			}
			seen := make(map[string]struct{}, 2)
			for _, v := range f.Extract(rec) {
				key := f.Key(v)
				if key == "" {
					continue
				}
				if _, dup := seen[key]; dup {
					continue
				}
				seen[key] = struct{}{}
				perValue[key]++
			}
		}
		counts[f.ID] = perValue
	}
	return counts
}

// WhitelistPredicate restricts the working set to the given identifiers.
// It combines with every other constraint by AND; it restricts, never
// expands. An empty id list yields a predicate matching nothing.
func WhitelistPredicate(ids []string) func(domain.Record) bool {
	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if id != "" {
			set[id] = struct{}{}
		}
	}
	return func(rec domain.Record) bool {
		_, ok := set[rec.ID]
		return ok
	}
}

// GeocodedPredicate restricts the working set to records that have
// geometry on the site plan.
func GeocodedPredicate(geometries []domain.Geometry) func(domain.Record) bool {
	set := make(map[string]struct{}, len(geometries))
	for _, g := range geometries {
		if g.RecordID != "" {
			set[g.RecordID] = struct{}{}
		}
	}
	return func(rec domain.Record) bool {
		_, ok := set[rec.ID]
		return ok
	}
}
