package services

import (
	"net/url"
	"sort"
	"strings"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/logger"
)

// The query codec is the stateless cross-page handoff contract: filter
// state travels between views as URL query parameters, one parameter per
// facet id with comma-separated values, plus "search" and the "ids"
// whitelist. Encode-then-decode of a state reproduces an equivalent state.
//
// Individual values must not contain the comma separator; the catalogue's
// vocabularies respect that.

const idsParam = "ids"

// EncodeQuery serializes a snapshot and optional identifier whitelist into
// a query string. The whitelist is omitted when empty or when it covers
// the whole dataset (total > 0 and len(ids) >= total), matching the
// behaviour of the original views: a full set carries no restriction.
func EncodeQuery(snap domain.Snapshot, ids []string, total int) string {
	params := url.Values{}
	if snap.Search != "" {
		params.Set("search", snap.Search)
	}

	facetIDs := make([]string, 0, len(snap.Facets))
	for id := range snap.Facets {
		facetIDs = append(facetIDs, string(id))
	}
	sort.Strings(facetIDs)
	for _, id := range facetIDs {
		values := snap.Facets[domain.FacetID(id)]
		if len(values) > 0 {
			params.Set(id, strings.Join(values, ","))
		}
	}

	if len(ids) > 0 && (total <= 0 || len(ids) < total) {
		params.Set(idsParam, strings.Join(ids, ","))
	}
	return params.Encode()
}

// DecodeQuery parses a query string into a snapshot plus the identifier
// whitelist. Only the given facet ids are consumed; parameters naming
// unknown facets are ignored as a no-op. A malformed query yields an empty
// snapshot rather than an error: seeding is best effort.
func DecodeQuery(raw string, known []domain.FacetID) (domain.Snapshot, []string) {
	snap := domain.Snapshot{Facets: make(map[domain.FacetID][]string, len(known))}
	for _, id := range known {
		snap.Facets[id] = nil
	}

	params, err := url.ParseQuery(strings.TrimPrefix(raw, "?"))
	if err != nil {
		logger.Warn("Codec: unparsable query %q: %v", raw, err)
		return snap, nil
	}

	snap.Search = params.Get("search")
	for _, id := range known {
		if v := params.Get(string(id)); v != "" {
			snap.Facets[id] = splitParam(v)
		}
	}

	var ids []string
	if v := params.Get(idsParam); v != "" {
		ids = splitParam(v)
	}
	return snap, ids
}

// HandoffURL appends the encoded state to a sibling page location, so the
// filtered working set survives a full page load.
func HandoffURL(page string, snap domain.Snapshot, ids []string, total int) string {
	q := EncodeQuery(snap, ids, total)
	if q == "" {
		return page
	}
	return page + "?" + q
}

func splitParam(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			out = append(out, v)
		}
	}
	return out
}
