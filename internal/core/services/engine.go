package services

import (
	"sort"
	"sync"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/ports/driving"
	"github.com/antiquarium-labs/lapidarium/internal/logger"
)

// Ensure Engine implements the interface.
var _ driving.Browser = (*Engine)(nil)

// Engine is the faceted filter engine for one page. It owns the filter
// state, indexes the dataset into per-facet posting lists, and notifies
// the bridge after every mutation. Construct one per page with the page's
// dataset, facet definitions and optional extra predicate; there is no
// shared global instance.
//
// Internally every facet value keeps a roaring bitmap of the dataset
// positions exhibiting it. The filtered set is the intersection of the
// extra-predicate bitmap, the search bitmap and one constraint bitmap per
// active facet; exclude-self counts intersect each value's postings with
// the base built from all OTHER constraints. Positions ascend in dataset
// order, so bitmap iteration yields stable ordering for free.
type Engine struct {
	mu sync.Mutex

	facets       []domain.Facet
	facetPos     map[domain.FacetID]int
	searchFields []string

	state  *domain.FilterState
	bridge *Bridge

	records []domain.Record
	byID    map[string]int
	blobs   []string

	extra     func(domain.Record) bool
	extraBits *roaring.Bitmap // nil = unrestricted

	indexes []*facetIndex
	hasData bool
}

// facetIndex holds the posting lists of one facet: comparison key to
// position bitmap, plus the first-seen display label and scan order per
// key (used for count-tie breaking).
type facetIndex struct {
	postings  map[string]*roaring.Bitmap
	labels    map[string]string
	firstSeen map[string]int
}

// NewEngine creates an engine for the given facet definitions and
// searchable field list. Call SetData before filtering.
func NewEngine(facets []domain.Facet, searchFields []string) *Engine {
	e := &Engine{
		facets:       facets,
		facetPos:     make(map[domain.FacetID]int, len(facets)),
		searchFields: searchFields,
		bridge:       NewBridge(),
	}
	ids := make([]domain.FacetID, len(facets))
	for i, f := range facets {
		e.facetPos[f.ID] = i
		ids[i] = f.ID
	}
	e.state = domain.NewFilterState(ids)
	return e
}

// SetData hands the dataset to the engine and triggers the initial
// recompute-and-notify cycle. The extra predicate is a page-scoped
// restriction (identifier whitelist, geocoded-only); nil means none.
// Records are held by reference and never mutated.
func (e *Engine) SetData(records []domain.Record, extra func(domain.Record) bool) {
	e.mu.Lock()
	e.records = records
	e.extra = extra
	e.hasData = true

	e.byID = make(map[string]int, len(records))
	e.blobs = make([]string, len(records))
	for i, rec := range records {
		e.byID[rec.ID] = i
		e.blobs[i] = searchBlob(rec, e.searchFields)
	}

	e.extraBits = nil
	if extra != nil {
		e.extraBits = roaring.New()
		for i, rec := range records {
			if extra(rec) {
				e.extraBits.Add(uint32(i))
			}
		}
	}

	e.indexes = make([]*facetIndex, len(e.facets))
	for i, f := range e.facets {
		e.indexes[i] = buildFacetIndex(records, f)
	}
	logger.Info("Engine: indexed %d records across %d facets", len(records), len(e.facets))
	e.mu.Unlock()

	e.notify()
}

// RefreshFacet rebuilds one facet's posting lists and recomputes. Wire
// this to the auxiliary loader's ready signal for externally-sourced
// facets: until then they index as "no value", afterwards the view catches
// up (eventually consistent). Unknown ids and a missing dataset are no-ops.
func (e *Engine) RefreshFacet(id domain.FacetID) {
	e.mu.Lock()
	i, ok := e.facetPos[id]
	if !ok || !e.hasData {
		e.mu.Unlock()
		return
	}
	e.indexes[i] = buildFacetIndex(e.records, e.facets[i])
	logger.Debug("Engine: refreshed facet %q (%d values)", id, len(e.indexes[i].postings))
	e.mu.Unlock()

	e.notify()
}

func buildFacetIndex(records []domain.Record, f domain.Facet) *facetIndex {
	ix := &facetIndex{
		postings:  make(map[string]*roaring.Bitmap),
		labels:    make(map[string]string),
		firstSeen: make(map[string]int),
	}
	for pos, rec := range records {
		for _, v := range f.Extract(rec) {
			key := f.Key(v)
			if key == "" {
				continue
			}
			bm, ok := ix.postings[key]
			if !ok {
				bm = roaring.New()
				ix.postings[key] = bm
				ix.labels[key] = v
				ix.firstSeen[key] = len(ix.firstSeen)
			}
			bm.Add(uint32(pos))
		}
	}
	return ix
}

// --- state mutations (each runs one recompute-and-notify cycle) ---

// SetSearch replaces the search term. Always synchronous; debouncing rapid
// keystrokes happens at the input boundary.
func (e *Engine) SetSearch(term string) {
	e.mu.Lock()
	e.state.SetSearch(term)
	e.mu.Unlock()
	e.notify()
}

// ToggleFacetValue adds the value if absent, else removes it. Idempotent
// under repetition: two identical toggles restore the prior state.
func (e *Engine) ToggleFacetValue(id domain.FacetID, value string) {
	e.mu.Lock()
	e.state.Toggle(id, value)
	e.mu.Unlock()
	e.notify()
}

// SetFacetValues replaces a facet's whole constraint set.
func (e *Engine) SetFacetValues(id domain.FacetID, values []string) {
	e.mu.Lock()
	e.state.SetValues(id, values)
	e.mu.Unlock()
	e.notify()
}

// Reset clears all constraints. Facet ids survive.
func (e *Engine) Reset() {
	e.mu.Lock()
	e.state.Reset()
	e.mu.Unlock()
	e.notify()
}

// ApplySnapshot seeds the whole state at once (URL parameters, restored
// snapshots). Unknown facet ids in the snapshot are ignored.
func (e *Engine) ApplySnapshot(snap domain.Snapshot) {
	e.mu.Lock()
	e.state.Apply(snap)
	e.mu.Unlock()
	e.notify()
}

// --- reads ---

// Filtered returns the current filtered records, freshly allocated, in
// dataset order.
func (e *Engine) Filtered() []domain.Record {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.filteredLocked()
}

// Total returns the ingested dataset size.
func (e *Engine) Total() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.records)
}

// Facets returns the facet definitions in display order.
func (e *Engine) Facets() []domain.Facet {
	return e.facets
}

// Snapshot returns the serializable current state.
func (e *Engine) Snapshot() domain.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state.Snapshot()
}

// Record looks a record up by identifier.
func (e *Engine) Record(id string) (domain.Record, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	pos, ok := e.byID[id]
	if !ok {
		return domain.Record{}, false
	}
	return e.records[pos], true
}

// Subscribe registers a render callback on the bridge.
func (e *Engine) Subscribe(cb driving.RenderCallback) (cancel func()) {
	return e.bridge.Subscribe(cb)
}

// FacetRows returns the visible menu rows of a facet: exclude-self counts,
// sorted by descending count with ties broken by first-seen dataset order.
// Zero-count values are hidden unless currently selected, so a selection
// that yields nothing stays visible and checked. max caps the row count
// but never evicts a selected row; max <= 0 means no cap.
func (e *Engine) FacetRows(id domain.FacetID, max int) []domain.FacetRow {
	e.mu.Lock()
	defer e.mu.Unlock()

	i, ok := e.facetPos[id]
	if !ok || !e.hasData {
		return nil
	}
	f := e.facets[i]
	ix := e.indexes[i]
	base := e.baseBitsLocked(i)

	selectedKeys := make(map[string]string, len(e.state.Selected[id]))
	for v := range e.state.Selected[id] {
		selectedKeys[f.Key(v)] = v
	}

	rows := make([]domain.FacetRow, 0, len(ix.postings))
	for key, bm := range ix.postings {
		count := int(roaring.And(base, bm).GetCardinality())
		_, selected := selectedKeys[key]
		if count == 0 && !selected {
			continue
		}
		rows = append(rows, domain.FacetRow{
			Key:      key,
			Label:    ix.labels[key],
			Count:    count,
			Selected: selected,
		})
	}
	// Selected values absent from the dataset still get a zero row.
	for key, raw := range selectedKeys {
		if _, indexed := ix.postings[key]; !indexed {
			rows = append(rows, domain.FacetRow{Key: key, Label: raw, Count: 0, Selected: true})
		}
	}

	ord := func(key string) int {
		if o, ok := ix.firstSeen[key]; ok {
			return o
		}
		return len(ix.firstSeen)
	}
	sort.SliceStable(rows, func(a, b int) bool {
		if rows[a].Count != rows[b].Count {
			return rows[a].Count > rows[b].Count
		}
		return ord(rows[a].Key) < ord(rows[b].Key)
	})

	if max > 0 && len(rows) > max {
		kept := rows[:max:max]
		for _, row := range rows[max:] {
			if row.Selected {
				kept = append(kept, row)
			}
		}
		rows = kept
	}
	return rows
}

// Counts returns the exclude-self count map for every facet, keyed by
// comparison key.
func (e *Engine) Counts() map[domain.FacetID]map[string]int {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make(map[domain.FacetID]map[string]int, len(e.facets))
	for i, f := range e.facets {
		base := e.baseBitsLocked(i)
		per := make(map[string]int, len(e.indexes[i].postings))
		for key, bm := range e.indexes[i].postings {
			per[key] = int(roaring.And(base, bm).GetCardinality())
		}
		out[f.ID] = per
	}
	return out
}

// --- internals ---

// notify recomputes outside the lock window of the mutation and invokes
// the bridge synchronously. Callbacks may call back into the engine.
func (e *Engine) notify() {
	e.mu.Lock()
	if !e.hasData {
		e.mu.Unlock()
		return
	}
	filtered := e.filteredLocked()
	snap := e.state.Snapshot()
	e.mu.Unlock()

	e.bridge.Notify(filtered, snap)
}

func (e *Engine) filteredLocked() []domain.Record {
	if !e.hasData {
		return nil
	}
	bits := e.baseBitsLocked(-1)
	out := make([]domain.Record, 0, bits.GetCardinality())
	it := bits.Iterator()
	for it.HasNext() {
		out = append(out, e.records[it.Next()])
	}
	return out
}

// baseBitsLocked intersects the extra-predicate bitmap, the search bitmap
// and every active facet constraint except the facet at position skip
// (skip < 0 excludes nothing). The result is always a fresh bitmap.
func (e *Engine) baseBitsLocked(skip int) *roaring.Bitmap {
	base := roaring.New()
	base.AddRange(0, uint64(len(e.records)))

	if e.extraBits != nil {
		base.And(e.extraBits)
	}
	if e.state.Search != "" {
		base.And(e.searchBitsLocked())
	}
	for i, f := range e.facets {
		if i == skip || !e.state.Active(f.ID) {
			continue
		}
		base.And(e.constraintBitsLocked(i))
	}
	return base
}

func (e *Engine) searchBitsLocked() *roaring.Bitmap {
	bm := roaring.New()
	for i := range e.blobs {
		if matchesSearch(e.blobs[i], e.state.Search) {
			bm.Add(uint32(i))
		}
	}
	return bm
}

// constraintBitsLocked unions the postings of a facet's selected values.
// A selected value with no postings contributes nothing, so a constraint
// that matches no record yields an empty bitmap, never a wildcard.
func (e *Engine) constraintBitsLocked(i int) *roaring.Bitmap {
	f := e.facets[i]
	ix := e.indexes[i]
	bm := roaring.New()
	for v := range e.state.Selected[f.ID] {
		if postings, ok := ix.postings[f.Key(v)]; ok {
			bm.Or(postings)
		}
	}
	return bm
}
