package driven

import (
	"context"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
)

// AuxiliaryLoader lazily loads secondary datasets keyed by source URL.
//
// Guarantees:
//   - at most one fetch per source; concurrent loads share the in-flight call
//   - a fetch failure or malformed payload degrades to an empty index,
//     never an error ("no data yet" and "no matches" are indistinguishable)
//   - once loaded, the index is cached for the page lifetime
//
// The loader knows nothing about filter engines. Completion is signalled
// through the onReady callback; wiring that signal to a recompute is the
// caller's job.
type AuxiliaryLoader interface {
	// Get returns the cached index for a source URL and whether it has
	// been loaded yet. It never blocks.
	Get(url string) (domain.SecondaryIndex, bool)

	// Load fetches the source, blocking until the index is available.
	// The result is never nil; repeated calls return the cached index.
	Load(ctx context.Context, cfg domain.AuxiliarySettings) domain.SecondaryIndex

	// LoadAsync starts a fetch in the background and invokes onReady with
	// the index once resolved. onReady runs even when the index was
	// already cached.
	LoadAsync(cfg domain.AuxiliarySettings, onReady func(domain.SecondaryIndex))
}
