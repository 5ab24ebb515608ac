package driven

import (
	"context"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
)

// SnapshotStore persists the last filter state per page, best effort.
// Errors are logged and ignored by callers; a lost snapshot only costs the
// user their restored filters.
type SnapshotStore interface {
	// Save upserts the snapshot for a page.
	Save(ctx context.Context, page string, snap domain.Snapshot) error

	// Load returns the stored snapshot for a page.
	// Returns domain.ErrNotFound when none exists.
	Load(ctx context.Context, page string) (domain.Snapshot, error)

	// Close releases resources.
	Close() error
}
