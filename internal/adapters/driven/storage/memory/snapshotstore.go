package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/ports/driven"
)

// Ensure SnapshotStore implements the interface.
var _ driven.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is an in-memory implementation of driven.SnapshotStore for
// testing and for runs where persistence is disabled.
type SnapshotStore struct {
	mu    sync.RWMutex
	snaps map[string]domain.Snapshot
}

// NewSnapshotStore creates a new in-memory snapshot store.
func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{
		snaps: make(map[string]domain.Snapshot),
	}
}

// Save stores the snapshot under the page key.
func (s *SnapshotStore) Save(_ context.Context, page string, snap domain.Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snaps[page] = snap
	return nil
}

// Load retrieves the snapshot for the page key.
func (s *SnapshotStore) Load(_ context.Context, page string) (domain.Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	snap, ok := s.snaps[page]
	if !ok {
		return domain.Snapshot{}, fmt.Errorf("snapshot for %q: %w", page, domain.ErrNotFound)
	}
	return snap, nil
}

// Close releases resources (no-op for memory store).
func (s *SnapshotStore) Close() error {
	return nil
}
