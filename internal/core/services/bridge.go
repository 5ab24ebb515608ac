package services

import (
	"sync"

	"github.com/google/uuid"

	"github.com/antiquarium-labs/lapidarium/internal/core/domain"
	"github.com/antiquarium-labs/lapidarium/internal/core/ports/driving"
	"github.com/antiquarium-labs/lapidarium/internal/logger"
)

// Bridge fans filter results out to registered render callbacks. It is the
// only interface the view adapters see: each callback receives the fresh
// filtered slice and a serializable state snapshot, synchronously, once per
// completed state mutation. Views stay ignorant of each other.
type Bridge struct {
	mu   sync.Mutex
	subs []subscription
}

type subscription struct {
	id string
	cb driving.RenderCallback
}

// NewBridge creates an empty bridge.
func NewBridge() *Bridge {
	return &Bridge{}
}

// Subscribe registers a callback and returns its cancel function.
// Callbacks are invoked in registration order.
func (b *Bridge) Subscribe(cb driving.RenderCallback) (cancel func()) {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := uuid.New().String()
	b.subs = append(b.subs, subscription{id: id, cb: cb})
	logger.Debug("Bridge: subscribed %s (%d total)", id, len(b.subs))

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		for i, s := range b.subs {
			if s.id == id {
				b.subs = append(b.subs[:i], b.subs[i+1:]...)
				return
			}
		}
	}
}

// Notify invokes every callback with the filtered records and snapshot.
// Each callback gets its own copy of the slice so no consumer can corrupt
// another's view of the result.
func (b *Bridge) Notify(filtered []domain.Record, snap domain.Snapshot) {
	b.mu.Lock()
	subs := make([]subscription, len(b.subs))
	copy(subs, b.subs)
	b.mu.Unlock()

	for _, s := range subs {
		out := make([]domain.Record, len(filtered))
		copy(out, filtered)
		s.cb(out, snap)
	}
}

// Len returns the number of active subscriptions.
func (b *Bridge) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
