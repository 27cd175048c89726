package actor

import (
	"sync"
	"sync/atomic"

	"github.com/streamkit/kconsumer/pkg/broker"
)

// HandleGuard provides scoped, exclusive access to a non-thread-safe broker
// handle. The actor is single-threaded with respect to the guard by
// construction; the guard exists to reject accidental concurrent use (a
// stray caller reaching the handle from outside the actor, or a background
// close path) rather than to arbitrate routine contention.
type HandleGuard struct {
	handle broker.Handle
	mu     sync.Mutex
	busy   int32
}

// NewHandleGuard wraps handle for exclusive, scoped access.
func NewHandleGuard(handle broker.Handle) *HandleGuard {
	return &HandleGuard{handle: handle}
}

// With runs fn with exclusive access to the guarded handle. Re-entrant
// calls (calling With again from inside fn, on the same goroutine) panic
// immediately rather than deadlocking, since a deadlocked actor would hang
// silently forever with no indication of the bug.
func (g *HandleGuard) With(fn func(broker.Handle) error) error {
	if !atomic.CompareAndSwapInt32(&g.busy, 0, 1) {
		panic("actor: re-entrant HandleGuard.With")
	}
	g.mu.Lock()
	defer func() {
		g.mu.Unlock()
		atomic.StoreInt32(&g.busy, 0)
	}()
	return fn(g.handle)
}
