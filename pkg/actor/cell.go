package actor

import "sync/atomic"

// cell is the atomic copy-on-write holder for *state. The actor is
// single-threaded with respect to every handler, and the rebalance listener
// runs on that same thread (synchronously inside a Poll), so a plain
// guarded swap is enough: no compare-and-swap retry loop is needed. The
// cell exists for clarity. commitAsync callbacks, which run on a
// broker-internal goroutine, only complete their CommitRequest and never
// read or write state.
type cell struct {
	v atomic.Pointer[state]
}

func newCell() *cell {
	c := &cell{}
	c.v.Store(newState())
	return c
}

// get returns the current state snapshot.
func (c *cell) get() *state {
	return c.v.Load()
}

// update applies fn to the current state and stores the result, returning
// the new state. fn must be a pure function; update must only ever be
// called from the actor's own goroutine (or from the rebalance listener,
// which runs on that same goroutine during Poll).
func (c *cell) update(fn func(*state) *state) *state {
	next := fn(c.get())
	c.v.Store(next)
	return next
}

// updateResult is update's counterpart for transitions that also need to
// hand something back to the caller (the FetchRequest a new one
// superseded, the records removed, and so on), without forcing every
// transition to smuggle that value through a closure variable.
func updateResult[T any](c *cell, fn func(*state) (*state, T)) T {
	next, val := fn(c.get())
	c.v.Store(next)
	return val
}
