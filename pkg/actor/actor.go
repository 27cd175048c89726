package actor

import (
	"context"
	"time"

	"github.com/streamkit/kconsumer/pkg/broker"
)

// Actor is the serialized request-dispatch core. One goroutine — the one
// running Run — ever touches the guarded broker handle or mutates state;
// every other goroutine interacts with the actor only by sending it a
// Request and waiting on that Request's own completion.
type Actor struct {
	guard  *HandleGuard
	cell   *cell
	cfg    Config
	log    Logger
	reqs   chan Request
	closed chan struct{}
	runCtx context.Context
}

// New constructs an Actor around handle, ready to Run. The request queue is
// created but not yet being drained until Run is called.
func New(handle broker.Handle, cfg Config) *Actor {
	return &Actor{
		guard:  NewHandleGuard(handle),
		cell:   newCell(),
		cfg:    cfg,
		log:    cfg.logger(),
		reqs:   make(chan Request, cfg.requestQueueCap()),
		closed: make(chan struct{}),
		runCtx: context.Background(),
	}
}

// Enqueue submits req to the actor's FIFO. Requests are dispatched strictly
// in the order Enqueue delivers them to the channel.
func (a *Actor) Enqueue(req Request) {
	select {
	case a.reqs <- req:
	case <-a.closed:
	}
}

// Run dequeues and dispatches requests until ctx is cancelled, at which
// point it tears down any outstanding FetchRequests before returning.
// Dispatch never rejects a request: every Request variant has a total
// handler.
func (a *Actor) Run(ctx context.Context) error {
	a.runCtx = ctx
	defer a.teardown()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case req := <-a.reqs:
			if err := a.dispatch(req); err != nil {
				return err
			}
		}
	}
}

func (a *Actor) dispatch(req Request) error {
	defer a.dumpState("state after dispatch")
	switch r := req.(type) {
	case *AssignmentRequest:
		a.handleAssignment(r)
	case *PollRequest:
		return a.handlePoll()
	case *SubscribeTopicsRequest:
		a.handleSubscribeTopics(r)
	case *SubscribePatternRequest:
		a.handleSubscribePattern(r)
	case *FetchRequest:
		a.handleFetch(r)
	case *CommitRequest:
		a.handleCommit(r)
	}
	return nil
}

// teardown completes every outstanding FetchRequest with
// (empty, TopicPartitionRevoked), matching the State lifecycle invariant
// that no uncompleted FetchRequest may outlive the actor.
func (a *Actor) teardown() {
	close(a.closed)
	s := a.cell.get()
	for p, byStream := range s.fetches {
		for _, fr := range byStream {
			fr.Complete(nil, TopicPartitionRevoked)
		}
		_ = p
	}
}

// RunPollTimer enqueues a PollRequest every interval until ctx is
// cancelled. It runs as its own goroutine so a slow handler never causes
// the timer itself to drift into the request queue's processing latency.
func (a *Actor) RunPollTimer(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			a.Enqueue(&PollRequest{})
		}
	}
}
