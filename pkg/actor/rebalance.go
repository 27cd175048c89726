package actor

import "github.com/streamkit/kconsumer/pkg/broker"

// Actor implements broker.RebalanceListener directly: Subscribe and
// SubscribePattern are handed `a` itself as the listener, and the broker
// handle invokes OnPartitionsRevoked/OnPartitionsAssigned synchronously
// from inside Poll, on the actor's own goroutine. No request-queue
// round-trip is involved — by the time Poll returns, every registered
// OnRebalance hook has already observed the change.

// OnPartitionsRevoked completes every outstanding FetchRequest for a
// revoked partition with (empty, TopicPartitionRevoked), then notifies
// every registered OnRebalance hook in registration order.
func (a *Actor) OnPartitionsRevoked(revoked PartitionSet) {
	var removedCount int
	next := a.cell.update(func(s *state) *state {
		ns, removed := s.withoutFetches(revoked)
		removedCount = len(removed)
		for _, fr := range removed {
			fr.Complete(nil, TopicPartitionRevoked)
		}
		return ns.withRebalancing(true)
	})
	if len(revoked) > 0 {
		a.log.Infow("partitions revoked", "partitions", revoked.Slice())
	}
	if removedCount > 0 {
		a.log.Debugw("revoked-fetches-without-records", "count", removedCount)
	}
	for _, h := range next.onRebalances {
		h.revoked(revoked)
	}
}

// OnPartitionsAssigned notifies every registered OnRebalance hook in
// registration order, then clears the rebalancing flag. It installs no
// fetch demand itself; that only happens once a caller issues a
// FetchRequest for an assigned partition. Parked commits are flushed by
// handlePoll once the broker handle's guard has been released — not here,
// since this callback runs synchronously inside a guarded Poll and
// commitAsync itself needs the guard.
func (a *Actor) OnPartitionsAssigned(assigned PartitionSet) {
	s := a.cell.get()
	if len(assigned) > 0 {
		a.log.Infow("partitions assigned", "partitions", assigned.Slice())
	}
	for _, h := range s.onRebalances {
		h.assigned(assigned)
	}
	a.cell.update(func(s *state) *state { return s.withRebalancing(false) })
}

func (a *Actor) handleAssignment(r *AssignmentRequest) {
	s := a.cell.get()
	if r.OnRebalance != nil {
		s = a.cell.update(func(s *state) *state { return s.withOnRebalance(*r.OnRebalance) })
		a.log.Debugw("stored-on-rebalance")
	}
	if !s.streaming {
		s = a.cell.update(func(s *state) *state { return s.asStreaming() })
		a.log.Infow("streaming")
	}
	var res AssignmentResult
	if !s.subscribed {
		res.Err = ErrNotSubscribed
	} else {
		a.guard.With(func(h broker.Handle) error {
			res.Assignment = h.Assignment()
			return nil
		})
	}
	if r.Result != nil {
		select {
		case r.Result <- res:
		default:
		}
	}
}
