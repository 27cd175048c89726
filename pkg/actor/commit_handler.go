package actor

import "github.com/streamkit/kconsumer/pkg/broker"

// handleCommit parks c if a rebalance is in flight — committing offsets
// mid-rebalance can race the group coordinator reassigning the very
// partitions being committed — and issues it to the broker immediately
// otherwise. Parking is capped at Config.PendingCommitsCap; past that, the
// oldest parked commit is evicted and completed with ErrCommitOverflow
// rather than letting pendingCommits grow without bound under a flapping
// rebalance.
func (a *Actor) handleCommit(c *CommitRequest) {
	s := a.cell.get()
	if !s.rebalancing {
		a.commitAsync(c)
		return
	}
	evicted := updateResult(a.cell, func(s *state) (*state, *CommitRequest) {
		return s.withPendingCommitCapped(c, a.cfg.pendingCommitsCap())
	})
	a.log.Debugw("stored-pending-commit", "offsets", c.Offsets)
	if evicted != nil {
		a.log.Warnw("evicted-pending-commit", "offsets", evicted.Offsets)
		evicted.Complete(ErrCommitOverflow)
	}
}

// commitAsync issues c to the broker handle without blocking the actor's
// dispatch loop: CommitAsync's callback may run on a broker-internal
// goroutine, which is exactly why CommitRequest.Complete is sync.Once
// guarded rather than a plain flag.
func (a *Actor) commitAsync(c *CommitRequest) {
	a.guard.With(func(h broker.Handle) error {
		h.CommitAsync(c.Offsets, func(_ map[TopicPartition]OffsetAndMetadata, err error) {
			if err != nil {
				c.Complete(newCommitFailure(err))
				return
			}
			c.Complete(nil)
		})
		return nil
	})
}
