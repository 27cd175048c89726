package actor

import (
	"github.com/streamkit/kconsumer/pkg/broker"
)

// handlePoll runs one iteration of the poll/pause/resume/distribute cycle.
//
// Partitions with no live FetchRequest are paused so the broker never
// buffers records nobody is waiting on; partitions with a live
// FetchRequest are resumed. When there is no fetch demand at all, Poll is
// still called, but with a zero timeout — group heartbeats and rebalance
// processing still need the broker's event loop to turn, it just must not
// block waiting for records nobody asked for.
//
// A batch containing records for a partition outside the current fetch
// demand, or any records at all during a zero-timeout no-demand poll, is
// a fatal invariant violation: it means the broker handle paused/resumed
// incorrectly, or is delivering records the actor never requested.
//
// Poll only runs once subscribed and streaming; otherwise it is a no-op,
// since there is nothing assigned yet to pause/resume/poll against.
func (a *Actor) handlePoll() error {
	s := a.cell.get()
	if !(s.subscribed && s.streaming) {
		return nil
	}
	demand := s.fetchDemand()
	initialRebalancing := s.rebalancing

	var assigned PartitionSet
	var batch broker.Batch
	var pollErr error
	err := a.guard.With(func(h broker.Handle) error {
		assigned = h.Assignment()
		toPause := Difference(assigned, demand)
		toResume := Intersect(assigned, demand)
		if len(toPause) > 0 {
			h.Pause(toPause)
		}
		if len(toResume) > 0 {
			h.Resume(toResume)
		}
		timeout := a.cfg.PollTimeout
		if len(demand) == 0 {
			timeout = 0
		}
		batch, pollErr = h.Poll(a.runCtx, timeout)
		return pollErr
	})

	// The guard is released now; the rebalance listener may have run
	// synchronously inside Poll above, so this is the first point at
	// which it is safe to flush parked commits via commitAsync (which
	// itself needs the guard).
	a.flushPendingCommitsIfRebalanceEnded(initialRebalancing)

	if err != nil {
		a.log.Errorw("poll failed", "error", err)
		return nil
	}
	if batch == nil {
		return nil
	}

	delivered := batch.Partitions()
	if len(demand) == 0 {
		if len(delivered) > 0 {
			return &UnexpectedRecordsError{Partitions: delivered, ZeroPoll: true}
		}
		return nil
	}
	if unexpected := Difference(delivered, demand); len(unexpected) > 0 {
		return &UnexpectedRecordsError{Partitions: unexpected}
	}

	for p := range Intersect(delivered, demand) {
		records := batch.Records(p)
		byStream := s.fetches[p]
		a.cell.update(func(cur *state) *state {
			ns, _ := cur.withoutFetches(NewPartitionSet(p))
			return ns
		})
		for _, fr := range byStream {
			fr.Complete(records, FetchedRecords)
		}
		a.log.Debugw("completed-fetches-with-records", "partition", p, "streams", len(byStream), "records", len(records))
	}
	return nil
}

// flushPendingCommitsIfRebalanceEnded issues every commit parked while a
// rebalance was in flight, once that rebalance has just ended
// (initialRebalancing was true and the current state no longer is). Must
// only be called after the guard used for this Poll has been released,
// since commitAsync acquires it itself.
func (a *Actor) flushPendingCommitsIfRebalanceEnded(initialRebalancing bool) {
	cur := a.cell.get()
	if !(initialRebalancing && !cur.rebalancing) || len(cur.pendingCommits) == 0 {
		return
	}
	pending := cur.pendingCommits
	a.cell.update(func(s *state) *state { return s.withoutPendingCommits() })
	a.log.Infow("committed-pending-commits", "count", len(pending))
	for _, c := range pending {
		a.commitAsync(c)
	}
}
