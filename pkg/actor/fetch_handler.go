package actor

import "github.com/streamkit/kconsumer/pkg/broker"

// handleFetch installs fr as the fetch demand for (fr.Partition, fr.Stream).
//
// If the partition is not currently assigned, fr is completed immediately
// with (empty, TopicPartitionRevoked): there is nothing to wait for. If a
// prior FetchRequest already occupied that (partition, stream) slot — a
// caller issuing a second Fetch before its first one completed — the prior
// request is superseded and completed the same way, since only the newest
// request for a slot can ever be satisfied.
func (a *Actor) handleFetch(fr *FetchRequest) {
	s := a.cell.get()
	assigned := false
	if s.subscribed {
		a.guard.With(func(h broker.Handle) error {
			_, assigned = h.Assignment()[fr.Partition]
			return nil
		})
	}
	if !assigned {
		fr.Complete(nil, TopicPartitionRevoked)
		return
	}
	prior := updateResult(a.cell, func(s *state) (*state, *FetchRequest) {
		return s.withFetch(fr.Partition, fr)
	})
	a.log.Debugw("stored-fetch", "partition", fr.Partition, "stream", fr.Stream)
	if prior != nil {
		a.log.Infow("revoked-previous-fetch", "partition", fr.Partition, "stream", fr.Stream)
		prior.Complete(nil, TopicPartitionRevoked)
	}
}
