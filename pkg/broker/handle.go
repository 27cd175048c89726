// Package broker defines the external, non-thread-safe broker consumer
// handle that pkg/actor mediates access to, plus broker.NewSimulated, a
// concrete in-memory implementation used by tests and the demo driver.
package broker

import (
	"context"
	"time"
)

// TopicPartition addresses a single partition of a topic. It is declared
// here, and actor.TopicPartition is an alias of it, because the broker
// handle is an external collaborator with no dependency on the actor that
// drives it — the actor package depends on broker, never the reverse.
type TopicPartition struct {
	Topic     string
	Partition int32
}

func (tp TopicPartition) Less(other TopicPartition) bool {
	if tp.Topic != other.Topic {
		return tp.Topic < other.Topic
	}
	return tp.Partition < other.Partition
}

// PartitionSet is a set of TopicPartition.
type PartitionSet map[TopicPartition]struct{}

func NewPartitionSet(tps ...TopicPartition) PartitionSet {
	s := make(PartitionSet, len(tps))
	for _, tp := range tps {
		s[tp] = struct{}{}
	}
	return s
}

func (a PartitionSet) Slice() []TopicPartition {
	out := make([]TopicPartition, 0, len(a))
	for tp := range a {
		out = append(out, tp)
	}
	return out
}

// Record is a single decoded message.
type Record struct {
	Partition TopicPartition
	Offset    int64
	Key       []byte
	Value     []byte
	Headers   map[string]string
}

// OffsetAndMetadata is the commit payload for one partition.
type OffsetAndMetadata struct {
	Offset   int64
	Metadata string
}

// Batch is the result of a single Poll call.
type Batch interface {
	// Partitions returns the set of partitions with at least one record
	// in this batch.
	Partitions() PartitionSet
	// Records returns the records in this batch for p, in offset order.
	// Returns nil if p has no records in this batch.
	Records(p TopicPartition) []Record
}

// RebalanceListener is invoked synchronously, inside Poll, whenever the
// broker's group coordinator revokes or assigns partitions.
type RebalanceListener interface {
	OnPartitionsRevoked(revoked PartitionSet)
	OnPartitionsAssigned(assigned PartitionSet)
}

// RebalanceListenerFuncs adapts two plain funcs to RebalanceListener.
type RebalanceListenerFuncs struct {
	Revoked  func(PartitionSet)
	Assigned func(PartitionSet)
}

func (f RebalanceListenerFuncs) OnPartitionsRevoked(revoked PartitionSet) {
	if f.Revoked != nil {
		f.Revoked(revoked)
	}
}

func (f RebalanceListenerFuncs) OnPartitionsAssigned(assigned PartitionSet) {
	if f.Assigned != nil {
		f.Assigned(assigned)
	}
}

// Handle is the non-thread-safe broker consumer client the actor mediates
// access to. One goroutine at a time may call any method on a Handle; it is
// the actor's HandleGuard that enforces this from the consuming side.
type Handle interface {
	// Subscribe subscribes to an explicit, non-empty topic list.
	Subscribe(topics []string, listener RebalanceListener) error
	// SubscribePattern subscribes to every topic matching pattern.
	SubscribePattern(pattern string, listener RebalanceListener) error
	// Assignment returns the partitions currently assigned to this
	// consumer by the group coordinator.
	Assignment() PartitionSet
	// Pause suspends fetching for the given partitions. Does not affect
	// subscription or trigger a rebalance.
	Pause(partitions PartitionSet)
	// Resume resumes fetching for partitions previously paused.
	Resume(partitions PartitionSet)
	// Poll blocks up to timeout waiting for fetchable records across
	// every assigned, non-paused partition, then returns whatever
	// arrived (possibly nothing). A timeout of 0 returns immediately
	// after one non-blocking check.
	Poll(ctx context.Context, timeout time.Duration) (Batch, error)
	// CommitAsync asynchronously commits offsets, invoking callback with
	// the result. callback may run on a goroutine other than the one
	// that called CommitAsync.
	CommitAsync(offsets map[TopicPartition]OffsetAndMetadata, callback func(map[TopicPartition]OffsetAndMetadata, error))
}
