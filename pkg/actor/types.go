// Package actor implements the serialized request-dispatch core of a
// streaming consumer: the single goroutine that mediates every touch of a
// non-thread-safe, poll-driven broker consumer handle.
package actor

import "github.com/streamkit/kconsumer/pkg/broker"

// TopicPartition addresses a single partition of a topic. It is ordered
// first by Topic (lexically), then by Partition. Aliased from pkg/broker
// since the broker handle is the leaf dependency in the component order
// (HandleGuard <- State/Requests <- handlers <- Actor dispatcher): the
// actor speaks the broker's vocabulary rather than maintaining a parallel
// one and converting at every call site.
type TopicPartition = broker.TopicPartition

// StreamID identifies one downstream consumer of a partition. It is unique
// only within the scope of a single partition.
type StreamID int64

// Record is a single decoded message returned from a partition fetch.
type Record = broker.Record

// Records is the immutable chunk of Record values delivered to a single
// FetchRequest completion. It is shared, not cloned, across every StreamID
// fanned out to for the same partition, so callers must treat it as
// read-only.
type Records []Record

// OffsetAndMetadata is the offset committed for a partition, along with the
// caller-supplied metadata string (see Config.RecordMetadata).
type OffsetAndMetadata = broker.OffsetAndMetadata

// PartitionSet is a set of TopicPartition, used for assignment snapshots and
// for the revoked/assigned sets passed to rebalance hooks.
type PartitionSet = broker.PartitionSet

// NewPartitionSet builds a PartitionSet from a slice of TopicPartition.
func NewPartitionSet(tps ...TopicPartition) PartitionSet {
	return broker.NewPartitionSet(tps...)
}

// Intersect returns the set of partitions present in both a and b.
func Intersect(a, b PartitionSet) PartitionSet {
	out := make(PartitionSet)
	small, big := a, b
	if len(b) < len(a) {
		small, big = b, a
	}
	for tp := range small {
		if _, ok := big[tp]; ok {
			out[tp] = struct{}{}
		}
	}
	return out
}

// Difference returns the partitions in a that are not in b.
func Difference(a, b PartitionSet) PartitionSet {
	out := make(PartitionSet)
	for tp := range a {
		if _, ok := b[tp]; !ok {
			out[tp] = struct{}{}
		}
	}
	return out
}
