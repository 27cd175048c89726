package broker

import (
	"context"
	"regexp"
	"sync"
	"time"

	"github.com/pkg/errors"

	"github.com/streamkit/kconsumer/pkg/broker/codec"
)

// partitionLog is the in-memory backing store for one partition: an
// append-only slice of Records, whose length is the next offset to hand
// out. A real
// broker's log lives on disk across brokers; this one exists so tests and
// the demo driver can exercise a Handle without a live cluster.
type partitionLog struct {
	mu      sync.Mutex
	records []Record
}

func (l *partitionLog) append(key, value []byte, headers map[string]string) Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	rec := Record{Offset: int64(len(l.records)), Key: key, Value: value, Headers: headers}
	l.records = append(l.records, rec)
	return rec
}

func (l *partitionLog) since(offset int64) []Record {
	l.mu.Lock()
	defer l.mu.Unlock()
	if offset < 0 || offset >= int64(len(l.records)) {
		return nil
	}
	out := make([]Record, len(l.records)-int(offset))
	copy(out, l.records[offset:])
	return out
}

type rebalanceEvent struct {
	revoke PartitionSet
	assign PartitionSet
}

// Simulated is an in-memory Handle: no network, no brokers, a log per
// partition and a group-coordinator stand-in driven by TriggerRebalance.
// It satisfies Handle for tests and for cmd/kconsumerctl's demo mode.
type Simulated struct {
	mu sync.Mutex

	topicPartitions map[string][]int32
	logs            map[TopicPartition]*partitionLog
	nextConsume     map[TopicPartition]int64

	assigned *orderedPartitions
	paused   map[TopicPartition]struct{}
	listener RebalanceListener
	pattern  *regexp.Regexp
	topics   []string

	pendingRebalance *rebalanceEvent
	arrived          chan struct{}

	committed map[TopicPartition]OffsetAndMetadata
}

// SimulatedTopology declares the partition count for each topic the
// simulated cluster hosts.
type SimulatedTopology map[string]int32

// NewSimulated builds a Simulated handle over topology. No partitions are
// assigned until Subscribe or SubscribePattern is called and a Poll runs
// the resulting initial rebalance.
func NewSimulated(topology SimulatedTopology) *Simulated {
	s := &Simulated{
		topicPartitions: make(map[string][]int32, len(topology)),
		logs:            make(map[TopicPartition]*partitionLog),
		nextConsume:     make(map[TopicPartition]int64),
		assigned:        newOrderedPartitions(),
		paused:          make(map[TopicPartition]struct{}),
		arrived:         make(chan struct{}, 1),
		committed:       make(map[TopicPartition]OffsetAndMetadata),
	}
	for topic, n := range topology {
		parts := make([]int32, n)
		for i := int32(0); i < n; i++ {
			parts[i] = i
			tp := TopicPartition{Topic: topic, Partition: i}
			s.logs[tp] = &partitionLog{}
		}
		s.topicPartitions[topic] = parts
	}
	return s
}

// Produce appends a record to tp's log, for tests and the demo driver that
// need to put data in before a consumer polls it out.
func (s *Simulated) Produce(tp TopicPartition, key, value []byte, headers map[string]string) Record {
	log, ok := s.logs[tp]
	if !ok {
		log = &partitionLog{}
		s.mu.Lock()
		s.logs[tp] = log
		s.mu.Unlock()
	}
	rec := log.append(key, value, headers)
	rec.Partition = tp
	select {
	case s.arrived <- struct{}{}:
	default:
	}
	return rec
}

// ProduceCompressed behaves like Produce but compresses value with c first
// and records the codec name in the "codec" header. Poll hands the value
// back still compressed; the consumer decompresses it with codec.Decompress.
func (s *Simulated) ProduceCompressed(tp TopicPartition, c codec.Codec, key, value []byte) (Record, error) {
	compressed, err := codec.Compress(c, value)
	if err != nil {
		return Record{}, errors.Wrap(err, "broker: compress produced record")
	}
	rec := s.Produce(tp, key, compressed, map[string]string{"codec": codecName(c)})
	return rec, nil
}

func codecName(c codec.Codec) string {
	switch c {
	case codec.Gzip:
		return "gzip"
	case codec.Snappy:
		return "snappy"
	case codec.LZ4:
		return "lz4"
	case codec.Zstd:
		return "zstd"
	default:
		return "none"
	}
}

// TriggerRebalance queues a group-coordinator reassignment to be applied
// on the next Poll call, matching the real contract that rebalances are
// only ever observed synchronously inside Poll.
func (s *Simulated) TriggerRebalance(revoke, assign PartitionSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pendingRebalance = &rebalanceEvent{revoke: revoke, assign: assign}
}

func (s *Simulated) matchingPartitions() PartitionSet {
	out := make(PartitionSet)
	for topic, parts := range s.topicPartitions {
		if s.pattern != nil && !s.pattern.MatchString(topic) {
			continue
		}
		if s.pattern == nil && !containsStr(s.topics, topic) {
			continue
		}
		for _, p := range parts {
			out[TopicPartition{Topic: topic, Partition: p}] = struct{}{}
		}
	}
	return out
}

func containsStr(ss []string, v string) bool {
	for _, s := range ss {
		if s == v {
			return true
		}
	}
	return false
}

func (s *Simulated) Subscribe(topics []string, listener RebalanceListener) error {
	if len(topics) == 0 {
		return errors.New("broker: subscribe requires at least one topic")
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.topics = topics
	s.pattern = nil
	s.listener = listener
	matched := s.matchingPartitions()
	s.pendingRebalance = &rebalanceEvent{assign: matched}
	return nil
}

func (s *Simulated) SubscribePattern(pattern string, listener RebalanceListener) error {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return errors.Wrapf(err, "broker: invalid subscribe pattern %q", pattern)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pattern = re
	s.topics = nil
	s.listener = listener
	matched := s.matchingPartitions()
	s.pendingRebalance = &rebalanceEvent{assign: matched}
	return nil
}

func (s *Simulated) Assignment() PartitionSet {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.assigned.set()
}

func (s *Simulated) Pause(partitions PartitionSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := range partitions {
		s.paused[p] = struct{}{}
	}
}

func (s *Simulated) Resume(partitions PartitionSet) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for p := range partitions {
		delete(s.paused, p)
	}
}

func (s *Simulated) applyPendingRebalance() {
	s.mu.Lock()
	pending := s.pendingRebalance
	s.pendingRebalance = nil
	listener := s.listener
	s.mu.Unlock()
	if pending == nil {
		return
	}
	s.mu.Lock()
	for p := range pending.revoke {
		s.assigned.remove(p)
		delete(s.nextConsume, p)
	}
	for p := range pending.assign {
		s.assigned.insert(p)
		if _, ok := s.nextConsume[p]; !ok {
			s.nextConsume[p] = 0
		}
	}
	s.mu.Unlock()
	if listener == nil {
		return
	}
	if len(pending.revoke) > 0 {
		listener.OnPartitionsRevoked(pending.revoke)
	}
	if len(pending.assign) > 0 {
		listener.OnPartitionsAssigned(pending.assign)
	}
}

func (s *Simulated) Poll(ctx context.Context, timeout time.Duration) (Batch, error) {
	s.applyPendingRebalance()

	batch := s.collect()
	if len(batch.byPartition) > 0 || timeout <= 0 {
		return batch, nil
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-s.arrived:
		return s.collect(), nil
	case <-timer.C:
		return batch, nil
	case <-ctx.Done():
		return batch, ctx.Err()
	}
}

func (s *Simulated) collect() *simulatedBatch {
	s.mu.Lock()
	defer s.mu.Unlock()
	batch := &simulatedBatch{byPartition: make(map[TopicPartition][]Record)}
	for p := range s.assigned.set() {
		if _, paused := s.paused[p]; paused {
			continue
		}
		log, ok := s.logs[p]
		if !ok {
			continue
		}
		from := s.nextConsume[p]
		recs := log.since(from)
		if len(recs) == 0 {
			continue
		}
		for i := range recs {
			recs[i].Partition = p
		}
		batch.byPartition[p] = recs
		s.nextConsume[p] = from + int64(len(recs))
	}
	return batch
}

func (s *Simulated) CommitAsync(offsets map[TopicPartition]OffsetAndMetadata, callback func(map[TopicPartition]OffsetAndMetadata, error)) {
	go func() {
		s.mu.Lock()
		for p, om := range offsets {
			s.committed[p] = om
		}
		s.mu.Unlock()
		if callback != nil {
			callback(offsets, nil)
		}
	}()
}

// Committed returns the last committed OffsetAndMetadata for every
// partition ever committed, for test assertions.
func (s *Simulated) Committed() map[TopicPartition]OffsetAndMetadata {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[TopicPartition]OffsetAndMetadata, len(s.committed))
	for p, om := range s.committed {
		out[p] = om
	}
	return out
}

type simulatedBatch struct {
	byPartition map[TopicPartition][]Record
}

func (b *simulatedBatch) Partitions() PartitionSet {
	out := make(PartitionSet, len(b.byPartition))
	for p := range b.byPartition {
		out[p] = struct{}{}
	}
	return out
}

func (b *simulatedBatch) Records(p TopicPartition) []Record {
	return b.byPartition[p]
}
