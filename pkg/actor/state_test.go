package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func tp(topic string, partition int32) TopicPartition {
	return TopicPartition{Topic: topic, Partition: partition}
}

func TestStateWithFetchInstallsAndReportsDisplaced(t *testing.T) {
	s := newState()
	fr1 := NewFetchRequest(tp("orders", 0), 1)
	s, prior := s.withFetch(tp("orders", 0), fr1)
	assert.Nil(t, prior)
	require.Len(t, s.fetches[tp("orders", 0)], 1)

	fr2 := NewFetchRequest(tp("orders", 0), 1)
	s, prior = s.withFetch(tp("orders", 0), fr2)
	require.NotNil(t, prior)
	assert.Same(t, fr1, prior)
	assert.Same(t, fr2, s.fetches[tp("orders", 0)][1])
}

func TestStateWithoutFetchesRemovesEveryStreamForRevokedPartitions(t *testing.T) {
	s := newState()
	a := NewFetchRequest(tp("orders", 0), 1)
	b := NewFetchRequest(tp("orders", 0), 2)
	c := NewFetchRequest(tp("orders", 1), 1)
	s, _ = s.withFetch(tp("orders", 0), a)
	s, _ = s.withFetch(tp("orders", 0), b)
	s, _ = s.withFetch(tp("orders", 1), c)

	s, removed := s.withoutFetches(NewPartitionSet(tp("orders", 0)))
	assert.ElementsMatch(t, []*FetchRequest{a, b}, removed)
	assert.NotContains(t, s.fetches, tp("orders", 0))
	assert.Contains(t, s.fetches, tp("orders", 1))
}

func TestStateWithoutFetchesNoopOnEmptySet(t *testing.T) {
	s := newState()
	s2, removed := s.withoutFetches(nil)
	assert.Same(t, s, s2)
	assert.Nil(t, removed)
}

func TestStateCloneIsIndependent(t *testing.T) {
	s := newState()
	fr := NewFetchRequest(tp("orders", 0), 1)
	s2, _ := s.withFetch(tp("orders", 0), fr)

	assert.Empty(t, s.fetches)
	assert.NotEmpty(t, s2.fetches)
}

func TestStateIdempotentTransitions(t *testing.T) {
	s := newState()
	s2 := s.withRebalancing(false)
	assert.Same(t, s, s2)

	s3 := s.asSubscribed()
	s4 := s3.asSubscribed()
	assert.Same(t, s3, s4)

	s5 := s.asStreaming()
	s6 := s5.asStreaming()
	assert.Same(t, s5, s6)
}

func TestStateWithPendingCommitCappedEvictsOldest(t *testing.T) {
	s := newState()
	c1 := NewCommitRequest(nil, nil)
	c2 := NewCommitRequest(nil, nil)
	c3 := NewCommitRequest(nil, nil)

	s, evicted := s.withPendingCommitCapped(c1, 2)
	assert.Nil(t, evicted)
	s, evicted = s.withPendingCommitCapped(c2, 2)
	assert.Nil(t, evicted)
	s, evicted = s.withPendingCommitCapped(c3, 2)
	require.NotNil(t, evicted)
	assert.Same(t, c1, evicted)
	assert.Equal(t, []*CommitRequest{c2, c3}, s.pendingCommits)
}

func TestStateFetchDemand(t *testing.T) {
	s := newState()
	s, _ = s.withFetch(tp("orders", 0), NewFetchRequest(tp("orders", 0), 1))
	s, _ = s.withFetch(tp("orders", 1), NewFetchRequest(tp("orders", 1), 1))

	demand := s.fetchDemand()
	assert.Equal(t, NewPartitionSet(tp("orders", 0), tp("orders", 1)), demand)
}
