package actor

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/streamkit/kconsumer/pkg/broker"
)

func newTestActor(t *testing.T, topology broker.SimulatedTopology) (*Actor, *broker.Simulated, context.CancelFunc) {
	t.Helper()
	handle := broker.NewSimulated(topology)
	a := New(handle, Config{
		GroupID:       "test-group",
		PollTimeout:   50 * time.Millisecond,
		CommitTimeout: time.Second,
	})
	ctx, cancel := context.WithCancel(context.Background())
	go a.Run(ctx)
	return a, handle, cancel
}

func mustSubscribe(t *testing.T, a *Actor, topics ...string) {
	t.Helper()
	result := make(chan error, 1)
	a.Enqueue(&SubscribeTopicsRequest{Topics: topics, Result: result})
	require.NoError(t, <-result)
	// Poll is a no-op until an Assignment request has marked the actor
	// streaming; the Poll then applies the subscription's initial assignment.
	assigned := make(chan AssignmentResult, 1)
	a.Enqueue(&AssignmentRequest{Result: assigned})
	require.NoError(t, (<-assigned).Err)
	a.Enqueue(&PollRequest{})
	time.Sleep(10 * time.Millisecond)
}

func TestActorFetchDeliversProducedRecords(t *testing.T) {
	a, handle, cancel := newTestActor(t, broker.SimulatedTopology{"orders": 1})
	defer cancel()
	mustSubscribe(t, a, "orders")

	p := TopicPartition{Topic: "orders", Partition: 0}
	handle.Produce(p, []byte("k1"), []byte("v1"), nil)

	fr := NewFetchRequest(p, 1)
	a.Enqueue(fr)
	a.Enqueue(&PollRequest{})

	select {
	case result := <-fr.Done():
		require.Len(t, result.Records, 1)
		assert.Equal(t, []byte("v1"), result.Records[0].Value)
		assert.Equal(t, FetchedRecords, result.Reason)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch to complete")
	}
}

func TestActorFetchOnUnassignedPartitionIsRevokedImmediately(t *testing.T) {
	a, _, cancel := newTestActor(t, broker.SimulatedTopology{"orders": 1})
	defer cancel()
	mustSubscribe(t, a, "orders")

	fr := NewFetchRequest(TopicPartition{Topic: "other", Partition: 0}, 1)
	a.Enqueue(fr)

	select {
	case result := <-fr.Done():
		assert.Equal(t, TopicPartitionRevoked, result.Reason)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for fetch to complete")
	}
}

func TestActorMessageCommitSucceeds(t *testing.T) {
	a, _, cancel := newTestActor(t, broker.SimulatedTopology{"orders": 1})
	defer cancel()
	mustSubscribe(t, a, "orders")

	p := TopicPartition{Topic: "orders", Partition: 0}
	ctx, done := context.WithTimeout(context.Background(), time.Second)
	defer done()
	err := a.MessageCommit(ctx, map[TopicPartition]OffsetAndMetadata{
		p: {Offset: 1, Metadata: "m"},
	})
	assert.NoError(t, err)
}

func TestActorRebalanceRevokesFetchDemandAndInvokesHooks(t *testing.T) {
	a, handle, cancel := newTestActor(t, broker.SimulatedTopology{"orders": 2})
	defer cancel()
	mustSubscribe(t, a, "orders")

	var revokedSeen PartitionSet
	assignDone := make(chan AssignmentResult, 1)
	a.Enqueue(&AssignmentRequest{
		OnRebalance: &OnRebalance{
			OnRevoked: func(p PartitionSet) { revokedSeen = p },
		},
		Result: assignDone,
	})
	initial := <-assignDone
	require.NoError(t, initial.Err)

	p0 := TopicPartition{Topic: "orders", Partition: 0}
	fr := NewFetchRequest(p0, 1)
	a.Enqueue(fr)

	handle.TriggerRebalance(NewPartitionSet(p0), nil)
	a.Enqueue(&PollRequest{})

	select {
	case result := <-fr.Done():
		assert.Equal(t, TopicPartitionRevoked, result.Reason)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for revoked fetch to complete")
	}

	time.Sleep(20 * time.Millisecond)
	assert.Contains(t, revokedSeen, p0)
}
