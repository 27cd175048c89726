package actor

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCommitRequestCompleteIsOneShot(t *testing.T) {
	var calls int32
	var lastErr error
	c := NewCommitRequest(nil, func(err error) {
		atomic.AddInt32(&calls, 1)
		lastErr = err
	})

	c.Complete(nil)
	c.Complete(assert.AnError)

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
	assert.NoError(t, lastErr)
}

func TestCommitRequestCompleteConcurrent(t *testing.T) {
	var calls int32
	c := NewCommitRequest(nil, func(error) {
		atomic.AddInt32(&calls, 1)
	})

	done := make(chan struct{})
	go func() { c.Complete(nil); close(done) }()
	c.Complete(assert.AnError)
	<-done

	assert.EqualValues(t, 1, atomic.LoadInt32(&calls))
}

func TestOnRebalanceNilCallbacksAreNoops(t *testing.T) {
	h := OnRebalance{}
	assert.NotPanics(t, func() {
		h.assigned(NewPartitionSet(tp("orders", 0)))
		h.revoked(NewPartitionSet(tp("orders", 0)))
	})
}
