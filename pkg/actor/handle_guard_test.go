package actor

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/streamkit/kconsumer/pkg/broker"
)

func TestHandleGuardWithRunsExclusively(t *testing.T) {
	g := NewHandleGuard(broker.NewSimulated(broker.SimulatedTopology{"orders": 1}))
	var ran bool
	err := g.With(func(h broker.Handle) error {
		ran = true
		return nil
	})
	assert.NoError(t, err)
	assert.True(t, ran)
}

func TestHandleGuardReentrancyPanics(t *testing.T) {
	g := NewHandleGuard(broker.NewSimulated(broker.SimulatedTopology{"orders": 1}))
	assert.Panics(t, func() {
		g.With(func(h broker.Handle) error {
			return g.With(func(h broker.Handle) error { return nil })
		})
	})
}

func TestHandleGuardReleasesAfterPanic(t *testing.T) {
	g := NewHandleGuard(broker.NewSimulated(broker.SimulatedTopology{"orders": 1}))
	assert.Panics(t, func() {
		g.With(func(h broker.Handle) error {
			return g.With(func(h broker.Handle) error { return nil })
		})
	})
	err := g.With(func(h broker.Handle) error { return nil })
	assert.NoError(t, err)
}
