package broker

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOrderedPartitionsSortedOrder(t *testing.T) {
	o := newOrderedPartitions()
	o.insert(TopicPartition{Topic: "b", Partition: 1})
	o.insert(TopicPartition{Topic: "a", Partition: 5})
	o.insert(TopicPartition{Topic: "a", Partition: 1})

	got := o.sorted()
	want := []TopicPartition{
		{Topic: "a", Partition: 1},
		{Topic: "a", Partition: 5},
		{Topic: "b", Partition: 1},
	}
	assert.Equal(t, want, got)
}

func TestOrderedPartitionsInsertIsIdempotent(t *testing.T) {
	o := newOrderedPartitions()
	tp := TopicPartition{Topic: "a", Partition: 1}
	o.insert(tp)
	o.insert(tp)
	assert.Len(t, o.sorted(), 1)
}

func TestOrderedPartitionsRemove(t *testing.T) {
	o := newOrderedPartitions()
	tp := TopicPartition{Topic: "a", Partition: 1}
	o.insert(tp)
	assert.True(t, o.has(tp))
	o.remove(tp)
	assert.False(t, o.has(tp))
}
