package broker

import "github.com/twmb/go-rbtree"

// partitionNode is the rbtree.Item wrapping a TopicPartition so the
// simulated handle can keep its current assignment in a lexically-ordered
// structure; sorted() reads it back in that order. Assignment() returns the
// same partitions as a PartitionSet, whose iteration order is not defined.
type partitionNode struct {
	tp TopicPartition
}

func (n *partitionNode) Less(other rbtree.Item) bool {
	return n.tp.Less(other.(*partitionNode).tp)
}

// orderedPartitions is a red-black tree of TopicPartition, used by the
// simulated broker handle to track its current assignment in sorted order.
type orderedPartitions struct {
	tree rbtree.Tree
}

func newOrderedPartitions() *orderedPartitions {
	return &orderedPartitions{}
}

func (o *orderedPartitions) insert(tp TopicPartition) {
	if o.tree.Find(&partitionNode{tp: tp}) != nil {
		return
	}
	o.tree.Insert(&partitionNode{tp: tp})
}

func (o *orderedPartitions) remove(tp TopicPartition) {
	o.tree.Delete(&partitionNode{tp: tp})
}

func (o *orderedPartitions) has(tp TopicPartition) bool {
	return o.tree.Find(&partitionNode{tp: tp}) != nil
}

func (o *orderedPartitions) sorted() []TopicPartition {
	out := make([]TopicPartition, 0, o.tree.Len())
	for n := o.tree.Min(); n != nil; n = n.Next() {
		out = append(out, n.Item.(*partitionNode).tp)
	}
	return out
}

func (o *orderedPartitions) set() PartitionSet {
	out := make(PartitionSet, o.tree.Len())
	for n := o.tree.Min(); n != nil; n = n.Next() {
		out[n.Item.(*partitionNode).tp] = struct{}{}
	}
	return out
}
