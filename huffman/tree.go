// Package huffman builds Huffman coding trees from byte frequencies and
// transcodes byte streams against the derived prefix codes.
package huffman

import (
	"container/heap"
	"errors"
)

// ErrEmptyTable is returned when a tree is requested for a frequency
// table with no entries.
var ErrEmptyTable = errors.New("huffman: empty frequency table")

// Node is one node of a Huffman tree. A node with no children is a leaf
// carrying a symbol; every other node carries the summed frequency of
// its subtree. Trees are built once and only traversed afterwards.
type Node struct {
	Sym         byte
	Freq        uint64
	Left, Right *Node
}

// Leaf reports whether n has no children.
func (n *Node) Leaf() bool { return n.Left == nil && n.Right == nil }

type queueItem struct {
	node *Node
	seq  int
}

// nodeQueue is a min-heap ordered by frequency. Ties break on insertion
// sequence, so equal-frequency nodes pop first-in-first-out.
type nodeQueue []queueItem

func (q nodeQueue) Len() int { return len(q) }
func (q nodeQueue) Less(i, j int) bool {
	if q[i].node.Freq != q[j].node.Freq {
		return q[i].node.Freq < q[j].node.Freq
	}
	return q[i].seq < q[j].seq
}
func (q nodeQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *nodeQueue) Push(x interface{}) { *q = append(*q, x.(queueItem)) }
func (q *nodeQueue) Pop() interface{} {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

// Build constructs a Huffman tree for t by repeatedly merging the two
// lowest-frequency nodes. Leaves are seeded in ascending symbol order
// and merged nodes take the next sequence number, so the same table
// always yields the same tree on every side that rebuilds it.
//
// A table with a single distinct symbol produces a synthetic root with
// the lone leaf as its left child, giving that symbol the code 0.
func Build(t *FreqTable) (*Node, error) {
	if t == nil || t.distinct == 0 {
		return nil, ErrEmptyTable
	}

	q := make(nodeQueue, 0, t.distinct)
	seq := 0
	for _, sym := range t.Symbols() {
		q = append(q, queueItem{node: &Node{Sym: sym, Freq: t.counts[sym]}, seq: seq})
		seq++
	}
	heap.Init(&q)

	if q.Len() == 1 {
		only := heap.Pop(&q).(queueItem).node
		return &Node{Freq: only.Freq, Left: only}, nil
	}

	for q.Len() > 1 {
		left := heap.Pop(&q).(queueItem).node
		right := heap.Pop(&q).(queueItem).node
		parent := &Node{
			Freq:  left.Freq + right.Freq,
			Left:  left,
			Right: right,
		}
		heap.Push(&q, queueItem{node: parent, seq: seq})
		seq++
	}
	return heap.Pop(&q).(queueItem).node, nil
}
