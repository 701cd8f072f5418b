package dom

import (
	"iter"
	"slices"
)

// TraversalType selects the iteration order.
type TraversalType int

const (
	DepthFirst TraversalType = iota
	BreadthFirst
)

func (t TraversalType) String() string {
	switch t {
	case DepthFirst:
		return "depth-first"
	case BreadthFirst:
		return "breadth-first"
	default:
		return "unknown"
	}
}

// Iterator yields the nodes of a tree one at a time.
type Iterator interface {
	HasNext() bool
	// Next returns the next node, or ErrExhausted when HasNext is false.
	Next() (*Node, error)
}

// DepthFirstIterator visits nodes in pre-order using an explicit stack.
type DepthFirstIterator struct {
	stack []*Node
}

// NewDepthFirstIterator creates a depth-first iterator starting at root.
func NewDepthFirstIterator(root *Node) *DepthFirstIterator {
	return &DepthFirstIterator{stack: []*Node{root}}
}

func (it *DepthFirstIterator) HasNext() bool {
	return len(it.stack) > 0
}

func (it *DepthFirstIterator) Next() (*Node, error) {
	if !it.HasNext() {
		return nil, ErrExhausted
	}
	last := len(it.stack) - 1
	node := it.stack[last]
	it.stack = it.stack[:last]
	// Push in reverse so the first child is popped next.
	for _, c := range slices.Backward(node.children) {
		it.stack = append(it.stack, c)
	}
	return node, nil
}

// BreadthFirstIterator visits nodes level by level using a queue.
type BreadthFirstIterator struct {
	queue []*Node
}

// NewBreadthFirstIterator creates a breadth-first iterator starting at root.
func NewBreadthFirstIterator(root *Node) *BreadthFirstIterator {
	return &BreadthFirstIterator{queue: []*Node{root}}
}

func (it *BreadthFirstIterator) HasNext() bool {
	return len(it.queue) > 0
}

func (it *BreadthFirstIterator) Next() (*Node, error) {
	if !it.HasNext() {
		return nil, ErrExhausted
	}
	node := it.queue[0]
	it.queue[0] = nil
	it.queue = it.queue[1:]
	it.queue = append(it.queue, node.children...)
	return node, nil
}

// Iterator returns an iterator of the given kind rooted at n.
func (n *Node) Iterator(kind TraversalType) Iterator {
	if kind == BreadthFirst {
		return NewBreadthFirstIterator(n)
	}
	return NewDepthFirstIterator(n)
}

// Traverse returns a lazy sequence of the nodes under root in the given
// order. The sequence is backed by a single iterator, so ranging over it a
// second time yields nothing.
func Traverse(root *Node, kind TraversalType) iter.Seq[*Node] {
	it := root.Iterator(kind)
	return func(yield func(*Node) bool) {
		for it.HasNext() {
			node, err := it.Next()
			if err != nil || !yield(node) {
				return
			}
		}
	}
}
