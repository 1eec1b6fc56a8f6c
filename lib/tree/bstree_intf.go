package tree

import (
	"errors"

	"github.com/benz9527/xbst/lib/infra"
)

var (
	ErrBSTreeNilHandle    = errors.New("[bstree] nil tree handle")
	ErrBSTreeDuplicateKey = errors.New("[bstree] duplicate key")
	ErrBSTreeAllocFailed  = errors.New("[bstree] node allocation failed")
	ErrBSTreeNotFound     = errors.New("[bstree] key not found")
)

type TraverseOrder uint8

const (
	PreOrder TraverseOrder = iota
	InOrder
	PostOrder
	_orderMax
)

func (order TraverseOrder) String() string {
	switch order {
	case PreOrder:
		return "pre-order"
	case InOrder:
		return "in-order"
	case PostOrder:
		return "post-order"
	default:
	}
	return "unknown-order"
}

type BSTDirection int8

const (
	Left BSTDirection = -1 + iota
	Root
	Right
)

type BSTNode[D infra.Comparable[D]] interface {
	Data() D
	Left() BSTNode[D]
	Right() BSTNode[D]
}

// BSTree is the unbalanced binary search tree.
// It is not thread safe, the caller has to serialize the accesses.
// Any node returned by the tree is invalid after its data has been
// deleted or the tree has been cleared.
type BSTree[D infra.Comparable[D]] interface {
	Len() int64
	Root() BSTNode[D]
	// Insert returns ErrBSTreeDuplicateKey if the same key is present,
	// the present data will never be replaced.
	Insert(data D) error
	// Find returns nil if the key is absent.
	Find(data D) BSTNode[D]
	// Delete returns ErrBSTreeNotFound if the key is absent.
	Delete(data D) error
	// Clear releases all nodes.
	Clear()
	// Traverse visits every node exactly once in the order until
	// the visitor returns false.
	Traverse(order TraverseOrder, visitor func(idx int64, node BSTNode[D]) bool)
	// FindMin returns the leftmost node of the subtree.
	FindMin(node BSTNode[D]) BSTNode[D]
	// FindMax returns the rightmost node of the subtree.
	FindMax(node BSTNode[D]) BSTNode[D]
}
