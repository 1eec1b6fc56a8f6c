package tree

import (
	"errors"
	"fmt"

	"go.uber.org/multierr"

	"github.com/benz9527/xbst/lib/infra"
)

var (
	errBSTreeOrderViolation = errors.New("[bstree] order violation")
	errBSTreeCountViolation = errors.New("[bstree] count violation")
)

// The walkers below use explicit stacks instead of the recursion,
// the degenerate tree (sorted inserts) is as deep as its length.

func preorder[D infra.Comparable[D]](root *bstNode[D], action func(*bstNode[D]) bool) {
	if root == nil {
		return
	}
	stack := make([]*bstNode[D], 0, 16)
	defer func() {
		clear(stack)
	}()

	stack = append(stack, root)
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		if !action(aux) {
			return
		}
		// Right first, so the left subtree is popped first.
		if aux.right != nil {
			stack = append(stack, aux.right)
		}
		if aux.left != nil {
			stack = append(stack, aux.left)
		}
	}
}

func inorder[D infra.Comparable[D]](root *bstNode[D], action func(*bstNode[D]) bool) {
	if root == nil {
		return
	}
	stack := make([]*bstNode[D], 0, 16)
	defer func() {
		clear(stack)
	}()

	for aux := root; aux != nil; aux = aux.left {
		stack = append(stack, aux)
	}
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		// Load right before the action, it may release the node.
		r := aux.right
		if !action(aux) {
			return
		}
		for aux = r; aux != nil; aux = aux.left {
			stack = append(stack, aux)
		}
	}
}

// postorder visits the children before their parent. The action is
// allowed to release the visited node, it is never touched again.
func postorder[D infra.Comparable[D]](root *bstNode[D], action func(*bstNode[D]) bool) {
	if root == nil {
		return
	}
	stack := make([]*bstNode[D], 0, 16)
	defer func() {
		clear(stack)
	}()

	var last *bstNode[D]
	for aux := root; aux != nil || len(stack) > 0; {
		if aux != nil {
			stack = append(stack, aux)
			aux = aux.left
			continue
		}
		peek := stack[len(stack)-1]
		if peek.right != nil && peek.right != last {
			aux = peek.right
			continue
		}
		stack = stack[:len(stack)-1]
		if !action(peek) {
			return
		}
		last = peek
	}
}

// Validate checks the BST properties by an in-order walk through the
// exported node links. All violations are combined.
//  1. Each in-order successive pair is strictly ascending by the tree comparator.
//  2. The reachable nodes number equals to the tree length.
func Validate[D infra.Comparable[D]](tree BSTree[D]) error {
	if tree == nil {
		return ErrBSTreeNilHandle
	}

	kcmp := func(d1, d2 D) int {
		return d1.Compare(d2)
	}
	if t, ok := tree.(*bsTree[D]); ok {
		if t == nil {
			return ErrBSTreeNilHandle
		}
		kcmp = t.dataCompare
	}

	var (
		merr  error
		prev  BSTNode[D]
		count int64
		stack = make([]BSTNode[D], 0, 16)
	)
	defer func() {
		clear(stack)
	}()

	for aux := tree.Root(); !isNilNode[D](aux); aux = aux.Left() {
		stack = append(stack, aux)
	}
	for size := len(stack); size > 0; size = len(stack) {
		aux := stack[size-1]
		stack = stack[:size-1]
		count++
		if prev != nil && kcmp(prev.Data(), aux.Data()) >= 0 {
			merr = multierr.Append(merr, fmt.Errorf("%w: %v is not less than %v",
				errBSTreeOrderViolation, prev.Data(), aux.Data()))
		}
		prev = aux
		for aux = aux.Right(); !isNilNode[D](aux); aux = aux.Left() {
			stack = append(stack, aux)
		}
	}

	if count != tree.Len() {
		merr = multierr.Append(merr, fmt.Errorf("%w: reachable %d, len %d",
			errBSTreeCountViolation, count, tree.Len()))
	}
	return merr
}
