package tree

import (
	"go.uber.org/zap"

	"github.com/benz9527/xbst/lib/infra"
	"github.com/benz9527/xbst/lib/xlog"
)

var _ BSTree[infra.Key[int]] = (*bsTree[infra.Key[int]])(nil)

type bstNode[D infra.Comparable[D]] struct {
	left  *bstNode[D]
	right *bstNode[D]
	data  D
}

func (node *bstNode[D]) Data() D {
	return node.data
}

func (node *bstNode[D]) Left() BSTNode[D] {
	if node == nil || node.left == nil {
		return nil
	}
	return node.left
}

func (node *bstNode[D]) Right() BSTNode[D] {
	if node == nil || node.right == nil {
		return nil
	}
	return node.right
}

func (node *bstNode[D]) minimum() *bstNode[D] {
	aux := node
	for ; aux != nil && aux.left != nil; aux = aux.left {
	}
	return aux
}

func (node *bstNode[D]) maximum() *bstNode[D] {
	aux := node
	for ; aux != nil && aux.right != nil; aux = aux.right {
	}
	return aux
}

// unlinkPred unlinks the in-order predecessor of a node with two children.
// The predecessor is the rightmost node of the left subtree, it has
// no right child, so its left child takes its place.
func (node *bstNode[D]) unlinkPred() *bstNode[D] {
	var prev *bstNode[D]
	pred := node.left
	for ; pred.right != nil; pred = pred.right {
		prev = pred
	}
	if /* no intermediate steps */ prev == nil {
		node.left = pred.left
	} else {
		prev.right = pred.left
	}
	return pred
}

// unlinkSucc unlinks the in-order successor of a node with two children.
// The successor is the leftmost node of the right subtree.
func (node *bstNode[D]) unlinkSucc() *bstNode[D] {
	var prev *bstNode[D]
	succ := node.right
	for ; succ.left != nil; succ = succ.left {
		prev = succ
	}
	if /* no intermediate steps */ prev == nil {
		node.right = succ.right
	} else {
		prev.left = succ.right
	}
	return succ
}

func isNilNode[D infra.Comparable[D]](node BSTNode[D]) bool {
	if node == nil {
		return true
	}
	n, ok := node.(*bstNode[D])
	return ok && n == nil
}

type bsTree[D infra.Comparable[D]] struct {
	root           *bstNode[D]
	alloc          nodeAllocator[D]
	logger         xlog.XLogger
	stats          *bstreeStats
	statsName      string
	count          int64
	isDesc         bool
	isRmBorrowSucc bool
}

func (tree *bsTree[D]) dataCompare(d1, d2 D) int {
	res := d1.Compare(d2)
	if res == 0 {
		return 0
	} else if res < 0 {
		if !tree.isDesc {
			return -1
		}
		return 1
	} else {
		if !tree.isDesc {
			return 1
		}
		return -1
	}
}

func (tree *bsTree[D]) Len() int64 {
	if tree == nil {
		return 0
	}
	return tree.count
}

func (tree *bsTree[D]) Root() BSTNode[D] {
	if tree == nil || tree.root == nil {
		return nil
	}
	return tree.root
}

func (tree *bsTree[D]) Insert(data D) error {
	if tree == nil {
		return ErrBSTreeNilHandle
	}

	// The slot is the link which points at the current node.
	slot := &tree.root
	for aux := *slot; aux != nil; aux = *slot {
		res := tree.dataCompare(data, aux.data)
		if /* equal */ res == 0 {
			tree.stats.IncreaseFailedCount(bstOpInsert, ErrBSTreeDuplicateKey)
			return ErrBSTreeDuplicateKey
		} else /* less */ if res < 0 {
			slot = &aux.left
		} else /* greater */ {
			slot = &aux.right
		}
	}

	node, err := tree.alloc.allocate()
	if err != nil {
		tree.logger.Error(err, "insert without node", zap.Int64("count", tree.count))
		tree.stats.IncreaseFailedCount(bstOpInsert, err)
		return err
	}
	node.data = data
	*slot = node
	tree.count++
	tree.stats.IncreaseInsertCount()
	return nil
}

func (tree *bsTree[D]) search(data D) *bstNode[D] {
	for aux := tree.root; aux != nil; {
		res := tree.dataCompare(data, aux.data)
		if res == 0 {
			return aux
		} else if res > 0 {
			aux = aux.right
		} else {
			aux = aux.left
		}
	}
	return nil
}

func (tree *bsTree[D]) Find(data D) BSTNode[D] {
	if tree == nil {
		return nil
	}
	if node := tree.search(data); node != nil {
		return node
	}
	return nil
}

/*
d1: The node X is a leaf, clear the slot that points at X.

d2: The node X has left and right children.
Borrow the in-order pred P (or succ) and swap the data only.
P has no right child, P's left child takes P's place.

	  |                    |
	  X                    P
	 / \                  / \
	L   R   copy(P, X)   L   R
	 \      =========>    \
	  P                    Pl
	 /
	Pl

d3: The node X has only one child, redirect the slot to the child.
*/
func (tree *bsTree[D]) Delete(data D) error {
	if tree == nil {
		return ErrBSTreeNilHandle
	}

	slot := &tree.root
	for x := *slot; x != nil; x = *slot {
		res := tree.dataCompare(data, x.data)
		if /* less */ res < 0 {
			slot = &x.left
			continue
		} else /* greater */ if res > 0 {
			slot = &x.right
			continue
		}

		tree.count--
		if /* d1 */ x.left == nil && x.right == nil {
			*slot = nil
		} else if /* d2 */ x.left != nil && x.right != nil {
			var y *bstNode[D]
			if tree.isRmBorrowSucc {
				y = x.unlinkSucc()
			} else {
				y = x.unlinkPred()
			}
			x.data = y.data
			x = y
		} else /* d3 */ {
			if x.left != nil {
				*slot = x.left
			} else {
				*slot = x.right
			}
		}
		tree.alloc.release(x)
		tree.stats.IncreaseDeleteCount()
		return nil
	}

	tree.stats.IncreaseFailedCount(bstOpDelete, ErrBSTreeNotFound)
	return ErrBSTreeNotFound
}

// Clear releases the nodes in post-order, children before parent.
func (tree *bsTree[D]) Clear() {
	if tree == nil || tree.root == nil {
		return
	}

	released := int64(0)
	postorder(tree.root, func(node *bstNode[D]) bool {
		tree.alloc.release(node)
		released++
		return true
	})
	if released != tree.count {
		tree.logger.Warn("clear count mismatch",
			zap.Int64("count", tree.count),
			zap.Int64("released", released),
		)
	}
	tree.root = nil
	tree.count = 0
	tree.stats.RecordClear(released)
}

func (tree *bsTree[D]) Traverse(order TraverseOrder, visitor func(idx int64, node BSTNode[D]) bool) {
	if tree == nil || tree.root == nil || visitor == nil {
		return
	}

	idx := int64(0)
	action := func(node *bstNode[D]) bool {
		next := visitor(idx, node)
		idx++
		return next
	}
	switch order {
	case PreOrder:
		preorder(tree.root, action)
	case InOrder:
		inorder(tree.root, action)
	case PostOrder:
		postorder(tree.root, action)
	default:
		tree.logger.Warn("unknown traverse order", zap.Uint8("order", uint8(order)))
	}
}

func (tree *bsTree[D]) FindMin(node BSTNode[D]) BSTNode[D] {
	if isNilNode[D](node) {
		tree.emptyNotice("find min")
		return nil
	}
	for l := node.Left(); l != nil; l = node.Left() {
		node = l
	}
	return node
}

func (tree *bsTree[D]) FindMax(node BSTNode[D]) BSTNode[D] {
	if isNilNode[D](node) {
		tree.emptyNotice("find max")
		return nil
	}
	for r := node.Right(); r != nil; r = node.Right() {
		node = r
	}
	return node
}

func (tree *bsTree[D]) emptyNotice(op string) {
	if tree == nil || tree.logger == nil {
		return
	}
	tree.logger.Info("empty tree", zap.String("op", op))
}

type BSTreeOpt[D infra.Comparable[D]] func(*bsTree[D])

// WithBSTreeDesc reverses the order of the comparator.
func WithBSTreeDesc[D infra.Comparable[D]]() BSTreeOpt[D] {
	return func(tree *bsTree[D]) {
		tree.isDesc = true
	}
}

// WithBSTreeRemoveBorrowSucc replaces the removed node that has
// two children by its in-order succ instead of pred.
func WithBSTreeRemoveBorrowSucc[D infra.Comparable[D]]() BSTreeOpt[D] {
	return func(tree *bsTree[D]) {
		tree.isRmBorrowSucc = true
	}
}

func WithBSTreeLogger[D infra.Comparable[D]](logger xlog.XLogger) BSTreeOpt[D] {
	return func(tree *bsTree[D]) {
		tree.logger = logger
	}
}

// WithBSTreeArenaAllocator allocates the nodes from the slabs
// with capPerSlab nodes. The released nodes are recycled.
// The maxSlabs limits the slabs number, zero means unlimited.
func WithBSTreeArenaAllocator[D infra.Comparable[D]](capPerSlab, maxSlabs uint32) BSTreeOpt[D] {
	return func(tree *bsTree[D]) {
		tree.alloc = newArenaNodeAllocator[D](capPerSlab, maxSlabs)
	}
}

func WithBSTreeStats[D infra.Comparable[D]](name string) BSTreeOpt[D] {
	return func(tree *bsTree[D]) {
		tree.statsName = name
	}
}

func withBSTreeAllocator[D infra.Comparable[D]](alloc nodeAllocator[D]) BSTreeOpt[D] {
	return func(tree *bsTree[D]) {
		tree.alloc = alloc
	}
}

func NewBSTree[D infra.Comparable[D]](opts ...BSTreeOpt[D]) BSTree[D] {
	tree := &bsTree[D]{
		count:          0,
		isDesc:         false,
		isRmBorrowSucc: false,
	}

	for _, o := range opts {
		if o == nil {
			continue
		}
		o(tree)
	}

	if tree.alloc == nil {
		tree.alloc = heapNodeAllocator[D]{}
	}
	if tree.logger == nil {
		tree.logger = xlog.NewNopXLogger()
	}
	tree.logger = tree.logger.Named("bstree")
	if len(tree.statsName) > 0 {
		tree.stats = newBSTreeStats(tree.statsName)
	}
	return tree
}
