package tree

import (
	"github.com/benz9527/xbst/lib/infra"
)

const (
	defaultArenaCapPerSlab = 64
	defaultRecycleCap      = 32
)

// nodeAllocator creates and destroys the tree nodes.
// A failed allocation must not touch the tree.
type nodeAllocator[D infra.Comparable[D]] interface {
	allocate() (*bstNode[D], error)
	release(node *bstNode[D])
}

var (
	_ nodeAllocator[infra.Key[int]] = heapNodeAllocator[infra.Key[int]]{}
	_ nodeAllocator[infra.Key[int]] = (*arenaNodeAllocator[infra.Key[int]])(nil)
)

type heapNodeAllocator[D infra.Comparable[D]] struct{}

func (heapNodeAllocator[D]) allocate() (*bstNode[D], error) {
	return &bstNode[D]{}, nil
}

// release unlinks the node and drops the data reference for GC.
func (heapNodeAllocator[D]) release(node *bstNode[D]) {
	if node == nil {
		return
	}
	*node = bstNode[D]{}
}

// References:
// https://github.com/ortuman/nuke
// https://github.com/dgraph-io/badger/blob/master/skl/arena.go
// https://github.com/google/btree/blob/master/btree_generic.go (FreeListG)

// arenaSlab is a fixed capacity typed buffer. The objects are kept in
// a Go typed slice, so the pointers inside them are visible to the GC.
type arenaSlab[T any] struct {
	objs   []T
	offset int
	cap    int
}

func (slab *arenaSlab[T]) available() int {
	return slab.cap - slab.offset
}

func (slab *arenaSlab[T]) allocate() (*T, bool) {
	if /* lazy init */ slab.objs == nil {
		slab.objs = make([]T, slab.cap)
	}
	if /* scale */ slab.available() <= 0 {
		return nil, false
	}
	ptr := &slab.objs[slab.offset]
	slab.offset++
	return ptr, true
}

func newArenaSlab[T any](cap int) *arenaSlab[T] {
	return &arenaSlab[T]{
		cap:    cap,
		offset: 0,
	}
}

// autoGrowthArena hands out the recycled objects first, then bumps
// inside the last slab and appends a new slab while it is full.
type autoGrowthArena[T any] struct {
	slabs      []*arenaSlab[T]
	recycled   []*T
	capPerSlab int
	maxSlabs   int // zero means unlimited
}

func (arena *autoGrowthArena[T]) slabLen() int {
	return len(arena.slabs)
}

func (arena *autoGrowthArena[T]) recLen() int {
	return len(arena.recycled)
}

// objLen is the number of the objects handed out from the slabs,
// the recycled ones are included.
func (arena *autoGrowthArena[T]) objLen() uint64 {
	l := uint64(0)
	for i := 0; i < len(arena.slabs); i++ {
		l += uint64(arena.slabs[i].offset)
	}
	return l
}

func (arena *autoGrowthArena[T]) allocate() (*T, bool) {
	if rl := len(arena.recycled); rl > 0 {
		p := arena.recycled[rl-1]
		arena.recycled[rl-1] = nil
		arena.recycled = arena.recycled[:rl-1]
		return p, true
	}

	if sl := len(arena.slabs); sl > 0 {
		if p, ok := arena.slabs[sl-1].allocate(); ok {
			return p, true
		}
	}

	if arena.maxSlabs > 0 && len(arena.slabs) >= arena.maxSlabs {
		return nil, false
	}
	slab := newArenaSlab[T](arena.capPerSlab)
	arena.slabs = append(arena.slabs, slab)
	return slab.allocate()
}

// recycle zeroes the objects before they are reused.
func (arena *autoGrowthArena[T]) recycle(objs ...*T) {
	for _, obj := range objs {
		if obj == nil {
			continue
		}
		*obj = *new(T)
		arena.recycled = append(arena.recycled, obj)
	}
}

func newAutoGrowthArena[T any](capPerSlab, maxSlabs, initRecycleCap uint32) *autoGrowthArena[T] {
	if capPerSlab == 0 {
		capPerSlab = defaultArenaCapPerSlab
	}
	return &autoGrowthArena[T]{
		slabs:      make([]*arenaSlab[T], 0, 8),
		recycled:   make([]*T, 0, initRecycleCap),
		capPerSlab: int(capPerSlab),
		maxSlabs:   int(maxSlabs),
	}
}

type arenaNodeAllocator[D infra.Comparable[D]] struct {
	arena *autoGrowthArena[bstNode[D]]
}

func (alloc *arenaNodeAllocator[D]) allocate() (*bstNode[D], error) {
	node, ok := alloc.arena.allocate()
	if !ok || node == nil {
		return nil, ErrBSTreeAllocFailed
	}
	return node, nil
}

func (alloc *arenaNodeAllocator[D]) release(node *bstNode[D]) {
	alloc.arena.recycle(node)
}

func newArenaNodeAllocator[D infra.Comparable[D]](capPerSlab, maxSlabs uint32) *arenaNodeAllocator[D] {
	return &arenaNodeAllocator[D]{
		arena: newAutoGrowthArena[bstNode[D]](capPerSlab, maxSlabs, defaultRecycleCap),
	}
}
