package infra

import (
	"cmp"
	"fmt"
)

type Signed interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64
}

// Unsigned is a constraint that permits any unsigned integer type.
type Unsigned interface {
	~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

type Integer interface {
	Signed | Unsigned
}

type Float interface {
	~float32 | ~float64
}

// OrderedKey
// byte => ~uint8
type OrderedKey interface {
	Integer | Float | ~string
}

// OrderedKeyComparator
// Assume i is the new key.
//  1. i == j (i-j == 0, return 0)
//  2. i > j (i-j > 0, return 1), turn to right part.
//  3. i < j (i-j < 0, return -1), turn to left part.
type OrderedKeyComparator[K OrderedKey] func(i, j K) int64

// Comparable is the total order capability of a record.
// The receiver plays the role of the new key i in OrderedKeyComparator.
// Zero means the same key, the records with the same key are never
// stored twice.
type Comparable[T any] interface {
	Compare(other T) int
}

// OrderedKeyCompare is the default comparator of the ordered keys.
// NaN is treated as less than any other float, the same as cmp.Compare.
func OrderedKeyCompare[K OrderedKey](i, j K) int64 {
	return int64(cmp.Compare(i, j))
}

// OrderedRecord lifts an ordered key and its payload into a Comparable record.
// Only the key takes part in the comparison.
type OrderedRecord[K OrderedKey, V any] struct {
	Key K
	Val V
}

func (r OrderedRecord[K, V]) Compare(other OrderedRecord[K, V]) int {
	return cmp.Compare(r.Key, other.Key)
}

func (r OrderedRecord[K, V]) String() string {
	return fmt.Sprintf("%v:%v", r.Key, r.Val)
}

func NewOrderedRecord[K OrderedKey, V any](key K, val V) OrderedRecord[K, V] {
	return OrderedRecord[K, V]{Key: key, Val: val}
}

// Key is a record that carries the key only.
type Key[T OrderedKey] struct {
	K T
}

func (k Key[T]) Compare(other Key[T]) int {
	return cmp.Compare(k.K, other.K)
}

func (k Key[T]) String() string {
	return fmt.Sprint(k.K)
}
