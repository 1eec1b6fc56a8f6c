package infra

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderedKeyCompare(t *testing.T) {
	testcases := []struct {
		name     string
		i, j     float64
		expected int64
	}{
		{"less", 1.0, 1.1, -1},
		{"equal", 2.5, 2.5, 0},
		{"greater", 3.0, -3.0, 1},
		{"nan less than any", math.NaN(), -math.MaxFloat64, -1},
	}
	for _, tc := range testcases {
		t.Run(tc.name, func(tt *testing.T) {
			require.Equal(tt, tc.expected, OrderedKeyCompare(tc.i, tc.j))
		})
	}

	var kcmp OrderedKeyComparator[string] = OrderedKeyCompare[string]
	assert.Equal(t, int64(-1), kcmp("a", "b"))
	assert.Equal(t, int64(0), kcmp("abc", "abc"))
	assert.Equal(t, int64(1), kcmp("b", "abc"))
}

func TestOrderedRecordCompare(t *testing.T) {
	r1 := NewOrderedRecord(uint64(10), "ten")
	r2 := NewOrderedRecord(uint64(20), "twenty")
	r3 := NewOrderedRecord(uint64(10), "another ten")

	require.Negative(t, r1.Compare(r2))
	require.Positive(t, r2.Compare(r1))
	// Payload takes no part in the comparison.
	require.Zero(t, r1.Compare(r3))

	var c Comparable[OrderedRecord[uint64, string]] = r1
	require.Negative(t, c.Compare(r2))
}

func TestKeyCompare(t *testing.T) {
	require.Negative(t, Key[int]{K: -1}.Compare(Key[int]{K: 0}))
	require.Zero(t, Key[string]{K: "x"}.Compare(Key[string]{K: "x"}))
	require.Positive(t, Key[int8]{K: 7}.Compare(Key[int8]{K: -7}))
}

func TestRecordString(t *testing.T) {
	require.Equal(t, "42", Key[int]{K: 42}.String())
	require.Equal(t, "abc", Key[string]{K: "abc"}.String())
	require.Equal(t, "7:seven", NewOrderedRecord(7, "seven").String())
}
