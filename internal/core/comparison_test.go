package core

import (
	"math"
	"testing"

	"github.com/seqview/seqview/internal/testconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// caseInsensitive is equal to any string or caseInsensitive with the same lowercase ASCII letters.
type caseInsensitive string

func (c caseInsensitive) Equal(other any) bool {
	var s string
	switch o := other.(type) {
	case caseInsensitive:
		s = string(o)
	case string:
		s = o
	default:
		return false
	}
	if len(s) != len(c) {
		return false
	}
	for i := 0; i < len(s); i++ {
		if lower(s[i]) != lower(c[i]) {
			return false
		}
	}
	return true
}

func (c caseInsensitive) Hash() uint64 {
	var h uint64
	for i := 0; i < len(c); i++ {
		h = h*31 + uint64(lower(c[i]))
	}
	return h
}

func lower(b byte) byte {
	if 'A' <= b && b <= 'Z' {
		return b + 'a' - 'A'
	}
	return b
}

type tagged struct {
	tags []string
}

type measure struct {
	samples []float64
	offset  float64
}

type node struct {
	value int
	next  *node
}

func TestElementsEqual(t *testing.T) {
	testconfig.AllowParallelization(t)

	t.Run("nil", func(t *testing.T) {
		assert.True(t, ElementsEqual(nil, nil))
		assert.False(t, ElementsEqual(nil, 0))
		assert.False(t, ElementsEqual("", nil))
	})

	t.Run("comparable values", func(t *testing.T) {
		assert.True(t, ElementsEqual(1, 1))
		assert.True(t, ElementsEqual("a", "a"))
		assert.True(t, ElementsEqual(point{1, 2}, point{1, 2}))
		assert.False(t, ElementsEqual(point{1, 2}, point{2, 1}))
		assert.False(t, ElementsEqual(1, "1"))
		assert.False(t, ElementsEqual(1, int64(1)))
	})

	t.Run("pointers are compared by identity", func(t *testing.T) {
		p1 := &point{1, 2}
		p2 := &point{1, 2}
		assert.True(t, ElementsEqual(p1, p1))
		assert.False(t, ElementsEqual(p1, p2))
	})

	t.Run("zero and negative zero", func(t *testing.T) {
		assert.True(t, ElementsEqual(0.0, math.Copysign(0, -1)))
	})

	t.Run("non comparable values", func(t *testing.T) {
		assert.True(t, ElementsEqual([]int{1, 2}, []int{1, 2}))
		assert.False(t, ElementsEqual([]int{1, 2}, []int{2, 1}))
		assert.True(t, ElementsEqual(map[string]int{"a": 1}, map[string]int{"a": 1}))
		assert.True(t, ElementsEqual(tagged{[]string{"x"}}, tagged{[]string{"x"}}))
		assert.False(t, ElementsEqual(tagged{[]string{"x"}}, tagged{[]string{"y"}}))
		assert.False(t, ElementsEqual([]int{1}, 1))
	})

	t.Run("comparable type holding a non comparable value", func(t *testing.T) {
		type holder struct{ v any }
		assert.True(t, ElementsEqual(holder{[]int{1}}, holder{[]int{1}}))
		assert.False(t, ElementsEqual(holder{[]int{1}}, holder{[]int{2}}))
	})

	t.Run("equaler", func(t *testing.T) {
		assert.True(t, ElementsEqual(caseInsensitive("AbC"), "abc"))
		assert.True(t, ElementsEqual(caseInsensitive("AbC"), caseInsensitive("ABC")))
		assert.False(t, ElementsEqual(caseInsensitive("AbC"), "abd"))
		assert.False(t, ElementsEqual(caseInsensitive("1"), 1))
	})

	t.Run("sequences", func(t *testing.T) {
		assert.True(t, ElementsEqual(newSeq("a"), newSeq("a")))
		assert.False(t, ElementsEqual(newSeq("a"), newSeq("b")))
		assert.False(t, ElementsEqual(newSeq("a"), []any{"a"}))
	})
}

func TestElementHash(t *testing.T) {
	testconfig.AllowParallelization(t)

	t.Run("nil", func(t *testing.T) {
		assert.Zero(t, ElementHash(nil))
	})

	t.Run("equal elements have the same hash", func(t *testing.T) {
		pairs := [][2]any{
			{"abc", "abc"},
			{[]byte("abc"), []byte("abc")},
			{1, 1},
			{2.5, 2.5},
			{true, true},
			{point{1, 2}, point{1, 2}},
			{[]int{1, 2}, []int{1, 2}},
			{tagged{[]string{"x"}}, tagged{[]string{"x"}}},
			{0.0, math.Copysign(0, -1)},
			{float32(0), float32(math.Copysign(0, -1))},
			{caseInsensitive("ABC"), caseInsensitive("abc")},
			{newSeq("a", 1), newSeq("a", 1)},
		}

		for _, pair := range pairs {
			if !assert.True(t, ElementsEqual(pair[0], pair[1]), "%#v", pair[0]) {
				continue
			}
			assert.Equal(t, ElementHash(pair[0]), ElementHash(pair[1]), "%#v", pair[0])
		}
	})

	t.Run("different elements", func(t *testing.T) {
		assert.NotEqual(t, ElementHash("a"), ElementHash("b"))
		assert.NotEqual(t, ElementHash(1), ElementHash(2))
		assert.NotEqual(t, ElementHash(true), ElementHash(false))
		assert.NotEqual(t, ElementHash(point{1, 2}), ElementHash(point{2, 1}))
	})

	t.Run("hasher", func(t *testing.T) {
		assert.Equal(t, caseInsensitive("ab").Hash(), ElementHash(caseInsensitive("AB")))
	})

	t.Run("integers", func(t *testing.T) {
		assert.Equal(t, uint64(42), ElementHash(42))
		assert.Equal(t, uint64(42), ElementHash(uint8(42)))
	})

	t.Run("deeply equal values have the same hash", func(t *testing.T) {
		x, y := 1, 1
		negZero := math.Copysign(0, -1)

		selfLoop := &node{value: 1}
		selfLoop.next = selfLoop

		twoCycleA := &node{value: 1}
		twoCycleB := &node{value: 1, next: twoCycleA}
		twoCycleA.next = twoCycleB

		pairs := [][2]any{
			{[]*int{&x}, []*int{&y}},
			{measure{[]float64{0, 1}, negZero}, measure{[]float64{negZero, 1}, 0}},
			{map[string][]int{"a": {1}, "b": {2}, "c": {3}}, map[string][]int{"c": {3}, "b": {2}, "a": {1}}},
			{[]any{[]int{1}, "a", nil}, []any{[]int{1}, "a", nil}},
			{[]*node{selfLoop}, []*node{twoCycleA}},
		}

		for _, pair := range pairs {
			if !assert.True(t, ElementsEqual(pair[0], pair[1]), "%#v", pair[0]) {
				continue
			}
			assert.Equal(t, ElementHash(pair[0]), ElementHash(pair[1]), "%#v", pair[0])
		}
	})

	t.Run("values that differ deeply", func(t *testing.T) {
		x, y := 1, 2
		assert.NotEqual(t, ElementHash([]*int{&x}), ElementHash([]*int{&y}))
		assert.NotEqual(t, ElementHash(map[string]int{"a": 1}), ElementHash(map[string]int{"a": 2}))
		assert.NotEqual(t, ElementHash([]int{1, 2}), ElementHash([]int{2, 1}))
	})

	t.Run("equal sequences holding pointers have the same hash", func(t *testing.T) {
		x, y := 1, 1
		a := newSeq([]*int{&x}, measure{[]float64{1}, math.Copysign(0, -1)})
		b := newSeq([]*int{&y}, measure{[]float64{1}, 0})

		require.True(t, a.Equal(b))
		assert.Equal(t, a.Hash(), b.Hash())
	})
}
