package memds

import (
	"github.com/bits-and-blooms/bitset"
	"github.com/seqview/seqview/internal/utils"
)

const (
	VECTOR_SHRINK_DIVIDER        = 2
	MIN_SHRINKABLE_VECTOR_LENGTH = 10 * VECTOR_SHRINK_DIVIDER
)

// Vector is a thread unsafe growable array. Indexes are not validated beyond what Go
// does for slices: callers are expected to check bounds before calling a method.
type Vector[T any] struct {
	elements []T
}

func NewVector[T any]() *Vector[T] {
	return &Vector[T]{}
}

func NewVectorWithCapacity[T any](capacity int) *Vector[T] {
	if capacity < 0 {
		capacity = 0
	}
	return &Vector[T]{elements: make([]T, 0, capacity)}
}

// Len returns the number of elements stored in the vector.
func (v *Vector[T]) Len() int {
	return len(v.elements)
}

func (v *Vector[T]) Cap() int {
	return cap(v.elements)
}

// Append adds an element at the end of the vector.
func (v *Vector[T]) Append(elem T) {
	v.elements = append(v.elements, elem)
}

func (v *Vector[T]) At(i int) T {
	return v.elements[i]
}

// Set replaces the element at i and returns the previous one.
func (v *Vector[T]) Set(i int, elem T) (prev T) {
	prev = v.elements[i]
	v.elements[i] = elem
	return
}

// Insert inserts elem at i, 0 <= i <= Len(), shifting the following elements.
func (v *Vector[T]) Insert(i int, elem T) {
	if i == len(v.elements) {
		v.elements = append(v.elements, elem)
		return
	}
	var zero T
	v.elements = append(v.elements, zero)
	copy(v.elements[i+1:], v.elements[i:])
	v.elements[i] = elem
}

// InsertSlice inserts all the values at i with a single shift of the tail.
func (v *Vector[T]) InsertSlice(i int, values []T) {
	n := len(values)
	if n == 0 {
		return
	}

	oldLen := len(v.elements)
	newLen := oldLen + n

	if newLen > cap(v.elements) {
		newElements := make([]T, newLen, max(newLen, 2*oldLen))
		copy(newElements, v.elements[:i])
		copy(newElements[i+n:], v.elements[i:])
		v.elements = newElements
	} else {
		v.elements = v.elements[:newLen]
		copy(v.elements[i+n:], v.elements[i:oldLen])
	}

	copy(v.elements[i:], values)
}

// Remove removes the element at i and returns it.
func (v *Vector[T]) Remove(i int) T {
	removed := v.elements[i]
	last := len(v.elements) - 1

	if i != last {
		copy(v.elements[i:], v.elements[i+1:])
	}
	//let the removed value be garbage collected.
	clear(v.elements[last:])
	v.elements = v.elements[:last]
	v.elements = utils.ShrinkSliceIfWastedCapacity(v.elements, MIN_SHRINKABLE_VECTOR_LENGTH, VECTOR_SHRINK_DIVIDER)
	return removed
}

// RemoveRange removes the elements of [from, to).
func (v *Vector[T]) RemoveRange(from, to int) {
	if from == to {
		return
	}
	copy(v.elements[from:], v.elements[to:])
	newLen := len(v.elements) - (to - from)
	clear(v.elements[newLen:])
	v.elements = v.elements[:newLen]
	v.elements = utils.ShrinkSliceIfWastedCapacity(v.elements, MIN_SHRINKABLE_VECTOR_LENGTH, VECTOR_SHRINK_DIVIDER)
}

// RemoveMarked removes the elements of [from, to) whose position relative to from is set in marked,
// the relative order of the remaining elements is kept. The number of removed elements is returned.
func (v *Vector[T]) RemoveMarked(from, to int, marked *bitset.BitSet) int {
	if marked == nil || marked.None() {
		return 0
	}

	write := from
	for read := from; read < to; read++ {
		if marked.Test(uint(read - from)) {
			continue
		}
		v.elements[write] = v.elements[read]
		write++
	}

	removed := to - write
	if removed == 0 {
		return 0
	}

	copy(v.elements[write:], v.elements[to:])
	newLen := len(v.elements) - removed
	clear(v.elements[newLen:])
	v.elements = v.elements[:newLen]
	v.elements = utils.ShrinkSliceIfWastedCapacity(v.elements, MIN_SHRINKABLE_VECTOR_LENGTH, VECTOR_SHRINK_DIVIDER)
	return removed
}

// CopyTo copies the elements of [from, to) into dst and returns the number of copied elements.
func (v *Vector[T]) CopyTo(dst []T, from, to int) int {
	return copy(dst, v.elements[from:to])
}
