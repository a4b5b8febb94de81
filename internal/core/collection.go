package core

var (
	_ = []Collection{(*Sequence)(nil), (*SliceCollection)(nil)}
	_ = []Iterator{(*Cursor)(nil), (*sliceIterator)(nil)}
)

// An Iterable produces the elements it holds, in order.
type Iterable interface {
	Iterator() Iterator
}

type Iterator interface {
	HasNext() bool

	// Next should return ErrNoSuchElement if HasNext() is false.
	Next() (any, error)
}

// A Collection is an Iterable that knows its size and supports membership tests.
type Collection interface {
	Iterable
	Size() int

	// Contains should use ElementsEqual to compare elements.
	Contains(e any) bool
}

// SliceCollection is a read-only Collection backed by a Go slice, it is mostly useful
// to pass a few elements to the bulk operations of Sequence.
type SliceCollection struct {
	elements []any
}

// Values returns a Collection holding the given elements, the slice is not copied.
func Values(elements ...any) *SliceCollection {
	return &SliceCollection{elements: elements}
}

func (c *SliceCollection) Size() int {
	return len(c.elements)
}

func (c *SliceCollection) Contains(e any) bool {
	for _, elem := range c.elements {
		if ElementsEqual(elem, e) {
			return true
		}
	}
	return false
}

func (c *SliceCollection) Iterator() Iterator {
	return &sliceIterator{elements: c.elements}
}

type sliceIterator struct {
	elements []any
	next     int
}

func (it *sliceIterator) HasNext() bool {
	return it.next < len(it.elements)
}

func (it *sliceIterator) Next() (any, error) {
	if !it.HasNext() {
		return nil, ErrNoSuchElement
	}
	elem := it.elements[it.next]
	it.next++
	return elem, nil
}

// IterateAll drains an iterator and returns the produced elements.
func IterateAll(it Iterator) ([]any, error) {
	var elements []any
	for it.HasNext() {
		elem, err := it.Next()
		if err != nil {
			return nil, err
		}
		elements = append(elements, elem)
	}
	return elements, nil
}

// isNilIterable returns true if c is nil or is a typed nil of a known type.
func isNilIterable(c Iterable) bool {
	if c == nil {
		return true
	}
	switch coll := c.(type) {
	case *Sequence:
		return coll == nil
	case *SliceCollection:
		return coll == nil
	}
	return false
}
