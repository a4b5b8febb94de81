package core

import (
	"github.com/bits-and-blooms/bitset"
)

// ContainsAll returns true if every element of c is contained in the sequence.
func (s *Sequence) ContainsAll(c Collection) (bool, error) {
	if isNilIterable(c) {
		return false, FormatErrNilArgument("ContainsAll")
	}

	values, err := IterateAll(c.Iterator())
	if err != nil {
		return false, err
	}

	for _, v := range values {
		if !s.Contains(v) {
			return false, nil
		}
	}
	return true, nil
}

// AddAll appends the elements of c, in iteration order.
func (s *Sequence) AddAll(c Collection) error {
	if isNilIterable(c) {
		return FormatErrNilArgument("AddAll")
	}
	return s.InsertAll(s.Size(), c)
}

// InsertAll inserts the elements of c at i, in iteration order, 0 <= i <= Size().
// The elements of c are read before any modification so c may be the sequence itself or one of its views.
func (s *Sequence) InsertAll(i int, c Collection) error {
	if i < 0 || i > s.Size() {
		return FormatErrInsertionIndexOutOfRange(i, s.Size())
	}
	if isNilIterable(c) {
		return FormatErrNilArgument("InsertAll")
	}

	values, err := IterateAll(c.Iterator())
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}

	p := s.lowerBound + i
	s.elements.InsertSlice(p, values)
	s.structuralChange(len(values), shiftedByInsertion(p, len(values)))
	return nil
}

// RemoveAll removes every element equal to an element of c, it returns true if at least one element has been removed.
func (s *Sequence) RemoveAll(c Collection) (bool, error) {
	if isNilIterable(c) {
		return false, FormatErrNilArgument("RemoveAll")
	}

	values, err := IterateAll(c.Iterator())
	if err != nil {
		return false, err
	}

	return s.removeMarked(func(e any) bool {
		for _, v := range values {
			if ElementsEqual(e, v) {
				return true
			}
		}
		return false
	}), nil
}

// RetainAll removes every element that is not contained in c, it returns true if at least one element has been removed.
func (s *Sequence) RetainAll(c Collection) (bool, error) {
	if isNilIterable(c) {
		return false, FormatErrNilArgument("RetainAll")
	}

	return s.removeMarked(func(e any) bool {
		return !c.Contains(e)
	}), nil
}

// removeMarked marks the positions of the elements for which shouldRemove returns true, then
// removes all of them in a single pass and propagates the size change once.
func (s *Sequence) removeMarked(shouldRemove func(e any) bool) bool {
	size := s.Size()
	if size == 0 {
		return false
	}

	marked := bitset.New(uint(size))
	for i, e := range s.All() {
		if shouldRemove(e) {
			marked.Set(uint(i))
		}
	}

	if marked.None() {
		return false
	}

	base := s.lowerBound
	removed := s.elements.RemoveMarked(base, s.upperBound, marked)
	s.structuralChange(-removed, shiftedByRemoval(base, marked))

	s.logger.Debug().Int("removed", removed).Int("size", s.Size()).Msg("bulk removal")
	return true
}
