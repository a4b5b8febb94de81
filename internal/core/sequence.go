package core

import (
	"fmt"
	"iter"
	"strings"
	"weak"

	"github.com/bits-and-blooms/bitset"
	"github.com/rs/zerolog"
	"github.com/seqview/seqview/internal/memds"
	"github.com/seqview/seqview/internal/utils"
)

const (
	// NotFound is returned by IndexOf and LastIndexOf when no element matches.
	NotFound = -1

	// SubView drops the handles to collected views each time their number reaches a multiple of this value.
	VIEW_HANDLE_PRUNING_INTERVAL = 32
)

// A Sequence is an ordered, mutable collection of elements of any type, nil elements and duplicates are allowed.
// A root Sequence owns its backing store, a view (see SubView) shares the backing store of the root and represents
// the window [lowerBound, upperBound) of it. Any insertion or removal performed through a view is propagated
// to the bounds of all its ancestors, and to the bounds of the views derived from it. Sibling views are not informed.
//
// Sequences are not safe for concurrent use.
type Sequence struct {
	elements   *memds.Vector[any] //shared by the root and all its views
	lowerBound int                //inclusive
	upperBound int                //exclusive
	parent     *Sequence          //nil for a root
	children   []weak.Pointer[Sequence]
	logger     zerolog.Logger
}

type Option func(s *Sequence)

// WithLogger sets the logger of the sequence, views inherit the logger of their parent.
func WithLogger(logger zerolog.Logger) Option {
	return func(s *Sequence) {
		s.logger = ChildLoggerForSource(logger, SEQUENCE_LOG_SRC)
	}
}

// WithCapacity preallocates the backing store.
func WithCapacity(capacity int) Option {
	return func(s *Sequence) {
		s.elements = memds.NewVectorWithCapacity[any](capacity)
	}
}

// New creates an empty root sequence.
func New(opts ...Option) *Sequence {
	s := &Sequence{
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.elements == nil {
		s.elements = memds.NewVector[any]()
	}
	return s
}

// NewFrom creates a root sequence containing the elements produced by src, in order.
func NewFrom(src Iterable, opts ...Option) (*Sequence, error) {
	if isNilIterable(src) {
		return nil, FormatErrNilArgument("NewFrom")
	}

	values, err := IterateAll(src.Iterator())
	if err != nil {
		return nil, err
	}

	s := New(opts...)
	for _, v := range values {
		s.Add(v)
	}
	return s, nil
}

// Size returns the number of elements in the window of the sequence.
func (s *Sequence) Size() int {
	return s.upperBound - s.lowerBound
}

func (s *Sequence) IsEmpty() bool {
	return s.Size() == 0
}

// Depth returns the number of ancestors of the sequence, 0 for a root.
func (s *Sequence) Depth() int {
	depth := 0
	for p := s.parent; p != nil; p = p.parent {
		depth++
	}
	return depth
}

// Root returns the sequence owning the backing store.
func (s *Sequence) Root() *Sequence {
	root := s
	for root.parent != nil {
		root = root.parent
	}
	return root
}

func (s *Sequence) Get(i int) (any, error) {
	if !utils.InRange(i, 0, s.Size()) {
		return nil, FormatErrIndexOutOfRange(i, s.Size())
	}
	return s.elements.At(s.lowerBound + i), nil
}

// Set replaces the element at i and returns the previous element.
func (s *Sequence) Set(i int, v any) (prev any, err error) {
	if !utils.InRange(i, 0, s.Size()) {
		return nil, FormatErrIndexOutOfRange(i, s.Size())
	}
	return s.elements.Set(s.lowerBound+i, v), nil
}

// Add appends v at the end of the sequence.
func (s *Sequence) Add(v any) {
	p := s.upperBound
	if p == s.elements.Len() {
		s.elements.Append(v)
	} else {
		s.elements.Insert(p, v)
	}
	s.structuralChange(1, shiftedByInsertion(p, 1))
}

// Insert inserts v at i, 0 <= i <= Size(), the following elements are shifted.
func (s *Sequence) Insert(i int, v any) error {
	if !utils.InRange(i, 0, s.Size()+1) {
		return FormatErrInsertionIndexOutOfRange(i, s.Size())
	}
	p := s.lowerBound + i
	s.elements.Insert(p, v)
	s.structuralChange(1, shiftedByInsertion(p, 1))
	return nil
}

// RemoveAt removes the element at i and returns it, the following elements are shifted.
func (s *Sequence) RemoveAt(i int) (any, error) {
	if !utils.InRange(i, 0, s.Size()) {
		return nil, FormatErrIndexOutOfRange(i, s.Size())
	}
	p := s.lowerBound + i
	removed := s.elements.Remove(p)
	s.structuralChange(-1, shiftedByRangeRemoval(p, p+1))
	return removed, nil
}

// Remove removes the first element equal to v, it returns true if an element has been removed.
func (s *Sequence) Remove(v any) bool {
	index := s.IndexOf(v)
	if index == NotFound {
		return false
	}
	_, err := s.RemoveAt(index)
	return err == nil
}

// Clear removes all the elements of the window.
func (s *Sequence) Clear() {
	size := s.Size()
	if size == 0 {
		return
	}
	from, to := s.lowerBound, s.upperBound
	s.elements.RemoveRange(from, to)
	s.structuralChange(-size, shiftedByRangeRemoval(from, to))
}

func (s *Sequence) Contains(v any) bool {
	return s.IndexOf(v) != NotFound
}

// IndexOf returns the index of the first element equal to v, or NotFound.
func (s *Sequence) IndexOf(v any) int {
	c := s.Cursor()
	for c.HasNext() {
		if ElementsEqual(c.forward(), v) {
			return c.PreviousIndex()
		}
	}
	return NotFound
}

// LastIndexOf returns the index of the last element equal to v, or NotFound.
func (s *Sequence) LastIndexOf(v any) int {
	c := s.cursorAt(s.Size())
	for c.HasPrevious() {
		if ElementsEqual(c.backward(), v) {
			return c.NextIndex()
		}
	}
	return NotFound
}

// ToArray returns a new slice containing the elements of the sequence.
func (s *Sequence) ToArray() []any {
	array := make([]any, s.Size())
	s.elements.CopyTo(array, s.lowerBound, s.upperBound)
	return array
}

// ToArrayInto copies the elements into target and sets the remaining slots of target to nil if target
// is large enough, target is returned. If target is too small a new slice is returned and target is left untouched.
func (s *Sequence) ToArrayInto(target []any) ([]any, error) {
	if target == nil {
		return nil, FormatErrNilArgument("ToArrayInto")
	}
	if len(target) < s.Size() {
		return s.ToArray(), nil
	}

	n := s.elements.CopyTo(target, s.lowerBound, s.upperBound)
	clear(target[n:])
	return target, nil
}

// SubView returns a view of the window [from, to) of the sequence. Structural changes made through the view
// are propagated to s and its ancestors, the view and s share the same backing store.
func (s *Sequence) SubView(from, to int) (*Sequence, error) {
	if from < 0 || to > s.Size() || from > to {
		return nil, FormatErrRangeOutOfRange(from, to, s.Size())
	}

	view := &Sequence{
		elements:   s.elements,
		lowerBound: s.lowerBound + from,
		upperBound: s.lowerBound + to,
		parent:     s,
		logger:     s.logger,
	}
	if len(s.children) > 0 && len(s.children)%VIEW_HANDLE_PRUNING_INTERVAL == 0 {
		s.pruneChildren()
	}
	s.children = append(s.children, weak.Make(view))

	s.logger.Debug().
		Int("depth", view.Depth()).
		Int("lower", view.lowerBound).
		Int("upper", view.upperBound).
		Msg("view created")
	return view, nil
}

// structuralChange updates the bounds of s and its ancestors after an insertion (delta > 0) or a removal (delta < 0)
// made through s, then updates the bounds of the views derived from s.
func (s *Sequence) structuralChange(delta int, adjust boundsAdjuster) {
	s.propagate(delta)
	s.adjustDescendants(adjust)
}

// propagate adds delta to the upper bound of s and of all its ancestors.
func (s *Sequence) propagate(delta int) {
	depth := 0
	for seq := s; seq != nil; seq = seq.parent {
		seq.upperBound += delta
		depth++
	}

	if depth > 1 {
		s.logger.Debug().Int("delta", delta).Int("depth", depth-1).Int("size", s.Size()).Msg("bounds propagated")
	}
}

// pruneChildren forgets the views that have been garbage collected.
func (s *Sequence) pruneChildren() {
	live := s.children[:0]
	for _, ptr := range s.children {
		if ptr.Value() != nil {
			live = append(live, ptr)
		}
	}
	clear(s.children[len(live):])
	s.children = live
}

// adjustDescendants applies adjust to the bounds of all the live views derived from s,
// views that have been garbage collected are forgotten.
func (s *Sequence) adjustDescendants(adjust boundsAdjuster) {
	if len(s.children) == 0 {
		return
	}

	live := s.children[:0]
	for _, ptr := range s.children {
		child := ptr.Value()
		if child == nil {
			continue
		}
		live = append(live, ptr)
		child.lowerBound, child.upperBound = adjust(child.lowerBound, child.upperBound)
		child.adjustDescendants(adjust)
	}
	clear(s.children[len(live):])
	s.children = live
}

// A boundsAdjuster computes the new bounds of a view after a structural change, bounds are absolute positions
// in the backing store.
type boundsAdjuster func(lower, upper int) (int, int)

// shiftedByInsertion returns the adjuster for the insertion of n elements at position p:
// windows located after p are shifted and windows containing p grow.
func shiftedByInsertion(p, n int) boundsAdjuster {
	return func(lower, upper int) (int, int) {
		switch {
		case p < lower:
			return lower + n, upper + n
		case p < upper:
			return lower, upper + n
		default:
			return lower, upper
		}
	}
}

// shiftedByRangeRemoval returns the adjuster for the removal of the positions [from, to).
func shiftedByRangeRemoval(from, to int) boundsAdjuster {
	return func(lower, upper int) (int, int) {
		before := max(0, min(to, lower)-from)
		inside := max(0, min(to, upper)-max(from, lower))
		return lower - before, upper - before - inside
	}
}

// shiftedByRemoval returns the adjuster for the removal of the positions base+i for every i set in removed.
func shiftedByRemoval(base int, removed *bitset.BitSet) boundsAdjuster {
	return func(lower, upper int) (int, int) {
		before, inside := 0, 0
		for i, ok := removed.NextSet(0); ok; i, ok = removed.NextSet(i + 1) {
			p := base + int(i)
			if p >= upper {
				break
			}
			if p < lower {
				before++
			} else {
				inside++
			}
		}
		return lower - before, upper - before - inside
	}
}

// Equal returns true if other is a *Sequence with the same size and pairwise equal elements (see ElementsEqual).
func (s *Sequence) Equal(other any) bool {
	otherSeq, ok := other.(*Sequence)
	if !ok || otherSeq == nil {
		return false
	}
	if s == otherSeq {
		return true
	}
	if s.Size() != otherSeq.Size() {
		return false
	}

	c := s.Cursor()
	otherCursor := otherSeq.Cursor()
	for c.HasNext() {
		if !ElementsEqual(c.forward(), otherCursor.forward()) {
			return false
		}
	}
	return true
}

// Hash returns a hash computed from the hashes of the elements (see ElementHash), in order.
// Equal sequences have the same hash.
func (s *Sequence) Hash() uint64 {
	hash := uint64(SEQUENCE_HASH_SEED)
	c := s.Cursor()
	for c.HasNext() {
		hash = hash*SEQUENCE_HASH_MULTIPLIER + ElementHash(c.forward())
	}
	return hash
}

// Iterator returns a cursor positioned before the first element.
func (s *Sequence) Iterator() Iterator {
	return s.Cursor()
}

// Cursor returns a cursor positioned before the first element.
func (s *Sequence) Cursor() *Cursor {
	return s.cursorAt(0)
}

// CursorAt returns a cursor whose next element is the element at i, 0 <= i <= Size().
func (s *Sequence) CursorAt(i int) (*Cursor, error) {
	if !utils.InRange(i, 0, s.Size()+1) {
		return nil, FormatErrIndexOutOfRange(i, s.Size())
	}
	return s.cursorAt(i), nil
}

func (s *Sequence) cursorAt(i int) *Cursor {
	return &Cursor{
		seq:   s,
		next:  i,
		prior: i - 1,
	}
}

// All returns an iterator over the indexes and elements of the sequence, the size is evaluated at each step.
func (s *Sequence) All() iter.Seq2[int, any] {
	return func(yield func(int, any) bool) {
		for i := 0; i < s.Size(); i++ {
			if !yield(i, s.elements.At(s.lowerBound+i)) {
				return
			}
		}
	}
}

func (s *Sequence) String() string {
	var b strings.Builder
	b.WriteByte('[')
	for i, e := range s.All() {
		if i > 0 {
			b.WriteString(", ")
		}
		if seq, ok := e.(*Sequence); ok && seq == s {
			b.WriteString("(this sequence)")
			continue
		}
		fmt.Fprintf(&b, "%v", e)
	}
	b.WriteByte(']')
	return b.String()
}
