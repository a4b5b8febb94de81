package core

import "fmt"

// Move is the last directional step made by a Cursor.
type Move int

const (
	MoveNone Move = iota
	MoveForward
	MoveBackward
)

func (m Move) String() string {
	switch m {
	case MoveNone:
		return "none"
	case MoveForward:
		return "forward"
	case MoveBackward:
		return "backward"
	default:
		return fmt.Sprintf("Move(%d)", int(m))
	}
}

// A Cursor is a bidirectional position in a Sequence. A Cursor has no current element: its position
// lies between the element that would be returned by Previous and the element that would be returned by Next.
// Remove and Set act on the element returned by the last call to Next or Previous.
type Cursor struct {
	seq      *Sequence
	prior    int //always next - 1
	next     int
	lastMove Move
}

func (c *Cursor) HasNext() bool {
	return c.next < c.seq.Size()
}

// Next returns the next element and moves the cursor forward, ErrNoSuchElement is returned if there is no next element.
func (c *Cursor) Next() (any, error) {
	if !c.HasNext() {
		return nil, fmt.Errorf("%w: next index %d, size %d", ErrNoSuchElement, c.next, c.seq.Size())
	}
	elem, err := c.seq.Get(c.next)
	if err != nil {
		return nil, err
	}
	c.moveForward()
	return elem, nil
}

func (c *Cursor) HasPrevious() bool {
	return c.prior >= 0
}

// Previous returns the previous element and moves the cursor backward, ErrNoSuchElement is returned if there
// is no previous element. ErrIndexOutOfRange is returned if the sequence has shrunk below the position of the cursor,
// the cursor does not move in that case.
func (c *Cursor) Previous() (any, error) {
	if !c.HasPrevious() {
		return nil, fmt.Errorf("%w: at the start of the sequence", ErrNoSuchElement)
	}
	elem, err := c.seq.Get(c.prior)
	if err != nil {
		return nil, err
	}
	c.moveBackward()
	return elem, nil
}

func (c *Cursor) moveForward() {
	c.next++
	c.prior = c.next - 1
	c.lastMove = MoveForward
}

func (c *Cursor) moveBackward() {
	c.prior--
	c.next = c.prior + 1
	c.lastMove = MoveBackward
}

// forward reads the next element without bounds checking, it should only be called if HasNext() is true.
func (c *Cursor) forward() any {
	elem := c.seq.elements.At(c.seq.lowerBound + c.next)
	c.moveForward()
	return elem
}

// backward reads the previous element without bounds checking, it should only be called if
// HasPrevious() is true and the cursor is within the window of the sequence.
func (c *Cursor) backward() any {
	elem := c.seq.elements.At(c.seq.lowerBound + c.prior)
	c.moveBackward()
	return elem
}

// NextIndex returns the index of the element that would be returned by Next.
func (c *Cursor) NextIndex() int {
	return c.next
}

// PreviousIndex returns the index of the element that would be returned by Previous, -1 at the start of the sequence.
func (c *Cursor) PreviousIndex() int {
	return c.prior
}

func (c *Cursor) LastMove() Move {
	return c.lastMove
}

// lastVisited returns the index of the element returned by the last call to Next or Previous.
func (c *Cursor) lastVisited() (int, error) {
	switch c.lastMove {
	case MoveForward:
		return c.prior, nil
	case MoveBackward:
		return c.next, nil
	default:
		return 0, fmt.Errorf("%w: no call to Next or Previous since the last structural change", ErrIllegalState)
	}
}

// Remove removes the element returned by the last call to Next or Previous from the sequence.
// ErrIllegalState is returned if neither Next nor Previous has been called since the creation of
// the cursor or since the last call to Remove or Add.
func (c *Cursor) Remove() error {
	index, err := c.lastVisited()
	if err != nil {
		return err
	}

	if _, err := c.seq.RemoveAt(index); err != nil {
		return err
	}

	if c.lastMove == MoveForward {
		c.next--
		c.prior = c.next - 1
	}
	c.lastMove = MoveNone
	return nil
}

// Set replaces the element returned by the last call to Next or Previous, the position of the cursor is not changed.
func (c *Cursor) Set(v any) error {
	index, err := c.lastVisited()
	if err != nil {
		return err
	}

	_, err = c.seq.Set(index, v)
	return err
}

// Add inserts v before the element that would be returned by Next, a subsequent call to Previous returns v.
func (c *Cursor) Add(v any) error {
	if err := c.seq.Insert(c.next, v); err != nil {
		return err
	}
	c.next++
	c.prior = c.next - 1
	c.lastMove = MoveNone
	return nil
}
