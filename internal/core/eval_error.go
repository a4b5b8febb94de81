package core

import (
	"errors"
	"fmt"
)

var (
	// ErrIndexOutOfRange is returned when an index or a range falls outside the window of a sequence.
	ErrIndexOutOfRange = errors.New("index out of range")

	// ErrNilArgument is returned by operations whose collection or array argument is required.
	ErrNilArgument = errors.New("nil argument")

	// ErrIllegalState is returned by Cursor.Remove and Cursor.Set when no step
	// has been made since the creation of the cursor or since its last structural change.
	ErrIllegalState = errors.New("illegal cursor state")

	// ErrNoSuchElement is returned by Cursor.Next and Cursor.Previous when there is no element in that direction.
	ErrNoSuchElement = errors.New("no such element")
)

func FormatErrIndexOutOfRange(index, size int) error {
	return fmt.Errorf("%w: index %d, size %d", ErrIndexOutOfRange, index, size)
}

func FormatErrInsertionIndexOutOfRange(index, size int) error {
	return fmt.Errorf("%w: insertion index %d, size %d", ErrIndexOutOfRange, index, size)
}

func FormatErrRangeOutOfRange(from, to, size int) error {
	return fmt.Errorf("%w: range [%d, %d), size %d", ErrIndexOutOfRange, from, to, size)
}

func FormatErrNilArgument(operation string) error {
	return fmt.Errorf("%w: %s", ErrNilArgument, operation)
}
