package scenario

import (
	"errors"
	"fmt"
	"slices"

	"github.com/seqview/seqview/internal/core"
)

type targetKind int

const (
	noTarget targetKind = iota
	sequenceTarget
	cursorTarget
)

type requirement uint8

const (
	needsIndex requirement = 1 << iota
	needsValue
	needsRange
	needsCollection
	needsName
	needsOtherSequence
)

var (
	errorKinds = map[string]error{
		"index_out_of_range": core.ErrIndexOutOfRange,
		"nil_argument":       core.ErrNilArgument,
		"illegal_state":      core.ErrIllegalState,
		"no_such_element":    core.ErrNoSuchElement,
	}

	operations = map[string]operation{
		//sequence queries

		"size": {target: sequenceTarget, run: onSequence(func(s *core.Sequence, _ Step) (any, error) {
			return s.Size(), nil
		})},
		"is_empty": {target: sequenceTarget, run: onSequence(func(s *core.Sequence, _ Step) (any, error) {
			return s.IsEmpty(), nil
		})},
		"depth": {target: sequenceTarget, run: onSequence(func(s *core.Sequence, _ Step) (any, error) {
			return s.Depth(), nil
		})},
		"get": {target: sequenceTarget, requires: needsIndex, run: onSequence(func(s *core.Sequence, step Step) (any, error) {
			return s.Get(step.Index)
		})},
		"contains": {target: sequenceTarget, requires: needsValue, run: onSequence(func(s *core.Sequence, step Step) (any, error) {
			return s.Contains(step.Value), nil
		})},
		"index_of": {target: sequenceTarget, requires: needsValue, run: onSequence(func(s *core.Sequence, step Step) (any, error) {
			return s.IndexOf(step.Value), nil
		})},
		"last_index_of": {target: sequenceTarget, requires: needsValue, run: onSequence(func(s *core.Sequence, step Step) (any, error) {
			return s.LastIndexOf(step.Value), nil
		})},
		"elements": {target: sequenceTarget, run: onSequence(func(s *core.Sequence, _ Step) (any, error) {
			return s.ToArray(), nil
		})},
		"to_array": {target: sequenceTarget, run: onSequence(toArray)},
		"string": {target: sequenceTarget, run: onSequence(func(s *core.Sequence, _ Step) (any, error) {
			return s.String(), nil
		})},
		"contains_all": {target: sequenceTarget, requires: needsCollection, run: withCollection(func(s *core.Sequence, c core.Collection, _ Step) (any, error) {
			return s.ContainsAll(c)
		})},

		//sequence mutations

		"add": {target: sequenceTarget, requires: needsValue, run: onSequence(func(s *core.Sequence, step Step) (any, error) {
			if step.HasIndex {
				return nil, s.Insert(step.Index, step.Value)
			}
			s.Add(step.Value)
			return nil, nil
		})},
		"insert": {target: sequenceTarget, requires: needsIndex | needsValue, run: onSequence(func(s *core.Sequence, step Step) (any, error) {
			return nil, s.Insert(step.Index, step.Value)
		})},
		"set": {target: sequenceTarget, requires: needsIndex | needsValue, run: onSequence(func(s *core.Sequence, step Step) (any, error) {
			return s.Set(step.Index, step.Value)
		})},
		"remove_at": {target: sequenceTarget, requires: needsIndex, run: onSequence(func(s *core.Sequence, step Step) (any, error) {
			return s.RemoveAt(step.Index)
		})},
		"remove": {target: sequenceTarget, requires: needsValue, run: onSequence(func(s *core.Sequence, step Step) (any, error) {
			return s.Remove(step.Value), nil
		})},
		"clear": {target: sequenceTarget, run: onSequence(func(s *core.Sequence, _ Step) (any, error) {
			s.Clear()
			return nil, nil
		})},
		"add_all": {target: sequenceTarget, requires: needsCollection, run: withCollection(func(s *core.Sequence, c core.Collection, step Step) (any, error) {
			if step.HasIndex {
				return nil, s.InsertAll(step.Index, c)
			}
			return nil, s.AddAll(c)
		})},
		"insert_all": {target: sequenceTarget, requires: needsIndex | needsCollection, run: withCollection(func(s *core.Sequence, c core.Collection, step Step) (any, error) {
			return nil, s.InsertAll(step.Index, c)
		})},
		"remove_all": {target: sequenceTarget, requires: needsCollection, run: withCollection(func(s *core.Sequence, c core.Collection, _ Step) (any, error) {
			return s.RemoveAll(c)
		})},
		"retain_all": {target: sequenceTarget, requires: needsCollection, run: withCollection(func(s *core.Sequence, c core.Collection, _ Step) (any, error) {
			return s.RetainAll(c)
		})},

		//comparison

		"equals": {target: sequenceTarget, requires: needsOtherSequence, run: func(r *runner, step Step) (any, error) {
			s, other, err := r.sequencePair(step)
			if err != nil {
				return nil, err
			}
			return s.Equal(other), nil
		}},
		"hash_equals": {target: sequenceTarget, requires: needsOtherSequence, run: func(r *runner, step Step) (any, error) {
			s, other, err := r.sequencePair(step)
			if err != nil {
				return nil, err
			}
			return s.Hash() == other.Hash(), nil
		}},

		//views & cursors

		"subview": {target: sequenceTarget, declares: sequenceTarget, requires: needsRange | needsName, run: func(r *runner, step Step) (any, error) {
			s, err := r.sequence(step)
			if err != nil {
				return nil, err
			}
			view, err := s.SubView(step.From, step.To)
			if err != nil {
				return nil, err
			}
			r.sequences[step.As] = view
			return view.ToArray(), nil
		}},
		"cursor": {target: sequenceTarget, declares: cursorTarget, requires: needsName, run: func(r *runner, step Step) (any, error) {
			s, err := r.sequence(step)
			if err != nil {
				return nil, err
			}
			index := 0
			if step.HasIndex {
				index = step.Index
			}
			cursor, err := s.CursorAt(index)
			if err != nil {
				return nil, err
			}
			r.cursors[step.As] = cursor
			return nil, nil
		}},
		"next": {target: cursorTarget, run: onCursor(func(c *core.Cursor, _ Step) (any, error) {
			return c.Next()
		})},
		"previous": {target: cursorTarget, run: onCursor(func(c *core.Cursor, _ Step) (any, error) {
			return c.Previous()
		})},
		"has_next": {target: cursorTarget, run: onCursor(func(c *core.Cursor, _ Step) (any, error) {
			return c.HasNext(), nil
		})},
		"has_previous": {target: cursorTarget, run: onCursor(func(c *core.Cursor, _ Step) (any, error) {
			return c.HasPrevious(), nil
		})},
		"next_index": {target: cursorTarget, run: onCursor(func(c *core.Cursor, _ Step) (any, error) {
			return c.NextIndex(), nil
		})},
		"previous_index": {target: cursorTarget, run: onCursor(func(c *core.Cursor, _ Step) (any, error) {
			return c.PreviousIndex(), nil
		})},
		"cursor_add": {target: cursorTarget, requires: needsValue, run: onCursor(func(c *core.Cursor, step Step) (any, error) {
			return nil, c.Add(step.Value)
		})},
		"cursor_set": {target: cursorTarget, requires: needsValue, run: onCursor(func(c *core.Cursor, step Step) (any, error) {
			return nil, c.Set(step.Value)
		})},
		"cursor_remove": {target: cursorTarget, run: onCursor(func(c *core.Cursor, _ Step) (any, error) {
			return nil, c.Remove()
		})},
	}
)

type operation struct {
	target   targetKind
	declares targetKind
	requires requirement
	run      func(r *runner, step Step) (any, error)
}

// validate checks that the step has the arguments required by the operation.
func (op operation) validate(step Step, mapping map[string]any) error {
	if op.requires&needsIndex != 0 && !step.HasIndex {
		return errors.New("missing 'index'")
	}
	if op.requires&needsValue != 0 && !step.HasValue {
		return errors.New("missing 'value'")
	}
	if op.requires&needsRange != 0 {
		_, hasFrom := mapping["from"]
		_, hasTo := mapping["to"]
		if !hasFrom || !hasTo {
			return errors.New("missing 'from' or 'to'")
		}
	}
	_, hasValues := mapping["values"]
	if op.requires&needsCollection != 0 {
		if step.With == "" && !hasValues {
			return errors.New("missing 'values' or 'with'")
		}
		if step.With != "" && hasValues {
			return errors.New("'values' and 'with' are mutually exclusive")
		}
	}
	if op.requires&needsOtherSequence != 0 && step.With == "" {
		return errors.New("missing 'with'")
	}
	if op.requires&needsName != 0 && step.As == "" {
		return errors.New("missing 'as'")
	}
	if op.requires&needsName == 0 && step.As != "" {
		return errors.New("'as' is not supported")
	}
	return nil
}

// ErrorKindNames returns the sorted names of the error kinds that a step can expect.
func ErrorKindNames() []string {
	names := make([]string, 0, len(errorKinds))
	for name := range errorKinds {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// OperationNames returns the sorted names of the supported operations.
func OperationNames() []string {
	names := make([]string, 0, len(operations))
	for name := range operations {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

func onSequence(fn func(s *core.Sequence, step Step) (any, error)) func(r *runner, step Step) (any, error) {
	return func(r *runner, step Step) (any, error) {
		s, err := r.sequence(step)
		if err != nil {
			return nil, err
		}
		return fn(s, step)
	}
}

func withCollection(fn func(s *core.Sequence, c core.Collection, step Step) (any, error)) func(r *runner, step Step) (any, error) {
	return func(r *runner, step Step) (any, error) {
		s, err := r.sequence(step)
		if err != nil {
			return nil, err
		}
		c, err := r.collection(step)
		if err != nil {
			return nil, err
		}
		return fn(s, c, step)
	}
}

func onCursor(fn func(c *core.Cursor, step Step) (any, error)) func(r *runner, step Step) (any, error) {
	return func(r *runner, step Step) (any, error) {
		name := step.target()
		cursor, ok := r.cursors[name]
		if !ok {
			return nil, fmt.Errorf("%w: cursor %q is not bound", ErrInvalidStep, name)
		}
		return fn(cursor, step)
	}
}

// toArray copies the elements into a new array of the given length if 'length' is set,
// a null 'values' passes a nil array.
func toArray(s *core.Sequence, step Step) (any, error) {
	if !step.HasLength {
		return s.ToArray(), nil
	}
	var target []any
	if !step.NilCollection {
		target = make([]any, step.Length)
	}
	return s.ToArrayInto(target)
}
