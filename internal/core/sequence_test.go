package core

import (
	"bytes"
	"runtime"
	"testing"

	"github.com/rs/zerolog"
	"github.com/seqview/seqview/internal/testconfig"
	"github.com/seqview/seqview/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var planets = []any{"Mercury", "Venus", "Earth", "Mars"}

func newSeq(elems ...any) *Sequence {
	s := New()
	for _, e := range elems {
		s.Add(e)
	}
	return s
}

func TestNewSequence(t *testing.T) {
	testconfig.AllowParallelization(t)

	t.Run("empty", func(t *testing.T) {
		s := New()
		assert.Zero(t, s.Size())
		assert.True(t, s.IsEmpty())
		assert.Zero(t, s.Depth())
		assert.Same(t, s, s.Root())
		assert.Equal(t, []any{}, s.ToArray())
	})

	t.Run("with capacity", func(t *testing.T) {
		s := New(WithCapacity(100))
		assert.True(t, s.IsEmpty())
		assert.GreaterOrEqual(t, s.elements.Cap(), 100)
	})

	t.Run("from collection", func(t *testing.T) {
		s, err := NewFrom(Values("a", nil, "a"))
		require.NoError(t, err)
		assert.Equal(t, []any{"a", nil, "a"}, s.ToArray())
	})

	t.Run("from sequence", func(t *testing.T) {
		src := newSeq(planets...)
		s, err := NewFrom(src)
		require.NoError(t, err)
		assert.Equal(t, planets, s.ToArray())

		//the copy does not share the backing store of the source.
		s.Add("Jupiter")
		assert.Equal(t, 4, src.Size())
	})

	t.Run("from nil", func(t *testing.T) {
		_, err := NewFrom(nil)
		assert.ErrorIs(t, err, ErrNilArgument)

		var nilSeq *Sequence
		_, err = NewFrom(nilSeq)
		assert.ErrorIs(t, err, ErrNilArgument)
	})
}

func TestSequenceQueries(t *testing.T) {
	testconfig.AllowParallelization(t)

	t.Run("size", func(t *testing.T) {
		s := newSeq(planets...)
		assert.Equal(t, 4, s.Size())
		s.Add("Jupiter")
		assert.Equal(t, 5, s.Size())
		s.RemoveAt(0)
		s.RemoveAt(0)
		assert.Equal(t, 3, s.Size())
	})

	t.Run("is empty", func(t *testing.T) {
		s := newSeq(planets...)
		for !s.IsEmpty() {
			_, err := s.RemoveAt(0)
			require.NoError(t, err)
		}
		assert.True(t, s.IsEmpty())
	})

	t.Run("contains", func(t *testing.T) {
		s := newSeq(planets...)
		assert.True(t, s.Contains("Earth"))
		assert.False(t, s.Contains("Death Star"))
		assert.False(t, s.Contains(nil))

		s.Add(nil)
		assert.True(t, s.Contains(nil))
	})

	t.Run("get", func(t *testing.T) {
		s := newSeq(planets...)
		for i, p := range planets {
			e, err := s.Get(i)
			require.NoError(t, err)
			assert.Equal(t, p, e)
		}

		_, err := s.Get(-1)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)

		_, err = s.Get(4)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})

	t.Run("index of", func(t *testing.T) {
		s := newSeq("a", "b", nil, "a", nil)
		assert.Equal(t, 0, s.IndexOf("a"))
		assert.Equal(t, 1, s.IndexOf("b"))
		assert.Equal(t, 2, s.IndexOf(nil))
		assert.Equal(t, NotFound, s.IndexOf("c"))
	})

	t.Run("last index of", func(t *testing.T) {
		s := newSeq("a", "b", nil, "a", nil)
		assert.Equal(t, 3, s.LastIndexOf("a"))
		assert.Equal(t, 1, s.LastIndexOf("b"))
		assert.Equal(t, 4, s.LastIndexOf(nil))
		assert.Equal(t, NotFound, s.LastIndexOf("c"))
		assert.Equal(t, NotFound, New().LastIndexOf("a"))
	})

	t.Run("string", func(t *testing.T) {
		s := newSeq("a", 1, nil)
		assert.Equal(t, "[a, 1, <nil>]", s.String())
		assert.Equal(t, "[]", New().String())

		s.Add(s)
		assert.Equal(t, "[a, 1, <nil>, (this sequence)]", s.String())
	})

	t.Run("all", func(t *testing.T) {
		s := newSeq(planets...)
		var indexes []int
		var elements []any
		for i, e := range s.All() {
			indexes = append(indexes, i)
			elements = append(elements, e)
		}
		assert.Equal(t, []int{0, 1, 2, 3}, indexes)
		assert.Equal(t, planets, elements)

		count := 0
		for range s.All() {
			count++
			if count == 2 {
				break
			}
		}
		assert.Equal(t, 2, count)
	})
}

func TestSequenceToArray(t *testing.T) {
	testconfig.AllowParallelization(t)

	t.Run("fresh slice", func(t *testing.T) {
		s := newSeq(planets...)
		array := s.ToArray()
		assert.Equal(t, planets, array)

		array[0] = "Pluto"
		assert.Equal(t, "Mercury", utils.Must(s.Get(0)))
	})

	t.Run("larger target", func(t *testing.T) {
		s := newSeq(planets...)
		target := []any{"x", "x", "x", "x", "x", "x"}
		result, err := s.ToArrayInto(target)
		require.NoError(t, err)

		assert.Same(t, &target[0], &result[0])
		assert.Equal(t, []any{"Mercury", "Venus", "Earth", "Mars", nil, nil}, result)
	})

	t.Run("same size target", func(t *testing.T) {
		s := newSeq(planets...)
		target := make([]any, 4)
		result, err := s.ToArrayInto(target)
		require.NoError(t, err)
		assert.Same(t, &target[0], &result[0])
		assert.Equal(t, planets, result)
	})

	t.Run("smaller target", func(t *testing.T) {
		s := newSeq(planets...)
		target := []any{"x", "y"}
		result, err := s.ToArrayInto(target)
		require.NoError(t, err)

		assert.Len(t, result, 4)
		assert.Equal(t, planets, result)
		assert.Equal(t, []any{"x", "y"}, target)
	})

	t.Run("empty target and empty sequence", func(t *testing.T) {
		result, err := New().ToArrayInto([]any{})
		require.NoError(t, err)
		assert.Equal(t, []any{}, result)
	})

	t.Run("nil target", func(t *testing.T) {
		_, err := newSeq(planets...).ToArrayInto(nil)
		assert.ErrorIs(t, err, ErrNilArgument)
	})

	t.Run("three elements, target of length 1", func(t *testing.T) {
		s := newSeq("A", "B", "C")
		target := make([]any, 1)
		result, err := s.ToArrayInto(target)
		require.NoError(t, err)
		assert.Equal(t, []any{"A", "B", "C"}, result)
		assert.Equal(t, []any{nil}, target)
	})
}

func TestSequenceMutation(t *testing.T) {
	testconfig.AllowParallelization(t)

	t.Run("add", func(t *testing.T) {
		s := New()
		s.Add("A")
		s.Add("B")
		require.NoError(t, s.Insert(0, "C"))
		assert.Equal(t, []any{"C", "A", "B"}, s.ToArray())
	})

	t.Run("add duplicates and nil", func(t *testing.T) {
		s := New()
		s.Add(nil)
		s.Add(nil)
		s.Add("a")
		s.Add("a")
		assert.Equal(t, []any{nil, nil, "a", "a"}, s.ToArray())
	})

	t.Run("insert", func(t *testing.T) {
		s := newSeq(planets...)
		require.NoError(t, s.Insert(0, "StrangePlanet"))
		assert.Equal(t, []any{"StrangePlanet", "Mercury", "Venus", "Earth", "Mars"}, s.ToArray())

		require.NoError(t, s.Insert(2, "Pippo"))
		assert.Equal(t, []any{"StrangePlanet", "Mercury", "Pippo", "Venus", "Earth", "Mars"}, s.ToArray())

		require.NoError(t, s.Insert(6, "Jupiter"))
		assert.Equal(t, []any{"StrangePlanet", "Mercury", "Pippo", "Venus", "Earth", "Mars", "Jupiter"}, s.ToArray())
	})

	t.Run("insert out of range", func(t *testing.T) {
		s := newSeq(planets...)
		assert.ErrorIs(t, s.Insert(-1, "x"), ErrIndexOutOfRange)
		assert.ErrorIs(t, s.Insert(5, "x"), ErrIndexOutOfRange)
		assert.Equal(t, planets, s.ToArray())
	})

	t.Run("set", func(t *testing.T) {
		s := newSeq(planets...)
		prev, err := s.Set(2, "Pluto")
		require.NoError(t, err)
		assert.Equal(t, "Earth", prev)
		assert.Equal(t, []any{"Mercury", "Venus", "Pluto", "Mars"}, s.ToArray())

		_, err = s.Set(4, "x")
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		_, err = s.Set(-1, "x")
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
	})

	t.Run("remove at", func(t *testing.T) {
		s := newSeq(planets...)
		removed, err := s.RemoveAt(1)
		require.NoError(t, err)
		assert.Equal(t, "Venus", removed)
		assert.Equal(t, []any{"Mercury", "Earth", "Mars"}, s.ToArray())

		_, err = s.RemoveAt(3)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.Equal(t, 3, s.Size())
	})

	t.Run("remove value", func(t *testing.T) {
		s := newSeq(planets...)
		assert.True(t, s.Remove("Earth"))
		assert.Equal(t, []any{"Mercury", "Venus", "Mars"}, s.ToArray())

		_, err := s.RemoveAt(1)
		require.NoError(t, err)
		assert.Equal(t, []any{"Mercury", "Mars"}, s.ToArray())

		s.Add(nil)
		assert.Equal(t, []any{"Mercury", "Mars", nil}, s.ToArray())

		s.Add("Mars")
		assert.True(t, s.Remove("Mars"))
		assert.Equal(t, []any{"Mercury", nil, "Mars"}, s.ToArray())

		assert.True(t, s.Remove(nil))
		assert.False(t, s.Remove(nil))
		assert.False(t, s.Remove("Death Star"))
		assert.Equal(t, []any{"Mercury", "Mars"}, s.ToArray())
	})

	t.Run("clear", func(t *testing.T) {
		s := newSeq(planets...)
		s.Clear()
		assert.True(t, s.IsEmpty())
		assert.Equal(t, []any{}, s.ToArray())

		s.Clear()
		assert.True(t, s.IsEmpty())
	})

	t.Run("size is always the number of retrievable elements", func(t *testing.T) {
		s := New()
		check := func() {
			count := 0
			for i := 0; i < s.Size(); i++ {
				_, err := s.Get(i)
				require.NoError(t, err)
				count++
			}
			_, err := s.Get(s.Size())
			require.ErrorIs(t, err, ErrIndexOutOfRange)
			assert.Equal(t, count, s.Size())
		}

		for i := 0; i < 50; i++ {
			s.Add(i)
			check()
			require.NoError(t, s.Insert(i/2, -i))
			check()
			if i%3 == 0 {
				_, err := s.RemoveAt(0)
				require.NoError(t, err)
				check()
			}
		}
		s.Clear()
		check()
	})
}

func TestSequenceEqualityAndHash(t *testing.T) {
	testconfig.AllowParallelization(t)

	t.Run("equal sequences", func(t *testing.T) {
		a := newSeq(planets...)
		b := newSeq(planets...)
		assert.True(t, a.Equal(b))
		assert.True(t, b.Equal(a))
		assert.Equal(t, a.Hash(), b.Hash())
	})

	t.Run("a sequence is equal to itself", func(t *testing.T) {
		a := newSeq(planets...)
		assert.True(t, a.Equal(a))
	})

	t.Run("value equality is used for elements", func(t *testing.T) {
		a := newSeq([]byte("a"), point{1, 2})
		b := newSeq([]byte("a"), point{1, 2})
		assert.True(t, a.Equal(b))
		assert.Equal(t, a.Hash(), b.Hash())
	})

	t.Run("different sizes", func(t *testing.T) {
		a := newSeq(planets...)
		b := newSeq(planets[:3]...)
		assert.False(t, a.Equal(b))
	})

	t.Run("different order", func(t *testing.T) {
		a := newSeq("a", "b")
		b := newSeq("b", "a")
		assert.False(t, a.Equal(b))
		assert.NotEqual(t, a.Hash(), b.Hash())
	})

	t.Run("non sequence values", func(t *testing.T) {
		a := newSeq(planets...)
		assert.False(t, a.Equal(nil))
		assert.False(t, a.Equal(planets))
		var nilSeq *Sequence
		assert.False(t, a.Equal(nilSeq))
	})

	t.Run("view equal to root", func(t *testing.T) {
		root := newSeq("x", "a", "b", "y")
		view, err := root.SubView(1, 3)
		require.NoError(t, err)

		other := newSeq("a", "b")
		assert.True(t, view.Equal(other))
		assert.True(t, other.Equal(view))
		assert.Equal(t, other.Hash(), view.Hash())
	})

	t.Run("nested sequences", func(t *testing.T) {
		a := newSeq(newSeq("a"), nil)
		b := newSeq(newSeq("a"), nil)
		assert.True(t, a.Equal(b))
		assert.Equal(t, a.Hash(), b.Hash())
	})

	t.Run("hash of empty sequence is the seed", func(t *testing.T) {
		assert.Equal(t, uint64(SEQUENCE_HASH_SEED), New().Hash())
	})

	t.Run("hash combination", func(t *testing.T) {
		s := newSeq(nil, 2)
		expected := uint64(1)
		expected = expected*31 + 0
		expected = expected*31 + 2
		assert.Equal(t, expected, s.Hash())
	})
}

func TestSequenceLogging(t *testing.T) {
	testconfig.AllowParallelization(t)

	buf := bytes.NewBuffer(nil)
	logger := zerolog.New(buf).Level(zerolog.DebugLevel)

	s := New(WithLogger(logger))
	s.Add("a")
	s.Add("b")
	view, err := s.SubView(0, 1)
	require.NoError(t, err)

	view.Add("c")
	_, err = view.RemoveAll(Values("a"))
	require.NoError(t, err)

	output := buf.String()
	assert.Contains(t, output, `"src":"sequence"`)
	assert.Contains(t, output, "view created")
	assert.Contains(t, output, "bounds propagated")
	assert.Contains(t, output, "bulk removal")
}

func TestSequenceClearReleasesElements(t *testing.T) {
	startStats := new(runtime.MemStats)
	runtime.ReadMemStats(startStats)

	s := New()
	for i := 0; i < 5_000; i++ {
		s.Add(make([]byte, 1_000))
	}
	s.Clear()

	utils.AssertNoMemoryLeak(t, startStats, 1_000_000)
	runtime.KeepAlive(s)
}

type point struct {
	x, y int
}
