package memds

// ArrayQueue is a thread unsafe FIFO queue backed by a slice. Dequeued slots are zeroed and the slice is
// compacted once more than half of it is made of dequeued slots.
type ArrayQueue[T any] struct {
	elements []T
	head     int //index of the first element
}

// NewArrayQueueFrom creates a queue whose elements are the given values (FIFO order), values is copied.
func NewArrayQueueFrom[T any](values []T) *ArrayQueue[T] {
	elements := make([]T, len(values))
	copy(elements, values)
	return &ArrayQueue[T]{elements: elements}
}

// Dequeue removes the first element and returns it, ok is false if the queue is empty.
func (q *ArrayQueue[T]) Dequeue() (value T, ok bool) {
	if q.Empty() {
		return
	}

	var zero T
	value = q.elements[q.head]
	q.elements[q.head] = zero
	q.head++

	if q.head == len(q.elements) {
		q.elements = q.elements[:0]
		q.head = 0
	} else if q.head > len(q.elements)/2 {
		n := copy(q.elements, q.elements[q.head:])
		clear(q.elements[n:])
		q.elements = q.elements[:n]
		q.head = 0
	}
	return value, true
}

func (q *ArrayQueue[T]) Empty() bool {
	return q.Size() == 0
}

func (q *ArrayQueue[T]) Size() int {
	return len(q.elements) - q.head
}
