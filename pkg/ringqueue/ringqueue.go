// Package ringqueue is a circular-buffer FIFO used as a benchmark baseline.
// Unlike the flat queue it reuses freed slots in place by wrapping head and
// tail around a fixed buffer, so steady-state traffic never moves elements;
// the price is modular index arithmetic on every operation.
package ringqueue

import "github.com/quevin/flatqueue/internal/queue"

const minCapacity = 16

var _ queue.FIFO[int] = (*Queue[int])(nil)

// Queue is a growable ring buffer. Single-owner, like every queue in this
// repository.
type Queue[T any] struct {
	items []T
	head  int
	tail  int
	count int
}

// New returns an empty queue with at least the given initial capacity.
func New[T any](capacity int) *Queue[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &Queue[T]{items: make([]T, capacity)}
}

// Push appends item, doubling the buffer when full.
func (q *Queue[T]) Push(item T) {
	if q.count == len(q.items) {
		q.resize(q.count * 2)
	}
	q.items[q.tail] = item
	q.tail = (q.tail + 1) % len(q.items)
	q.count++
}

// Pop removes and returns the oldest item. The freed slot is zeroed so the
// buffer does not pin popped referents. When occupancy drops below a quarter
// the buffer shrinks by half, down to a floor of 16 slots.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if q.count == 0 {
		return zero, false
	}
	item := q.items[q.head]
	q.items[q.head] = zero
	q.head = (q.head + 1) % len(q.items)
	q.count--

	if len(q.items) > minCapacity && q.count > 0 && q.count <= len(q.items)/4 {
		q.resize(len(q.items) / 2)
	}
	return item, true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return q.count }

// Cap returns the size of the ring buffer.
func (q *Queue[T]) Cap() int { return len(q.items) }

func (q *Queue[T]) resize(newCap int) {
	buf := make([]T, newCap)
	if q.count > 0 {
		if q.head < q.tail {
			copy(buf, q.items[q.head:q.tail])
		} else {
			n := copy(buf, q.items[q.head:])
			copy(buf[n:], q.items[:q.tail])
		}
	}
	q.items = buf
	q.head = 0
	q.tail = q.count % newCap
}
