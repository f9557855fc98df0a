// Package shiftqueue is the naive slice FIFO: Push appends, Pop reslices
// past the front. It exists as the benchmark's lower bound — the advancing
// reslice keeps the entire backing array reachable for as long as any
// element remains, which is exactly the unbounded dead space the flat
// queue's compaction policy prevents.
package shiftqueue

import "github.com/quevin/flatqueue/internal/queue"

var _ queue.FIFO[int] = (*Queue[int])(nil)

// Queue is an append/reslice FIFO. Single-owner.
type Queue[T any] struct {
	items []T
}

// New returns an empty queue with the given preallocated capacity.
func New[T any](prealloc int) *Queue[T] {
	return &Queue[T]{items: make([]T, 0, prealloc)}
}

// Push appends item to the back.
func (q *Queue[T]) Push(item T) {
	q.items = append(q.items, item)
}

// Pop removes and returns the front item. The slot is zeroed before the
// reslice so at least the element value itself is released, even though the
// array slot is not.
func (q *Queue[T]) Pop() (T, bool) {
	var zero T
	if len(q.items) == 0 {
		return zero, false
	}
	item := q.items[0]
	q.items[0] = zero
	q.items = q.items[1:]
	return item, true
}

// Len returns the number of queued items.
func (q *Queue[T]) Len() int { return len(q.items) }

// Cap returns the remaining capacity of the current slice window.
func (q *Queue[T]) Cap() int { return cap(q.items) }
