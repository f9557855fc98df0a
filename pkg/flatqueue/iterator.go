package flatqueue

import "iter"

// Values returns a restartable sequence over the live elements in FIFO
// order. Iteration is read-only; mutating the queue while a loop is running
// invalidates the iteration, which panics on its next step instead of
// reading reallocated storage.
func (q *Queue[T]) Values() iter.Seq[T] {
	return func(yield func(T) bool) {
		gen := q.gen
		for i := q.front; i < len(q.buf); i++ {
			if q.gen != gen {
				panic("flatqueue: queue modified during iteration")
			}
			if !yield(q.buf[i]) {
				return
			}
		}
	}
}

// Backward returns a restartable sequence over the live elements in reverse
// order, newest first. Same invalidation rules as Values.
func (q *Queue[T]) Backward() iter.Seq[T] {
	return func(yield func(T) bool) {
		gen := q.gen
		for i := len(q.buf) - 1; i >= q.front; i-- {
			if q.gen != gen {
				panic("flatqueue: queue modified during iteration")
			}
			if !yield(q.buf[i]) {
				return
			}
		}
	}
}

// All returns an indexed forward sequence; the index is the logical position
// from the front, matching At. Same invalidation rules as Values.
func (q *Queue[T]) All() iter.Seq2[int, T] {
	return func(yield func(int, T) bool) {
		gen := q.gen
		for i := q.front; i < len(q.buf); i++ {
			if q.gen != gen {
				panic("flatqueue: queue modified during iteration")
			}
			if !yield(i-q.front, q.buf[i]) {
				return
			}
		}
	}
}
