// Package flatqueue implements a FIFO queue stored in a single contiguous,
// growable buffer instead of a linked structure, trading pointer-chasing for
// cache-friendly bulk storage.
//
// Dequeued elements are not reclaimed immediately. Pop only advances a front
// cursor, leaving a "dead" prefix behind it; the live contents occupy the
// buffer slots from the cursor to the end. Whenever the dead prefix grows
// past half the buffer, the queue compacts: the live elements move to the
// start of a fresh buffer and the cursor resets to zero. Dead space can
// therefore never exceed the live size, which keeps the total element moves
// across any sequence of N pops at O(N) while Push stays amortized O(1).
//
// The queue is a uniquely owned, single-threaded container. Concurrent
// mutation is out of contract and must be excluded by the caller. Any
// mutating call invalidates slices previously obtained from Data and any
// in-progress iteration; iteration detects this and panics rather than
// reading reallocated storage.
package flatqueue

import "math"

// Queue is a FIFO queue over one owned buffer plus a front cursor.
//
// Invariants, holding before and after every exported method:
// 0 <= front <= len(buf); slots [0, front) are dead, slots [front, len(buf))
// hold the live contents in FIFO order; and after any Pop the dead prefix is
// at most half of len(buf).
//
// The zero value is NOT ready to use; call New or From.
type Queue[T any] struct {
	buf    []T
	front  int
	growth float64

	// gen counts layout changes. Every mutation bumps it, so iterators can
	// detect that the storage they captured went stale.
	gen uint64
}

// New returns an empty queue.
func New[T any](opts ...Option) *Queue[T] {
	s := applyOptions(opts)
	q := &Queue[T]{growth: s.growth}
	if s.capacity > 0 {
		q.buf = make([]T, 0, s.capacity)
	}
	return q
}

// From returns a queue seeded with a copy of values, oldest first.
func From[T any](values []T, opts ...Option) *Queue[T] {
	s := applyOptions(opts)
	q := &Queue[T]{
		buf:    make([]T, len(values), max(s.capacity, len(values))),
		growth: s.growth,
	}
	copy(q.buf, values)
	return q
}

// Len returns the number of live elements.
func (q *Queue[T]) Len() int { return len(q.buf) - q.front }

// Empty reports whether the queue holds no live elements.
func (q *Queue[T]) Empty() bool { return q.front == len(q.buf) }

// Cap returns the total capacity of the backing buffer, dead space included.
func (q *Queue[T]) Cap() int { return cap(q.buf) }

// Front returns the oldest live element. Calling Front on an empty queue is
// a contract violation and panics; check Empty or Len first.
func (q *Queue[T]) Front() T {
	if q.Empty() {
		panic("flatqueue: Front on empty queue")
	}
	return q.buf[q.front]
}

// Back returns the newest live element. Panics on an empty queue.
func (q *Queue[T]) Back() T {
	if q.Empty() {
		panic("flatqueue: Back on empty queue")
	}
	return q.buf[len(q.buf)-1]
}

// At returns the i-th live element, 0 being the front. Panics when i is out
// of range.
func (q *Queue[T]) At(i int) T {
	if i < 0 || i >= q.Len() {
		panic("flatqueue: At index out of range")
	}
	return q.buf[q.front+i]
}

// Push appends v as the new back of the queue. When the buffer is full it is
// replaced by a larger one sized from the live length and the growth factor,
// which also discards any dead prefix. Amortized O(1).
func (q *Queue[T]) Push(v T) {
	if len(q.buf) == cap(q.buf) {
		q.compactTo(q.grownCap())
	}
	q.buf = append(q.buf, v)
	q.gen++
}

// Pop removes and returns the front element. The vacated slot is zeroed so
// the queue does not pin the popped value's referents. If the dead prefix
// then exceeds half the buffer, the queue compacts before returning.
//
// Pop on an empty queue is a contract violation and panics.
func (q *Queue[T]) Pop() T {
	if q.Empty() {
		panic("flatqueue: Pop on empty queue")
	}
	v := q.buf[q.front]
	var zero T
	q.buf[q.front] = zero
	q.front++
	q.gen++
	if q.front > len(q.buf)/2 {
		q.compactTo(int(math.Ceil(float64(q.Len()) * q.growth)))
	}
	return v
}

// Reserve guarantees that the next n pushes will not reallocate the buffer.
// It is a no-op when the spare capacity already suffices and never shrinks.
// On a non-empty queue the reservation reallocates compaction-style, sized
// from the live length.
func (q *Queue[T]) Reserve(n int) {
	if n <= cap(q.buf)-len(q.buf) {
		return
	}
	if q.Empty() {
		q.buf = make([]T, 0, n)
		q.front = 0
		q.gen++
		return
	}
	q.compactTo(q.Len() + n)
}

// CompactAndReserve discards the dead prefix and reallocates the buffer with
// capacity ceil(Len()*factor), never less than Len(). The front cursor is
// reset to zero whether or not any dead space existed. This is the primitive
// Pop's automatic trigger, Reserve and ShrinkToFit are built from.
func (q *Queue[T]) CompactAndReserve(factor float64) {
	q.compactTo(int(math.Ceil(float64(q.Len()) * factor)))
}

// ShrinkToFit eliminates all dead space and spare capacity, leaving exactly
// enough room for the live elements.
func (q *Queue[T]) ShrinkToFit() { q.CompactAndReserve(1.0) }

// Clear discards all live elements and resets the front cursor. Capacity is
// retained so a reused queue does not reallocate immediately.
func (q *Queue[T]) Clear() {
	clear(q.buf)
	q.buf = q.buf[:0]
	q.front = 0
	q.gen++
}

// Assign replaces the queue contents with a copy of values, oldest first.
func (q *Queue[T]) Assign(values []T) {
	q.buf = make([]T, len(values))
	copy(q.buf, values)
	q.front = 0
	q.gen++
}

// Clone returns a queue holding a copy of the live elements only; dead space
// and spare capacity are not carried over.
func (q *Queue[T]) Clone() *Queue[T] {
	c := &Queue[T]{
		buf:    make([]T, q.Len()),
		growth: q.growth,
	}
	copy(c.buf, q.buf[q.front:])
	return c
}

// Swap exchanges the contents of q and other in O(1). Iterators and Data
// views of both queues are invalidated.
func (q *Queue[T]) Swap(other *Queue[T]) {
	q.buf, other.buf = other.buf, q.buf
	q.front, other.front = other.front, q.front
	q.growth, other.growth = other.growth, q.growth
	q.gen++
	other.gen++
}

// Data returns the live region as a slice, front first. The slice aliases
// the queue's storage: it is read-only by convention, cannot be appended
// into the queue's spare capacity, and is invalidated by any mutating call.
func (q *Queue[T]) Data() []T {
	return q.buf[q.front:len(q.buf):len(q.buf)]
}

// grownCap sizes a growth reallocation. It applies the growth factor to the
// live length and always leaves room for at least one push, so Push never
// falls through to an untracked append reallocation.
func (q *Queue[T]) grownCap() int {
	n := int(math.Ceil(float64(q.Len()) * q.growth))
	if n <= q.Len() {
		n = q.Len() + 1
	}
	return n
}

// compactTo moves the live elements to the start of a fresh buffer with the
// given capacity (clamped to the live length) and resets the front cursor.
// The new buffer is fully built before it replaces the old one, so a failed
// allocation leaves the queue in its prior state.
func (q *Queue[T]) compactTo(capacity int) {
	size := q.Len()
	if capacity < size {
		capacity = size
	}
	next := make([]T, size, capacity)
	copy(next, q.buf[q.front:])
	q.buf = next
	q.front = 0
	q.gen++
}
