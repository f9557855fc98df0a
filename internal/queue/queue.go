package queue

// FIFO describes the single-owner queue surface the testbench and the bench
// binary drive. Implementations are plain in-process containers: exactly one
// goroutine may mutate a queue at a time, and Pop is the comma-ok form so
// the harness never has to guess at emptiness.
//
// It doubles as a compile-time contract: each baseline package asserts that
// its queue satisfies FIFO, so signature drift is caught at build time.
type FIFO[T any] interface {
	// Push appends v as the new back of the queue, growing storage as needed.
	Push(v T)

	// Pop removes and returns the oldest element, or a zero value and false
	// when the queue is empty.
	Pop() (T, bool)

	// Len returns the number of elements currently queued.
	Len() int

	// Cap returns the total capacity of the backing storage.
	Cap() int
}
