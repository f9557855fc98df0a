package flatqueue

import (
	"cmp"
	"slices"
)

// Comparison is defined over the logical contents only. Two queues with the
// same live sequence compare equal even when their dead prefixes or
// capacities differ, so none of these functions ever look at raw storage
// layout; they all go through the live-region view.

// Equal reports whether a and b hold the same live elements in the same
// order.
func Equal[T comparable](a, b *Queue[T]) bool {
	return slices.Equal(a.Data(), b.Data())
}

// EqualFunc is Equal with a caller-supplied element predicate, allowing the
// two queues to hold different element types.
func EqualFunc[T1, T2 any](a *Queue[T1], b *Queue[T2], eq func(T1, T2) bool) bool {
	return slices.EqualFunc(a.Data(), b.Data(), eq)
}

// Compare orders a and b lexicographically over their live sequences:
// elementwise first, then the shorter queue is less.
func Compare[T cmp.Ordered](a, b *Queue[T]) int {
	return slices.Compare(a.Data(), b.Data())
}

// CompareFunc is Compare with a caller-supplied element comparison.
func CompareFunc[T1, T2 any](a *Queue[T1], b *Queue[T2], compare func(T1, T2) int) int {
	return slices.CompareFunc(a.Data(), b.Data(), compare)
}
