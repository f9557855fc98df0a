package flatqueue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValuesYieldsLiveRegionInOrder(t *testing.T) {
	q := From([]int{1, 2, 3, 4, 5})
	q.Pop()
	q.Pop()

	var got []int
	for v := range q.Values() {
		got = append(got, v)
	}
	require.Equal(t, []int{3, 4, 5}, got)
}

func TestBackward(t *testing.T) {
	q := From([]int{1, 2, 3, 4})
	q.Pop()

	var got []int
	for v := range q.Backward() {
		got = append(got, v)
	}
	require.Equal(t, []int{4, 3, 2}, got)
}

func TestAllIndexesFromLogicalFront(t *testing.T) {
	q := From([]string{"a", "b", "c"})
	q.Pop()

	for i, v := range q.All() {
		require.Equal(t, q.At(i), v)
	}

	var idx []int
	for i := range q.All() {
		idx = append(idx, i)
	}
	require.Equal(t, []int{0, 1}, idx)
}

func TestIterationIsRestartable(t *testing.T) {
	q := From([]int{1, 2, 3})
	seq := q.Values()
	for range 2 {
		var got []int
		for v := range seq {
			got = append(got, v)
		}
		require.Equal(t, []int{1, 2, 3}, got)
	}
}

func TestIterationEarlyBreak(t *testing.T) {
	q := From([]int{1, 2, 3, 4})
	var got []int
	for v := range q.Values() {
		got = append(got, v)
		if len(got) == 2 {
			break
		}
	}
	require.Equal(t, []int{1, 2}, got)
	require.Equal(t, 4, q.Len(), "iteration must not mutate the queue")
}

func TestIterationOnEmptyQueue(t *testing.T) {
	q := New[int]()
	for range q.Values() {
		t.Fatal("empty queue yielded a value")
	}
	for range q.Backward() {
		t.Fatal("empty queue yielded a value")
	}
}

func TestMutationDuringIterationPanics(t *testing.T) {
	mutations := map[string]func(q *Queue[int]){
		"push":    func(q *Queue[int]) { q.Push(9) },
		"pop":     func(q *Queue[int]) { q.Pop() },
		"compact": func(q *Queue[int]) { q.ShrinkToFit() },
		"clear":   func(q *Queue[int]) { q.Clear() },
	}
	for name, mutate := range mutations {
		t.Run(name, func(t *testing.T) {
			q := From([]int{1, 2, 3, 4})
			require.PanicsWithValue(t, "flatqueue: queue modified during iteration", func() {
				for range q.Values() {
					mutate(q)
				}
			})
		})
	}
}

func TestSequenceRestartsAgainstCurrentContents(t *testing.T) {
	// A Seq value captures the queue, not a snapshot: restarting after a
	// mutation iterates the new contents rather than panicking.
	q := From([]int{1, 2})
	seq := q.Values()
	q.Push(3)
	var got []int
	for v := range seq {
		got = append(got, v)
	}
	require.Equal(t, []int{1, 2, 3}, got)
}
