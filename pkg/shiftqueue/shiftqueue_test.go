package shiftqueue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFIFOOrder(t *testing.T) {
	q := New[int](4)
	for i := 0; i < 50; i++ {
		q.Push(i)
	}
	for i := 0; i < 50; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	require.Zero(t, q.Len())
	_, ok := q.Pop()
	require.False(t, ok)
}

func TestInterleaved(t *testing.T) {
	q := New[string](0)
	q.Push("a")
	q.Push("b")
	v, _ := q.Pop()
	require.Equal(t, "a", v)
	q.Push("c")
	v, _ = q.Pop()
	require.Equal(t, "b", v)
	v, _ = q.Pop()
	require.Equal(t, "c", v)
}

func TestPopZeroesSlot(t *testing.T) {
	q := New[*int](4)
	a, b := 1, 2
	q.Push(&a)
	q.Push(&b)
	full := q.items[:2]
	q.Pop()
	require.Nil(t, full[0], "popped slot must not pin its element")
}
