package ringqueue

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestFIFOOrder(t *testing.T) {
	q := New[int](8)
	for i := 0; i < 100; i++ {
		q.Push(i)
	}
	for i := 0; i < 100; i++ {
		v, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, i, v)
	}
	_, ok := q.Pop()
	require.False(t, ok)
}

func TestWrapAround(t *testing.T) {
	q := New[int](8)
	for i := 0; i < 6; i++ {
		q.Push(i)
	}
	for i := 0; i < 4; i++ {
		q.Pop()
	}
	// head sits mid-buffer; pushing past the end must wrap.
	for i := 6; i < 12; i++ {
		q.Push(i)
	}
	for want := 4; want < 12; want++ {
		v, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, want, v)
	}
}

func TestShrinkWhenSparse(t *testing.T) {
	q := New[int](16)
	for i := 0; i < 128; i++ {
		q.Push(i)
	}
	grown := q.Cap()
	for i := 0; i < 124; i++ {
		q.Pop()
	}
	require.Less(t, q.Cap(), grown)
	for want := 124; want < 128; want++ {
		v, ok := q.Pop()
		require.True(t, ok)
		require.Equal(t, want, v)
	}
}

func TestPopZeroesSlot(t *testing.T) {
	q := New[*int](4)
	v := 7
	q.Push(&v)
	q.Pop()
	for _, p := range q.items {
		require.Nil(t, p)
	}
}
