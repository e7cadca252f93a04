package cache

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// listFixture builds a slab where every slot is occupied and detached,
// ready to be linked into a recency list by hand.
func listFixture(n int) (recencyList[int, int], *arena[int, int]) {
	a := newArena(make([]Slot[int, int], n))
	for i := 0; i < n; i++ {
		a.acquire()
	}
	return newRecencyList(a.slots), &a
}

// order walks head->tail and returns the visited indices.
func order[K comparable, V any](t *testing.T, l *recencyList[K, V]) []int32 {
	t.Helper()
	var got []int32
	for i := l.head; i != noIndex; i = l.slots[i].next {
		got = append(got, i)
		require.LessOrEqual(t, len(got), len(l.slots), "cycle detected")
	}
	return got
}

func TestRecency_EmptyList(t *testing.T) {
	t.Parallel()

	l, _ := listFixture(2)
	_, ok := l.back()
	require.False(t, ok)
	_, ok = l.popBack()
	require.False(t, ok)
	require.Zero(t, l.len())
}

func TestRecency_SingleElement(t *testing.T) {
	t.Parallel()

	l, _ := listFixture(3)
	l.pushFront(1)

	require.Equal(t, []int32{1}, order(t, &l))
	require.Equal(t, l.head, l.tail)

	// Promoting the sole element must be a no-op, not a mis-link.
	l.moveToFront(1)
	require.Equal(t, []int32{1}, order(t, &l))
	require.Equal(t, int32(1), l.tail)

	i, ok := l.popBack()
	require.True(t, ok)
	require.Equal(t, int32(1), i)
	require.Equal(t, noIndex, l.head)
	require.Equal(t, noIndex, l.tail)
	require.Zero(t, l.len())
}

func TestRecency_RemovePositions(t *testing.T) {
	t.Parallel()

	build := func() recencyList[int, int] {
		l, _ := listFixture(4)
		// push 3,2,1,0 so order is 0,1,2,3
		for i := int32(3); i >= 0; i-- {
			l.pushFront(i)
		}
		return l
	}

	l := build()
	l.remove(0) // head
	require.Equal(t, []int32{1, 2, 3}, order(t, &l))
	require.Equal(t, int32(3), l.tail)

	l = build()
	l.remove(3) // tail
	require.Equal(t, []int32{0, 1, 2}, order(t, &l))
	require.Equal(t, int32(2), l.tail)

	l = build()
	l.remove(2) // interior
	require.Equal(t, []int32{0, 1, 3}, order(t, &l))
	require.Equal(t, int32(3), l.slots[1].next)
	require.Equal(t, int32(1), l.slots[3].prev)

	// Removed slots come out fully detached.
	require.Equal(t, noIndex, l.slots[2].prev)
	require.Equal(t, noIndex, l.slots[2].next)
}

func TestRecency_MoveToFront(t *testing.T) {
	t.Parallel()

	l, _ := listFixture(3)
	for i := int32(2); i >= 0; i-- {
		l.pushFront(i) // order: 0,1,2
	}

	l.moveToFront(2) // from tail
	require.Equal(t, []int32{2, 0, 1}, order(t, &l))
	require.Equal(t, int32(1), l.tail)

	l.moveToFront(0) // from interior
	require.Equal(t, []int32{0, 2, 1}, order(t, &l))

	// Already at head: repeated calls must leave the list untouched.
	for i := 0; i < 3; i++ {
		l.moveToFront(0)
	}
	require.Equal(t, []int32{0, 2, 1}, order(t, &l))
	require.Equal(t, 3, l.len())
}

func TestRecency_PopBackDrainsInLRUOrder(t *testing.T) {
	t.Parallel()

	l, _ := listFixture(3)
	for i := int32(2); i >= 0; i-- {
		l.pushFront(i) // order: 0,1,2 — 2 is LRU
	}

	var drained []int32
	for {
		i, ok := l.popBack()
		if !ok {
			break
		}
		drained = append(drained, i)
	}
	require.Equal(t, []int32{2, 1, 0}, drained)
	require.Zero(t, l.len())
}
