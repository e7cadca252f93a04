package cache

// arena owns the slab and the intrusive free chain threaded through its
// unused slots. It never allocates after construction: acquire and release
// only move slots between the free chain and the occupied set.
type arena[K comparable, V any] struct {
	slots []Slot[K, V]
	free  int32 // head of the free chain; noIndex when the arena is full
}

// newArena threads a free chain through every slot of the slab.
// The slab may be caller-supplied and dirty, so it is reset wholesale.
func newArena[K comparable, V any](slots []Slot[K, V]) arena[K, V] {
	clear(slots)
	for i := range slots {
		slots[i].nextFree = int32(i) + 1
		slots[i].prev = noIndex
		slots[i].next = noIndex
	}
	free := noIndex
	if len(slots) > 0 {
		slots[len(slots)-1].nextFree = noIndex
		free = 0
	}
	return arena[K, V]{slots: slots, free: free}
}

// acquire pops the free-chain head and marks it occupied, in O(1).
// Returns false when every slot is occupied. Which free slot comes back is
// unspecified; callers must not rely on the current LIFO order.
func (a *arena[K, V]) acquire() (int32, bool) {
	i := a.free
	if i == noIndex {
		return noIndex, false
	}
	s := &a.slots[i]
	a.free = s.nextFree
	s.nextFree = noIndex
	s.prev, s.next = noIndex, noIndex
	s.state = slotOccupied
	return i, true
}

// release clears the slot's entry and pushes it onto the free chain, in O(1).
// The slot must already be detached from the recency list.
func (a *arena[K, V]) release(i int32) {
	s := &a.slots[i]
	var zeroK K
	var zeroV V
	s.key, s.val = zeroK, zeroV
	s.prev, s.next = noIndex, noIndex
	s.state = slotFree
	s.nextFree = a.free
	a.free = i
}
