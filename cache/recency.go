package cache

// recencyList is the intrusive doubly linked MRU↔LRU chain threaded through
// occupied arena slots. It shares the slab with the arena (the backing array
// never moves, so holding the slice here is safe) but touches only the
// prev/next links of occupied slots. All operations are O(1): a constant
// number of neighbor-link writes, never a traversal.
type recencyList[K comparable, V any] struct {
	slots []Slot[K, V]
	head  int32 // MRU; noIndex when empty
	tail  int32 // LRU; noIndex when empty
	size  int
}

func newRecencyList[K comparable, V any](slots []Slot[K, V]) recencyList[K, V] {
	return recencyList[K, V]{slots: slots, head: noIndex, tail: noIndex}
}

// pushFront links a detached occupied slot in at MRU.
func (l *recencyList[K, V]) pushFront(i int32) {
	s := &l.slots[i]
	s.prev = noIndex
	s.next = l.head
	if l.head != noIndex {
		l.slots[l.head].prev = i
	}
	l.head = i
	if l.tail == noIndex {
		l.tail = i
	}
	l.size++
}

// remove unlinks a slot wherever it sits: interior, head, tail, or sole
// element. The slot's own links are reset to noIndex.
func (l *recencyList[K, V]) remove(i int32) {
	s := &l.slots[i]
	if s.prev != noIndex {
		l.slots[s.prev].next = s.next
	}
	if s.next != noIndex {
		l.slots[s.next].prev = s.prev
	}
	if l.head == i {
		l.head = s.next
	}
	if l.tail == i {
		l.tail = s.prev
	}
	s.prev, s.next = noIndex, noIndex
	l.size--
}

// moveToFront promotes a linked slot to MRU. No-op when already the head,
// so repeated promotion of the same slot cannot mis-link the chain.
func (l *recencyList[K, V]) moveToFront(i int32) {
	if l.head == i {
		return
	}
	l.remove(i)
	l.pushFront(i)
}

// back returns the LRU slot, the eviction candidate, without unlinking it.
func (l *recencyList[K, V]) back() (int32, bool) {
	if l.tail == noIndex {
		return noIndex, false
	}
	return l.tail, true
}

// popBack unlinks and returns the LRU slot.
func (l *recencyList[K, V]) popBack() (int32, bool) {
	i, ok := l.back()
	if !ok {
		return noIndex, false
	}
	l.remove(i)
	return i, true
}

func (l *recencyList[K, V]) len() int { return l.size }
