package policy

// NoSlot is returned by Hooks.Back when the recency list is empty.
const NoSlot = -1

// Hooks expose the O(1) recency-list operations a policy can use to reorder
// occupied arena slots. Slots are identified by their arena index; the cache
// core implements Hooks on top of its intrusive list and owns all storage.
//
// Concurrency: the core is single-owner, so hook calls are never concurrent.
// Important: hooks manage only recency order; the core owns the key→slot map
// and the free list.
type Hooks interface {
	// MoveToFront promotes the slot to MRU. Must be a no-op when the slot
	// is already at the head.
	MoveToFront(i int)
	// PushFront inserts a newly occupied slot at MRU (used on admission).
	PushFront(i int)
	// Remove detaches the slot from recency order (free-list and map
	// bookkeeping is done by the core).
	Remove(i int)
	// Back returns the current eviction candidate (LRU), or NoSlot when
	// the list is empty.
	Back() int
	// Len returns the number of occupied slots.
	Len() int
}

// SlotPolicy is a per-cache policy instance bound to that cache's hooks.
//
// Semantics:
//   - OnAdd is called once per admission, after the slot becomes occupied.
//     The core has already made room: when the arena was full it evicted
//     Back() before acquiring, so policies never choose victims directly.
//   - OnGet/OnUpdate typically promote the slot (e.g. move to MRU).
//   - OnRemove is a notification for policy-internal state; the core
//     performs the actual unlinking and release.
type SlotPolicy interface {
	OnAdd(i int)
	OnGet(i int)
	OnUpdate(i int)
	OnRemove(i int)
}

// Policy is a factory that creates a policy instance bound to a particular
// cache's hooks. One instance per cache value; instances are not shared.
type Policy interface {
	New(Hooks) SlotPolicy
}
