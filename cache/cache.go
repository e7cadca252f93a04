package cache

import (
	"github.com/IvanBrykalov/slabcache/policy"
	"github.com/IvanBrykalov/slabcache/policy/lru"
)

// fixed is the arena-backed cache implementation. Four structures move in
// lock-step per operation: the arena (slot storage + free chain), the
// recency list, the key→index map, and the policy state. They are only ever
// mutated together, which is why the cache carries no internal locks.
type fixed[K comparable, V any] struct {
	arena arena[K, V]
	list  recencyList[K, V]
	index map[K]int32
	pol   policy.SlotPolicy
	opt   Options[K, V]
}

// New constructs a cache with the provided Options.
// Defaults:
//   - nil Metrics -> NoopMetrics
//   - nil Policy  -> LRU
//
// Configuration problems (zero/out-of-range Capacity, undersized Arena) are
// reported here; no cache value comes into existence on error.
func New[K comparable, V any](opt Options[K, V]) (Cache[K, V], error) {
	if err := opt.validate(); err != nil {
		return nil, err
	}
	if opt.Metrics == nil {
		opt.Metrics = NoopMetrics{}
	}
	if opt.Policy == nil {
		opt.Policy = lru.New()
	}

	slab := opt.Arena
	if slab == nil {
		slab = make([]Slot[K, V], opt.Capacity)
	} else {
		slab = slab[:opt.Capacity]
	}

	c := &fixed[K, V]{
		arena: newArena(slab),
		list:  newRecencyList(slab),
		index: make(map[K]int32, opt.Capacity),
		opt:   opt,
	}
	c.pol = opt.Policy.New(listHooks[K, V]{c: c})
	return c, nil
}

// ---- Cache[K,V] implementation ----

// Get returns the value for k, promoting the entry according to the policy.
func (c *fixed[K, V]) Get(k K) (V, bool) {
	i, ok := c.index[k]
	if !ok {
		c.opt.Metrics.Miss()
		var zero V
		return zero, false
	}
	c.pol.OnGet(int(i))
	c.opt.Metrics.Hit()
	return c.arena.slots[i].val, true
}

// Peek returns the value for k without altering recency order.
func (c *fixed[K, V]) Peek(k K) (V, bool) {
	i, ok := c.index[k]
	if !ok {
		c.opt.Metrics.Miss()
		var zero V
		return zero, false
	}
	c.opt.Metrics.Hit()
	return c.arena.slots[i].val, true
}

// Put inserts or updates k→v. Updates never evict: the key already owns its
// slot, so capacity cannot be exceeded. On a full-cache insert the recency
// tail is evicted first; its slot passes through the free chain and comes
// straight back (the chain is LIFO), so the same storage is recycled.
func (c *fixed[K, V]) Put(k K, v V) (V, bool) {
	if i, ok := c.index[k]; ok {
		s := &c.arena.slots[i]
		prev := s.val
		s.val = v
		c.pol.OnUpdate(int(i))
		return prev, true
	}

	i, ok := c.arena.acquire()
	if !ok {
		// Full arena means every slot is on the recency list,
		// so a victim always exists.
		victim, _ := c.list.back()
		c.evict(victim, EvictCapacity)
		i, _ = c.arena.acquire()
	}

	s := &c.arena.slots[i]
	s.key, s.val = k, v
	c.index[k] = i
	c.pol.OnAdd(int(i))
	c.opt.Metrics.Size(c.list.len())
	var zero V
	return zero, false
}

// Remove deletes k if present and returns the removed value.
func (c *fixed[K, V]) Remove(k K) (V, bool) {
	i, ok := c.index[k]
	if !ok {
		var zero V
		return zero, false
	}
	v := c.arena.slots[i].val
	c.pol.OnRemove(int(i))
	c.list.remove(i)
	delete(c.index, k)
	c.arena.release(i)
	c.opt.Metrics.Size(c.list.len())
	return v, true
}

// Contains reports presence without promoting the entry or touching metrics.
func (c *fixed[K, V]) Contains(k K) bool {
	_, ok := c.index[k]
	return ok
}

// Clear evicts every entry, LRU first, restoring the constructed state.
func (c *fixed[K, V]) Clear() {
	for {
		victim, ok := c.list.back()
		if !ok {
			break
		}
		c.evict(victim, EvictClear)
	}
	c.opt.Metrics.Size(0)
}

// Range visits entries from MRU to LRU. f must not mutate the cache.
func (c *fixed[K, V]) Range(f func(k K, v V) bool) {
	for i := c.list.head; i != noIndex; {
		s := &c.arena.slots[i]
		if !f(s.key, s.val) {
			return
		}
		i = s.next
	}
}

// Len returns the number of resident entries. It always equals the index
// map size and the recency-list length, and never exceeds Capacity.
func (c *fixed[K, V]) Len() int { return c.list.len() }

// Capacity returns the fixed slot count.
func (c *fixed[K, V]) Capacity() int { return len(c.arena.slots) }

// ---- internals ----

// evict removes one occupied slot: policy notification, list unlink, map
// delete, arena release, then metrics and the user callback. The callback
// sees the key/value captured before the slot is cleared.
func (c *fixed[K, V]) evict(i int32, reason EvictReason) {
	s := &c.arena.slots[i]
	k, v := s.key, s.val
	c.pol.OnRemove(int(i))
	c.list.remove(i)
	delete(c.index, k)
	c.arena.release(i)
	c.opt.Metrics.Evict(reason)
	if cb := c.opt.OnEvict; cb != nil {
		cb(k, v, reason)
	}
}

// ---- policy hooks ----

// listHooks adapts the recency list's index operations to policy.Hooks.
type listHooks[K comparable, V any] struct{ c *fixed[K, V] }

func (h listHooks[K, V]) MoveToFront(i int) { h.c.list.moveToFront(int32(i)) }
func (h listHooks[K, V]) PushFront(i int)   { h.c.list.pushFront(int32(i)) }
func (h listHooks[K, V]) Remove(i int)      { h.c.list.remove(int32(i)) }
func (h listHooks[K, V]) Len() int          { return h.c.list.len() }
func (h listHooks[K, V]) Back() int {
	i, ok := h.c.list.back()
	if !ok {
		return policy.NoSlot
	}
	return int(i)
}
