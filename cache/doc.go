// Package cache provides a fixed-capacity, generic LRU cache backed by an
// intrusive slab arena. After construction the cache performs no per-entry
// heap allocations: all entries live in one contiguous slab of slots, and
// both the free list and the recency order are threaded through that slab
// as integer indices.
//
// # Design
//
//   - Storage: a fixed arena of Slot values, sized once at construction and
//     never grown. Unused slots form an intrusive singly linked free chain;
//     occupied slots form an intrusive doubly linked MRU↔LRU list. A slot is
//     always on exactly one of the two chains.
//
//   - Lookup: a key→slot-index map, pre-sized to capacity, kept in lock-step
//     with the occupied set. All operations are O(1) expected: one map access
//     plus a constant number of index fixes.
//
//   - Eviction: when a Put misses and the arena is full, the recency-list
//     tail is evicted to make room. Policies are pluggable via the policy
//     package; LRU is the default, FIFO is provided for scan-heavy loads.
//
//   - Ownership: a Cache is a single-owner, synchronous structure. Methods
//     are NOT safe for concurrent use; wrap the whole cache in one lock, or
//     use the sharded package, when multiple goroutines need access. The
//     four internal structures are mutated together as one logical step per
//     operation, so partial internal locking is deliberately absent.
//
//   - Constrained mode: Options.Arena accepts a caller-supplied []Slot slab,
//     for environments where even the construction-time allocation must be
//     under caller control. Behavior is identical to the heap-backed mode.
//
//   - Metrics: Options.Metrics receives Hit/Miss/Evict/Size signals;
//     NoopMetrics is the default. Options.OnEvict observes every eviction.
//
// # Basic usage
//
//	c, err := cache.New[string, int](cache.Options[string, int]{Capacity: 1024})
//	if err != nil {
//	    // zero or out-of-range capacity, or an undersized Options.Arena
//	}
//	c.Put("a", 1)
//	if v, ok := c.Get("a"); ok {
//	    _ = v // use value; "a" is now most recently used
//	}
//	c.Remove("a")
//
// # Caller-supplied slab
//
//	slab := make([]cache.Slot[uint32, [64]byte], 512)
//	c, err := cache.New[uint32, [64]byte](cache.Options[uint32, [64]byte]{
//	    Capacity: 512,
//	    Arena:    slab,
//	})
//
// # Inspecting without promoting
//
//	if v, ok := c.Peek("a"); ok {
//	    _ = v // recency order unchanged; "a" keeps its eviction priority
//	}
//
// # Complexity
//
// Get, Peek, Put, Remove and Contains are O(1) expected time. Clear and
// Range are O(n). Eviction work is O(1) per removed entry.
package cache
