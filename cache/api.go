package cache

// Cache is a fixed-capacity key/value cache with recency-based eviction.
//
// A Cache is single-owner: methods must not be called concurrently.
// Use the sharded package (or an external lock around the whole value)
// when multiple goroutines share one cache.
//
// Typical complexity for operations is O(1) expected:
// a map lookup plus a constant amount of index adjustments in the slab.
type Cache[K comparable, V any] interface {
	// Get returns the value for k and a presence flag.
	// On hit, the entry is promoted according to the active policy.
	// A miss has no side effects.
	Get(k K) (V, bool)

	// Peek returns the value for k without touching recency order.
	// Use it for inspection that must not disturb eviction priority.
	Peek(k K) (V, bool)

	// Put inserts or updates k→v and returns the previous value with
	// replaced=true if k was already present. When k is new and the cache
	// is full, the least-recently-used entry is evicted first; the evicted
	// value is reported via Options.OnEvict, never through Put's return.
	// Updating an existing key never evicts.
	Put(k K, v V) (prev V, replaced bool)

	// Remove deletes k if present and returns the removed value.
	// The freed slot becomes immediately reusable.
	Remove(k K) (V, bool)

	// Contains reports presence without promoting the entry.
	Contains(k K) bool

	// Clear evicts every entry (Options.OnEvict sees each one with
	// EvictClear), returning the cache to its freshly constructed state.
	Clear()

	// Range calls f for each entry from most- to least-recently used,
	// stopping early if f returns false. Recency order is not altered.
	// f must not mutate the cache.
	Range(f func(k K, v V) bool)

	// Len returns the number of resident entries (always ≤ Capacity).
	Len() int

	// Capacity returns the fixed slot count configured at construction.
	Capacity() int
}
