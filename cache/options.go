package cache

import (
	"fmt"

	"github.com/IvanBrykalov/slabcache/policy"
)

// EvictReason explains why an entry was removed.
type EvictReason int

const (
	// EvictCapacity — removed to make room for a new entry in a full cache.
	EvictCapacity EvictReason = iota
	// EvictClear — removed by an explicit Clear.
	EvictClear
)

// Metrics exposes cache-level observability hooks.
// A NoopMetrics implementation is provided and used by default.
type Metrics interface {
	Hit()
	Miss()
	Evict(reason EvictReason)
	Size(entries int)
}

// Options configures a cache instance. Capacity is required; zero values
// are safe everywhere else and defaults are applied in New():
//   - nil Policy  => LRU
//   - nil Metrics => NoopMetrics
type Options[K comparable, V any] struct {
	// Capacity is the fixed slot count, set once for the instance's
	// lifetime. Must be in (0, MaxCapacity].
	Capacity int

	// Arena optionally supplies the backing slab (constrained mode).
	// It must hold at least Capacity slots; only the first Capacity are
	// used and they are reset on construction. Nil means the slab is
	// heap-allocated by New.
	Arena []Slot[K, V]

	// Policy is a pluggable eviction policy (LRU/FIFO/…); nil => LRU.
	Policy policy.Policy

	// OnEvict is called for every eviction, before the slot is recycled.
	// It runs synchronously inside Put/Clear; keep it lightweight.
	// Explicit Remove calls are not evictions and do not trigger it.
	OnEvict func(k K, v V, reason EvictReason)

	// Metrics receives Hit/Miss/Evict/Size signals. Nil => NoopMetrics.
	Metrics Metrics
}

// validate reports construction-time configuration errors (spec'd to fail
// at New, never deferred to the first operation).
func (o Options[K, V]) validate() error {
	if o.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d: %w", o.Capacity, ErrCapacity)
	}
	if o.Capacity > MaxCapacity {
		return fmt.Errorf("capacity %d exceeds the %d slot-index limit: %w", o.Capacity, int64(MaxCapacity), ErrCapacity)
	}
	if o.Arena != nil && len(o.Arena) < o.Capacity {
		return fmt.Errorf("arena holds %d slots, need %d: %w", len(o.Arena), o.Capacity, ErrArenaTooSmall)
	}
	return nil
}
