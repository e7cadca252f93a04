// Package sharded wraps fixed arena caches for concurrent use.
//
// The core cache package is single-owner by design: its four internal
// structures are mutated together as one logical step, so the only sound
// synchronization is one lock around the whole structure. This package
// provides exactly that, times N: keys are hashed onto a power-of-two
// number of shards, each an independent fixed cache behind its own mutex.
// Recency order (and therefore eviction) is per shard, not global.
package sharded

import (
	"context"
	"errors"
	"sync"

	"github.com/IvanBrykalov/slabcache/cache"
	"github.com/IvanBrykalov/slabcache/internal/singleflight"
	"github.com/IvanBrykalov/slabcache/internal/util"
	"github.com/IvanBrykalov/slabcache/policy"
)

// ErrNoLoader is returned by GetOrLoad when no Loader was configured.
var ErrNoLoader = errors.New("sharded: no Loader provided")

// Options configures a sharded cache.
type Options[K comparable, V any] struct {
	// Capacity is the total slot count, split ceil-evenly across shards.
	Capacity int

	// Shards is the number of partitions. <= 0 picks an automatic value
	// (≈ 2×GOMAXPROCS); any value is rounded up to a power of two.
	Shards int

	// Policy applies per shard; nil => LRU.
	Policy policy.Policy

	// Loader fetches a value on cache miss. Used by GetOrLoad; concurrent
	// loads for the same key are coalesced.
	Loader func(ctx context.Context, k K) (V, error)

	// OnEvict is called for every eviction, under the owning shard's lock.
	OnEvict func(k K, v V, reason cache.EvictReason)

	// Metrics receives Hit/Miss/Evict/Size signals from every shard and
	// must therefore be safe for concurrent use (the prom adapter is).
	Metrics cache.Metrics
}

// Stats is a point-in-time snapshot of operation counters.
type Stats struct {
	Hits      int64
	Misses    int64
	Evictions uint64
}

// Cache is a sharded, fixed-capacity key/value cache.
// All methods are safe for concurrent use by multiple goroutines.
type Cache[K comparable, V any] interface {
	// Get returns the value for k, promoting it within its shard.
	Get(k K) (V, bool)

	// Peek returns the value for k without touching recency order.
	Peek(k K) (V, bool)

	// Put inserts or updates k→v, returning the previous value if k
	// existed. A full shard evicts its least-recently-used entry.
	Put(k K, v V) (prev V, replaced bool)

	// Remove deletes k if present and returns the removed value.
	Remove(k K) (V, bool)

	// Contains reports presence without promotion.
	Contains(k K) bool

	// GetOrLoad returns the value for k, loading it via Options.Loader on
	// miss. Concurrent loads for the same key run the loader once.
	// Returns ErrNoLoader if no Loader was configured.
	GetOrLoad(ctx context.Context, k K) (V, error)

	// Clear evicts every entry from every shard.
	Clear()

	// Len returns the total number of resident entries across all shards.
	Len() int

	// Capacity returns the summed capacity of all shards (>= the requested
	// Capacity due to ceil splitting).
	Capacity() int

	// Stats returns a snapshot of hit/miss/eviction counters.
	Stats() Stats
}

// shard pairs one single-owner cache with the lock that makes it shareable.
type shard[K comparable, V any] struct {
	mu sync.RWMutex
	c  cache.Cache[K, V]
}

type sharded[K comparable, V any] struct {
	shards []*shard[K, V]
	hash   func(K) uint64
	opt    Options[K, V]

	// singleflight group for coalescing concurrent loads in GetOrLoad.
	sf singleflight.Group[K, V]

	// hot counters on separate cache lines to avoid false sharing
	hits   util.PaddedAtomicInt64
	misses util.PaddedAtomicInt64
	evicts util.PaddedAtomicUint64
}

// New constructs a sharded cache. Capacity is validated by the underlying
// cache package; construction fails with its configuration errors.
func New[K comparable, V any](opt Options[K, V]) (Cache[K, V], error) {
	n := opt.Shards
	if n <= 0 {
		n = util.ReasonableShardCount()
	} else {
		n = int(util.NextPow2(uint64(n)))
	}
	if opt.Capacity > 0 && n > opt.Capacity {
		// Never hand out zero-capacity shards.
		n = int(util.NextPow2(uint64(opt.Capacity)) / 2)
		if n < 1 {
			n = 1
		}
	}

	s := &sharded[K, V]{
		shards: make([]*shard[K, V], n),
		hash:   util.Fnv64a[K],
		opt:    opt,
	}

	perShard := (opt.Capacity + n - 1) / n // ceil split
	for i := range s.shards {
		c, err := cache.New[K, V](cache.Options[K, V]{
			Capacity: perShard,
			Policy:   opt.Policy,
			Metrics:  opt.Metrics,
			OnEvict:  s.onEvict,
		})
		if err != nil {
			return nil, err
		}
		s.shards[i] = &shard[K, V]{c: c}
	}
	return s, nil
}

// onEvict counts evictions and forwards to the user callback.
// Runs under the owning shard's lock.
func (s *sharded[K, V]) onEvict(k K, v V, reason cache.EvictReason) {
	s.evicts.Add(1)
	if cb := s.opt.OnEvict; cb != nil {
		cb(k, v, reason)
	}
}

// getShard picks a shard by hashing the key; len(s.shards) is a power of two.
func (s *sharded[K, V]) getShard(k K) *shard[K, V] {
	return s.shards[util.ShardIndex(s.hash(k), len(s.shards))]
}

func (s *sharded[K, V]) Get(k K) (V, bool) {
	sh := s.getShard(k)
	// Full lock: a hit reorders the recency list.
	sh.mu.Lock()
	v, ok := sh.c.Get(k)
	sh.mu.Unlock()
	if ok {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
	return v, ok
}

func (s *sharded[K, V]) Peek(k K) (V, bool) {
	sh := s.getShard(k)
	// Read lock is enough: Peek never reorders the recency list.
	sh.mu.RLock()
	v, ok := sh.c.Peek(k)
	sh.mu.RUnlock()
	if ok {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
	return v, ok
}

func (s *sharded[K, V]) Put(k K, v V) (V, bool) {
	sh := s.getShard(k)
	sh.mu.Lock()
	prev, replaced := sh.c.Put(k, v)
	sh.mu.Unlock()
	return prev, replaced
}

func (s *sharded[K, V]) Remove(k K) (V, bool) {
	sh := s.getShard(k)
	sh.mu.Lock()
	v, ok := sh.c.Remove(k)
	sh.mu.Unlock()
	return v, ok
}

func (s *sharded[K, V]) Contains(k K) bool {
	sh := s.getShard(k)
	sh.mu.RLock()
	ok := sh.c.Contains(k)
	sh.mu.RUnlock()
	return ok
}

func (s *sharded[K, V]) GetOrLoad(ctx context.Context, k K) (V, error) {
	if v, ok := s.Get(k); ok {
		return v, nil
	}
	if s.opt.Loader == nil {
		var zero V
		return zero, ErrNoLoader
	}
	return s.sf.Do(ctx, k, func() (V, error) {
		// Double-check after winning (or joining) the flight.
		if v, ok := s.Get(k); ok {
			return v, nil
		}
		v, err := s.opt.Loader(ctx, k)
		if err == nil {
			s.Put(k, v)
		}
		return v, err
	})
}

func (s *sharded[K, V]) Clear() {
	for _, sh := range s.shards {
		sh.mu.Lock()
		sh.c.Clear()
		sh.mu.Unlock()
	}
}

func (s *sharded[K, V]) Len() int {
	total := 0
	for _, sh := range s.shards {
		sh.mu.RLock()
		total += sh.c.Len()
		sh.mu.RUnlock()
	}
	return total
}

func (s *sharded[K, V]) Capacity() int {
	total := 0
	for _, sh := range s.shards {
		total += sh.c.Capacity()
	}
	return total
}

func (s *sharded[K, V]) Stats() Stats {
	return Stats{
		Hits:      s.hits.Load(),
		Misses:    s.misses.Load(),
		Evictions: s.evicts.Load(),
	}
}
