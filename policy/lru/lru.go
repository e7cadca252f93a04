// Package lru implements the default Least-Recently-Used eviction policy.
package lru

import "github.com/IvanBrykalov/slabcache/policy"

// lru is a classic "move-to-front" policy over arena slot indices.
// It delegates all list manipulation to the hooks provided by the cache.
type lru struct {
	h policy.Hooks
}

type lruPolicy struct{}

// New returns a Policy factory for per-cache LRU instances.
func New() policy.Policy { return lruPolicy{} }

// New implements policy.Policy by binding cache hooks and returning
// a cache-local policy instance.
func (lruPolicy) New(h policy.Hooks) policy.SlotPolicy {
	return &lru{h: h}
}

// OnAdd places the newly admitted slot at MRU.
func (p *lru) OnAdd(i int) { p.h.PushFront(i) }

// OnGet promotes the slot to MRU.
func (p *lru) OnGet(i int) { p.h.MoveToFront(i) }

// OnUpdate promotes the slot to MRU (updates count as recent use).
func (p *lru) OnUpdate(i int) { p.h.MoveToFront(i) }

// OnRemove is a no-op for pure LRU (no policy-internal state to clean up).
func (p *lru) OnRemove(int) {}
