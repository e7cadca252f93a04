// Package fifo implements an insertion-order eviction policy.
//
// Unlike LRU, reads never promote an entry, so a one-time scan over a large
// keyspace cannot push the working set out of the cache. Eviction order is
// purely first-in, first-out.
package fifo

import "github.com/IvanBrykalov/slabcache/policy"

type fifo struct {
	h policy.Hooks
}

type fifoPolicy struct{}

// New returns a Policy factory for per-cache FIFO instances.
func New() policy.Policy { return fifoPolicy{} }

func (fifoPolicy) New(h policy.Hooks) policy.SlotPolicy {
	return &fifo{h: h}
}

// OnAdd places the newly admitted slot at the front of the queue.
func (p *fifo) OnAdd(i int) { p.h.PushFront(i) }

// OnGet keeps insertion order: a read is not a reason to survive eviction.
func (p *fifo) OnGet(int) {}

// OnUpdate keeps insertion order as well; the slot's age is its admission.
func (p *fifo) OnUpdate(int) {}

// OnRemove has no policy-internal state to clean up.
func (p *fifo) OnRemove(int) {}
