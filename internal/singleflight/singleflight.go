// Package singleflight coalesces concurrent calls for the same key.
package singleflight

import (
	"context"
	"sync"
)

// Group runs a function at most once per key at a time: the first caller
// for a key becomes the leader and executes fn, later callers for the same
// key block until the leader publishes its result.
//
// Publishing (val, err) happens-before close(done), so followers reading
// after <-done observe the final values. Cancelling a follower's ctx
// unblocks only that follower; the leader's fn keeps running — thread ctx
// into fn if the work itself must be cancellable.
type Group[K comparable, V any] struct {
	mu sync.Mutex
	m  map[K]*call[V]
}

type call[V any] struct {
	done chan struct{} // closed once val/err are published
	val  V
	err  error
}

// Do executes fn once for key, sharing the result with concurrent callers.
// A follower whose ctx is cancelled returns ctx.Err() while the leader
// continues.
func (g *Group[K, V]) Do(ctx context.Context, key K, fn func() (V, error)) (V, error) {
	g.mu.Lock()
	if g.m == nil {
		g.m = make(map[K]*call[V])
	}
	if c, ok := g.m[key]; ok {
		done := c.done
		g.mu.Unlock()
		select {
		case <-done:
			return c.val, c.err
		case <-ctx.Done():
			var zero V
			return zero, ctx.Err()
		}
	}
	c := &call[V]{done: make(chan struct{})}
	g.m[key] = c
	g.mu.Unlock()

	// Leader path: run fn outside the lock, publish, wake followers.
	c.val, c.err = fn()
	close(c.done)

	g.mu.Lock()
	delete(g.m, key)
	g.mu.Unlock()

	return c.val, c.err
}
