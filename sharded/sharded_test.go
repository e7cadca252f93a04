package sharded

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/IvanBrykalov/slabcache/cache"
)

func TestSharded_BasicOps(t *testing.T) {
	t.Parallel()

	c, err := New[string, int](Options[string, int]{Capacity: 64, Shards: 4})
	require.NoError(t, err)

	_, replaced := c.Put("a", 1)
	require.False(t, replaced)

	v, ok := c.Get("a")
	require.True(t, ok)
	require.Equal(t, 1, v)

	prev, replaced := c.Put("a", 2)
	require.True(t, replaced)
	require.Equal(t, 1, prev)

	require.True(t, c.Contains("a"))
	require.False(t, c.Contains("zzz"))

	v, ok = c.Remove("a")
	require.True(t, ok)
	require.Equal(t, 2, v)
	require.Equal(t, 0, c.Len())
	require.GreaterOrEqual(t, c.Capacity(), 64)
}

// A single shard makes recency order global and eviction deterministic.
func TestSharded_SingleShardLRU(t *testing.T) {
	t.Parallel()

	c, err := New[string, int](Options[string, int]{Capacity: 2, Shards: 1})
	require.NoError(t, err)

	c.Put("a", 1) // LRU = a
	c.Put("b", 2) // MRU = b

	_, ok := c.Get("a") // promote a -> MRU
	require.True(t, ok)
	c.Put("c", 3) // overflow -> evict b

	require.False(t, c.Contains("b"), "b must be evicted")
	require.True(t, c.Contains("a"), "a must survive (promoted)")
	require.True(t, c.Contains("c"))
}

// Construction must propagate the core configuration errors.
func TestSharded_ConfigErrors(t *testing.T) {
	t.Parallel()

	_, err := New[string, int](Options[string, int]{Capacity: 0})
	require.ErrorIs(t, err, cache.ErrCapacity)

	// A tiny capacity must not produce zero-capacity shards.
	c, err := New[string, int](Options[string, int]{Capacity: 1, Shards: 64})
	require.NoError(t, err)
	c.Put("a", 1)
	require.True(t, c.Contains("a"))
}

func TestSharded_Stats(t *testing.T) {
	t.Parallel()

	c, err := New[string, int](Options[string, int]{Capacity: 2, Shards: 1})
	require.NoError(t, err)

	c.Put("a", 1)
	c.Get("a")   // hit
	c.Get("b")   // miss
	c.Put("b", 2)
	c.Put("c", 3) // evicts the LRU

	st := c.Stats()
	require.Equal(t, int64(1), st.Hits)
	require.Equal(t, int64(1), st.Misses)
	require.Equal(t, uint64(1), st.Evictions)
}

func TestSharded_GetOrLoad_NoLoader(t *testing.T) {
	t.Parallel()

	c, err := New[string, string](Options[string, string]{Capacity: 8})
	require.NoError(t, err)

	_, err = c.GetOrLoad(context.Background(), "k")
	require.ErrorIs(t, err, ErrNoLoader)
}

// Concurrent GetOrLoad calls for one key must run the loader exactly once;
// subsequent calls are cache hits.
func TestSharded_GetOrLoad_Singleflight(t *testing.T) {
	var calls int64

	c, err := New[string, string](Options[string, string]{
		Capacity: 64,
		Loader: func(_ context.Context, k string) (string, error) {
			atomic.AddInt64(&calls, 1)
			time.Sleep(5 * time.Millisecond) // simulate I/O
			return "v:" + k, nil
		},
	})
	require.NoError(t, err)

	const N = 64
	var g errgroup.Group
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	for i := 0; i < N; i++ {
		g.Go(func() error {
			v, err := c.GetOrLoad(ctx, "k")
			if err != nil {
				return err
			}
			if v != "v:k" {
				return fmt.Errorf("got %q", v)
			}
			return nil
		})
	}
	require.NoError(t, g.Wait())
	require.Equal(t, int64(1), atomic.LoadInt64(&calls), "loader must run exactly once")

	v, err := c.GetOrLoad(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, "v:k", v)
}

// Loader failures must not poison the cache; the next call retries.
func TestSharded_GetOrLoad_LoaderError(t *testing.T) {
	t.Parallel()

	boom := errors.New("backend down")
	fail := true
	c, err := New[string, string](Options[string, string]{
		Capacity: 8,
		Shards:   1,
		Loader: func(_ context.Context, k string) (string, error) {
			if fail {
				return "", boom
			}
			return "v:" + k, nil
		},
	})
	require.NoError(t, err)

	_, err = c.GetOrLoad(context.Background(), "k")
	require.ErrorIs(t, err, boom)
	require.False(t, c.Contains("k"), "failed loads must not be cached")

	fail = false
	v, err := c.GetOrLoad(context.Background(), "k")
	require.NoError(t, err)
	require.Equal(t, "v:k", v)
}
