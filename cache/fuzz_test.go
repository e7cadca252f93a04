package cache

import (
	"strings"
	"testing"
)

// Fuzz basic Put/Get/Remove semantics under arbitrary string inputs.
// Guards against panics and checks the core round-trip invariants.
// NOTE: key/value lengths are capped to keep memory bounded during fuzzing
// (this does not weaken the invariants we check).
func FuzzCache_PutGetRemove(f *testing.F) {
	// Seed corpus: empty, ASCII, Unicode, long strings.
	f.Add("", "")
	f.Add("a", "1")
	f.Add("b", "2")
	f.Add("αβγ", "δ")
	f.Add("emoji🙂", "🙂🙂")
	f.Add("long", strings.Repeat("x", 1024))

	f.Fuzz(func(t *testing.T, k, v string) {
		const limit = 1 << 12 // 4096
		if len(k) > limit {
			k = k[:limit]
		}
		if len(v) > limit {
			v = v[:limit]
		}

		c, err := New[string, string](Options[string, string]{Capacity: 16})
		if err != nil {
			t.Fatal(err)
		}

		// Put -> Get must return the same value.
		c.Put(k, v)
		got, ok := c.Get(k)
		if !ok || got != v {
			t.Fatalf("after Put/Get: want %q, got %q ok=%v", v, got, ok)
		}

		// Updating must report the old value and keep Len stable.
		if prev, replaced := c.Put(k, v+"2"); !replaced || prev != v {
			t.Fatalf("update: want prev %q, got %q replaced=%v", v, prev, replaced)
		}
		if c.Len() != 1 {
			t.Fatalf("Len after update: want 1, got %d", c.Len())
		}

		// Remove must hand back the current value exactly once.
		if rv, ok := c.Remove(k); !ok || rv != v+"2" {
			t.Fatalf("Remove: want %q, got %q ok=%v", v+"2", rv, ok)
		}
		if _, ok := c.Get(k); ok {
			t.Fatalf("key must be absent after Remove")
		}
		if _, ok := c.Remove(k); ok {
			t.Fatalf("second Remove must miss")
		}

		// The freed slot must be reusable.
		c.Put(k, v)
		if got, ok := c.Peek(k); !ok || got != v {
			t.Fatalf("after re-Put: want %q, got %q ok=%v", v, got, ok)
		}
		checkInvariants(t, c)
	})
}
