package cache

import (
	"errors"
	"math"
)

// MaxCapacity is the largest configurable slot count. Intrusive links are
// 32-bit indices, so the slab cannot address more slots than this.
const MaxCapacity = math.MaxInt32

// Construction-time configuration errors. Misses are never errors: absent
// keys are reported through ordinary (value, ok) returns.
var (
	// ErrCapacity means Options.Capacity is zero, negative, or above
	// MaxCapacity. Returned wrapped by New with the offending value.
	ErrCapacity = errors.New("slabcache: invalid capacity")

	// ErrArenaTooSmall means the caller-supplied Options.Arena slab holds
	// fewer slots than the requested capacity.
	ErrArenaTooSmall = errors.New("slabcache: arena smaller than capacity")
)
