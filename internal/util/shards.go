package util

import "runtime"

// ReasonableShardCount picks a practical default shard count from CPU
// parallelism: nextPow2(2*GOMAXPROCS) clamped to [1..256]. Enough shards to
// spread lock contention, few enough to keep per-shard capacity meaningful.
func ReasonableShardCount() int {
	p := runtime.GOMAXPROCS(0)
	if p < 1 {
		p = 1
	}
	n := int(NextPow2(uint64(2 * p)))
	if n > 256 {
		n = 256
	}
	return n
}

// ShardIndex maps a 64-bit hash to a shard index. Power-of-two counts take
// the mask fast path; arbitrary counts fall back to modulo.
func ShardIndex(hash uint64, shards int) int {
	if shards <= 1 {
		return 0
	}
	if IsPowerOfTwo(uint64(shards)) {
		return int(hash & uint64(shards-1))
	}
	return int(hash % uint64(shards))
}
