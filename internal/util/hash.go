// Package util contains internal helpers (hashing, sharding, padding).
package util

import "fmt"

const (
	fnvOffset64 uint64 = 14695981039346656037
	fnvPrime64  uint64 = 1099511628211
)

// Fnv64a hashes common key types using 64-bit FNV-1a, for shard routing.
// Supported: string, []byte, fixed byte arrays of 16/32/64, all int/uint
// widths, uintptr, and fmt.Stringer as a last resort. Unsupported key types
// panic on first use: silently hashing everything to one shard would be
// worse than failing loudly.
func Fnv64a[K comparable](k K) uint64 {
	switch v := any(k).(type) {
	case string:
		return fnvBytes(fnvOffset64, []byte(v))
	case []byte:
		return fnvBytes(fnvOffset64, v)
	case [16]byte:
		return fnvBytes(fnvOffset64, v[:])
	case [32]byte:
		return fnvBytes(fnvOffset64, v[:])
	case [64]byte:
		return fnvBytes(fnvOffset64, v[:])
	case uint8:
		return fnvUint(uint64(v))
	case uint16:
		return fnvUint(uint64(v))
	case uint32:
		return fnvUint(uint64(v))
	case uint64:
		return fnvUint(v)
	case uint:
		return fnvUint(uint64(v))
	case uintptr:
		return fnvUint(uint64(v))
	case int8:
		return fnvUint(uint64(uint8(v)))
	case int16:
		return fnvUint(uint64(uint16(v)))
	case int32:
		return fnvUint(uint64(uint32(v)))
	case int64:
		return fnvUint(uint64(v))
	case int:
		return fnvUint(uint64(v))
	case fmt.Stringer:
		return fnvBytes(fnvOffset64, []byte(v.String()))
	default:
		panic(fmt.Sprintf("util.Fnv64a: unsupported key type %T; convert the key to string or hash it yourself", k))
	}
}

func fnvBytes(h uint64, b []byte) uint64 {
	for _, c := range b {
		h ^= uint64(c)
		h *= fnvPrime64
	}
	return h
}

// fnvUint hashes the 8 little-endian bytes of u without allocating.
func fnvUint(u uint64) uint64 {
	h := fnvOffset64
	for i := 0; i < 8; i++ {
		h ^= u & 0xff
		h *= fnvPrime64
		u >>= 8
	}
	return h
}
