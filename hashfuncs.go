package radixpart

import (
	"github.com/cespare/xxhash/v2"
	"github.com/spaolacci/murmur3"
	"github.com/zeebo/xxh3"
)

// XXHashBytes is a ready-made HashFunc for []byte keys using xxHash64
// (spec §6's injected hash). The teacher's own index uses xxhash for
// its streaming content hashes; here it plays the role of the
// partitioner's fingerprint source instead.
func XXHashBytes(key []byte) uint64 {
	return xxhash.Sum64(key)
}

// XXHashString is the string-keyed counterpart of XXHashBytes, hashing
// without a copy to []byte.
func XXHashString(key string) uint64 {
	return xxhash.Sum64String(key)
}

// XXH3Bytes hashes []byte keys with xxHash3-64. Prefer this over
// XXHashBytes for short keys (struct-sized or smaller): xxh3's small-
// input path is tuned for exactly that case, per the original prehash
// rationale of folding non-uniform keys into uniform fingerprints.
func XXH3Bytes(key []byte) uint64 {
	return xxh3.Hash(key)
}

// XXH3String is the string-keyed counterpart of XXH3Bytes.
func XXH3String(key string) uint64 {
	return xxh3.HashString(key)
}

// Murmur3Bytes hashes []byte keys with MurmurHash3's 64-bit variant.
// Included alongside the xxHash family so callers comparing partition
// quality or speed across hash families don't need a second import.
func Murmur3Bytes(key []byte) uint64 {
	return murmur3.Sum64(key)
}

// Murmur3String is the string-keyed counterpart of Murmur3Bytes.
func Murmur3String(key string) uint64 {
	return murmur3.Sum64([]byte(key))
}

// IdentityUint64 returns k unchanged, a HashFunc for callers who have
// already computed (or simply are) a well-distributed 64-bit
// fingerprint and want to skip rehashing — e.g. cmd/radixbench's
// random uint64 keys, or keys that are themselves hash outputs from an
// upstream stage.
func IdentityUint64(k uint64) uint64 {
	return k
}
