// Package radixpart implements a family of hash-partitioning sorters.
//
// Given a sequence of key/value records, the engine computes a 64-bit
// fingerprint per key and produces an output ordered so that records
// sharing a prefix of their fingerprint are contiguous. This feeds
// downstream equi-join and group-by operators that need matching
// hashes colocated; ordering beyond the grouping boundary is a side
// effect, not a guarantee (see the package-level Non-goals below).
//
// # Entry points
//
// Four façade functions cover the non-inplace/in-place and
// sequential/parallel axes: NonInplaceSeq, NonInplacePar, InplaceSeq,
// and InplacePar, each with an Auto variant that picks the partition
// width via the bit-geometry auto-tuner instead of taking one
// explicitly.
//
// # Non-goals
//
// Stability is not guaranteed: records with identical full
// fingerprints may be reordered by the insertion-sort tie-breaker.
// There is no cross-record total ordering by key — only the hash
// governs order, and the key comparator only breaks ties on hash
// collisions. The engine has no persistence or external-memory mode
// and makes no NUMA placement decisions; all buffers are in-memory
// slices owned by the caller.
package radixpart

// Record is the (h, k, v) triple of spec.md §3: a 64-bit fingerprint
// alongside the original key and value it was computed from.
type Record[K any, V any] struct {
	H uint64
	K K
	V V
}

// Pair is a (k, v) input element, before its fingerprint has been
// materialised. Non-inplace variants take a sequence of Pair and
// compute H during the first scatter; in-place variants require the
// caller to have already materialised Records (see InplaceSeq).
type Pair[K any, V any] struct {
	K K
	V V
}

// HashFunc computes a 64-bit fingerprint for a key. It must be pure
// and return the same value for the same key within a single call to
// the engine (spec §6); see hashfuncs.go for ready-made instances.
type HashFunc[K any] func(K) uint64

// LessFunc reports whether a orders before b. It is used only to
// break ties between records whose full fingerprints collide (spec
// §3); it is never used to establish a cross-record total order.
type LessFunc[K any] func(a, b K) bool
