package radixpart

// prefixSumOffsets turns a direct partition-count array into the
// exclusive prefix sum used as per-partition write cursors, using the
// same inclusive-then-shift technique as the original engine
// (_examples/original_source/radix_hash.h lines 67-73): sum counts
// inclusively, then shift every value right by one slot and zero the
// first, rather than computing the exclusive scan directly. base is
// added to every slot so offsets are absolute positions in a larger
// buffer. counts is consumed; the result has len(counts)+1 entries.
func prefixSumOffsets(counts []int, base int) []int {
	partitions := len(counts)

	// Inclusive prefix sum.
	for i := 1; i < partitions; i++ {
		counts[i] += counts[i-1]
	}

	// Shift right by one, zero the first slot: offsets[i] becomes base
	// plus the exclusive prefix sum (count of all partitions < i).
	offsets := make([]int, partitions+1)
	offsets[0] = base
	for i := partitions - 1; i > 0; i-- {
		offsets[i] = base + counts[i-1]
	}
	offsets[partitions] = base + counts[partitions-1]
	return offsets
}

// countingSort performs one pass of spec §4.2 over src, a slice of
// already-hashed records, scattering into dst. src and dst must not
// alias: the depth-first and breadth-first partitioners always pass
// distinct scratch buffers (or a scratch buffer and the final output).
//
// base is added to every returned offset so the caller can track a
// sub-partition's absolute position within a larger buffer.
//
// Returns the partition offsets [base, base+c_0, ..., base+len(src)],
// i.e. P+1 values, satisfying off_0 = base and off_P = base + len(src)
// (spec §3 invariant).
func countingSort[K any, V any](src, dst []Record[K, V], g geometry, depth int, base int) []int {
	partitions := g.partitions()
	shift, mask := g.passShiftMask(depth)

	// 1. Count.
	counts := make([]int, partitions)
	for _, r := range src {
		b := int((r.H & mask) >> shift)
		counts[b]++
	}

	// 2. Prefix-sum into write cursors.
	offsets := prefixSumOffsets(counts, base)
	cursor := make([]int, partitions)
	copy(cursor, offsets[:partitions])

	// 3. Scatter.
	for _, r := range src {
		b := int((r.H & mask) >> shift)
		dst[cursor[b]-base] = r
		cursor[b]++
	}

	return offsets
}

// countingSortHash is the first-pass variant: it hashes each (k, v)
// pair as it scatters, materialising the (h, k, v) triple. Used by the
// non-inplace variants' pass 0 (spec §4.9: "the non-inplace variants
// perform the hash during the first scatter").
func countingSortHash[K any, V any](src []Pair[K, V], dst []Record[K, V], hash HashFunc[K], g geometry, base int) []int {
	partitions := g.partitions()
	shift, mask := g.passShiftMask(0)

	hashes := make([]uint64, len(src))
	counts := make([]int, partitions)
	for i, pr := range src {
		h := hash(pr.K)
		hashes[i] = h
		b := int((h & mask) >> shift)
		counts[b]++
	}

	offsets := prefixSumOffsets(counts, base)
	cursor := make([]int, partitions)
	copy(cursor, offsets[:partitions])

	for i, pr := range src {
		h := hashes[i]
		b := int((h & mask) >> shift)
		dst[cursor[b]-base] = Record[K, V]{H: h, K: pr.K, V: pr.V}
		cursor[b]++
	}

	return offsets
}
