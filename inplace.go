package radixpart

// inplaceSortRecords implements spec §4.6 and §4.9's inplace_seq
// contract: buf already holds materialised (h, k, v) triples in
// arbitrary order — there is no hashing phase, unlike the non-inplace
// variants, which perform the hash during their first scatter — and
// every pass, including the first, reorders buf's contents using the
// cyclic-shift permutation over a single buffer. The original engine
// (radix_hash.h) only has a non-inplace form; this driver generalises
// its recursive shape to the classic in-place radix permutation
// instead.
func inplaceSortRecords[K any, V any](buf []Record[K, V], g geometry, less LessFunc[K]) {
	if len(buf) == 0 {
		return
	}
	inplaceDescend(buf, 0, 0, len(buf), g, less)
}

// inplaceDescend recurses into sub-partition [lo, hi) of buf at depth,
// stopping — per spec §4.6 — once the partition is below the √P
// threshold or the final depth is reached. Below the threshold the
// partition is insertion-sorted by its mask_bits-wide prefix, then by
// (H, K); at the final depth the insertion refiner runs over each
// sub-partition only when nosort_bits == 0.
func inplaceDescend[K any, V any](buf []Record[K, V], depth, lo, hi int, g geometry, less LessFunc[K]) {
	if hi-lo < 2 {
		return
	}
	if hi-lo < sqrtPartitionThreshold(g.partitions()) {
		topMask := maskForGeometry(g)
		for i := lo + 1; i < hi; i++ {
			for j := i; j > lo; j-- {
				a, b := buf[j-1].H&topMask, buf[j].H&topMask
				if a < b || (a == b && !hashTupleLess(buf[j], buf[j-1], less)) {
					break
				}
				buf[j-1], buf[j] = buf[j], buf[j-1]
			}
		}
		return
	}

	isLast := depth >= g.numIter-1
	offsets := cyclicShift(buf, g, depth, lo, hi)

	if isLast {
		if g.nosortBits == 0 {
			refinePartitions(buf, offsets, less)
		}
		return
	}

	for b := 0; b < g.partitions(); b++ {
		inplaceDescend(buf, depth+1, offsets[b], offsets[b+1], g, less)
	}
}

// cyclicShift partitions buf[lo:hi] in place at depth using the
// classic cyclic-displacement permutation (spec §4.6): for each
// partition i in turn, an element at the partition's write cursor
// either already belongs there (cursor advances) or is swapped
// directly to its own target partition's cursor, pulling whatever was
// sitting there back to be examined in i's place — the swap chases a
// cycle until the slot at cursor[i] finally holds a partition-i
// record. Every record is displaced at most once per pass.
//
// Returns the same [lo, ..., hi] offsets a counting-sort pass would,
// so callers can recurse into sub-partitions uniformly with
// depthFirst/breadthFirst.
func cyclicShift[K any, V any](buf []Record[K, V], g geometry, depth, lo, hi int) []int {
	partitions := g.partitions()
	shift, mask := g.passShiftMask(depth)
	bucketOf := func(r Record[K, V]) int { return int((r.H & mask) >> shift) }

	counts := make([]int, partitions)
	for i := lo; i < hi; i++ {
		counts[bucketOf(buf[i])]++
	}
	offsets := prefixSumOffsets(counts, lo)

	cursor := make([]int, partitions)
	copy(cursor, offsets[:partitions])
	end := offsets[1:]

	for i := 0; i < partitions; i++ {
		for cursor[i] < end[i] {
			r := buf[cursor[i]]
			t := bucketOf(r)
			for t != i {
				j := cursor[t]
				buf[cursor[i]], buf[j] = buf[j], buf[cursor[i]]
				cursor[t]++
				r = buf[cursor[i]]
				t = bucketOf(r)
			}
			cursor[i]++
		}
	}

	return offsets
}
