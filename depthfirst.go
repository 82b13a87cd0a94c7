package radixpart

// depthFirst implements spec §4.4: a full sort_hash pass using
// scratch buffers addressed by depth parity, recursing into one
// sub-partition at a time before moving to the next.
//
// The original engine (original_source/radix_hash.h lines 91-144)
// drives this with an explicit counter_stack/iter_stack pair so a
// single C++ function can resume mid-partition across loop
// iterations. Go's call stack already gives us that resumability for
// free, so depthFirst recurses instead of maintaining its own stack —
// the per-depth counter array the original pushes onto counter_stack
// is exactly the offsets slice threaded through each recursive call.
func depthFirst[K any, V any](pairs []Pair[K, V], hash HashFunc[K], g geometry, less LessFunc[K], out []Record[K, V]) {
	n := len(pairs)
	if n == 0 {
		return
	}

	scratch := [2][]Record[K, V]{
		make([]Record[K, V], n),
		make([]Record[K, V], n),
	}
	offsets := countingSortHash(pairs, scratch[0], hash, g, 0)

	if g.numIter <= 1 {
		// Single pass: scratch-0 already holds the fully-partitioned
		// result; the final output step is a straight copy.
		copy(out, scratch[0])
		if g.nosortBits == 0 {
			refinePartitions(out, offsets, less)
		}
		return
	}

	for b := 0; b < g.partitions(); b++ {
		depthFirstDescend(scratch, 1, offsets[b], offsets[b+1], g, less, out)
	}
}

// depthFirstDescend handles one sub-partition [lo, hi) at depth,
// reading from scratch[(depth-1)%2] and writing either to
// scratch[depth%2] (recursing further) or to out (depth is the last).
func depthFirstDescend[K any, V any](scratch [2][]Record[K, V], depth, lo, hi int, g geometry, less LessFunc[K], out []Record[K, V]) {
	if hi-lo < 2 {
		if hi > lo {
			out[lo] = scratch[(depth-1)%2][lo]
		}
		return
	}

	src := scratch[(depth-1)%2][lo:hi]
	isLast := depth == g.numIter-1

	if !isLast && hi-lo < sqrtPartitionThreshold(g.partitions()) {
		// Below the √P cutoff (spec §4.3): further bit-partitioning
		// costs more in counting-sort bookkeeping than a direct
		// insertion sort over the remaining records. The sort orders by
		// the mask_bits-wide prefix first: H may carry bits above
		// mask_bits that the partitioning never looked at.
		copy(out[lo:hi], src)
		topMask := maskForGeometry(g)
		for i := lo + 1; i < hi; i++ {
			for j := i; j > lo; j-- {
				a, b := out[j-1].H&topMask, out[j].H&topMask
				if a < b || (a == b && !hashTupleLess(out[j], out[j-1], less)) {
					break
				}
				out[j-1], out[j] = out[j], out[j-1]
			}
		}
		return
	}

	var offsets []int
	if isLast {
		offsets = countingSort(src, out[lo:hi], g, depth, lo)
		if g.nosortBits == 0 {
			refinePartitions(out, offsets, less)
		}
		return
	}

	dst := scratch[depth%2][lo:hi]
	offsets = countingSort(src, dst, g, depth, lo)
	for b := 0; b < g.partitions(); b++ {
		depthFirstDescend(scratch, depth+1, offsets[b], offsets[b+1], g, less, out)
	}
}

// refinePartitions runs the insertion refiner (spec §4.3) over every
// sub-partition named by consecutive offsets, in place on out. Used
// whenever nosort_bits == 0: the bit geometry alone cannot distinguish
// records sharing a full fingerprint, so a final tie-break pass is
// required to make the weak sort invariant meaningful.
func refinePartitions[K any, V any](out []Record[K, V], offsets []int, less LessFunc[K]) {
	for i := 0; i < len(offsets)-1; i++ {
		insertionRefine(out, offsets[i], offsets[i+1], less)
	}
}
