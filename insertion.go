package radixpart

// hashTupleLess orders records by (H, K) using less as the tie-break
// comparator on K. This is the comparison the insertion refiner and
// the breadth-first partitioner's final-depth pass both use (spec
// §4.3, §4.5). Records in a fully-refined partition share the
// mask_bits-wide prefix but may still differ in H bits above
// mask_bits; those bits decide adjacent order first, and K (via less)
// decides it only when the full H is equal.
func hashTupleLess[K any, V any](a, b Record[K, V], less LessFunc[K]) bool {
	if a.H != b.H {
		return a.H < b.H
	}
	return less(a.K, b.K)
}

// insertionRefine sorts buf[lo:hi] in place by (H, K) using
// pairwise-adjacent insertion sort (spec §4.3). It is the terminal
// refiner for the final tie-break pass when nosort_bits == 0, run over
// partitions whose records share the whole mask_bits-wide prefix.
func insertionRefine[K any, V any](buf []Record[K, V], lo, hi int, less LessFunc[K]) {
	for i := lo + 1; i < hi; i++ {
		cur := buf[i]
		j := i - 1
		for j >= lo && hashTupleLess(cur, buf[j], less) {
			buf[j+1] = buf[j]
			j--
		}
		buf[j+1] = cur
	}
}

// sqrtPartitionThreshold reports the partition-size cutoff below which
// the depth-first and in-place drivers insertion-sort a sub-partition
// instead of recursing further (spec §4.3: "smaller
// than √P"). P is the full partition count 2^p for the geometry in
// use; small partitions below this size cost more in counting-sort
// bookkeeping than a linear insertion pass.
func sqrtPartitionThreshold(partitions int) int {
	t := 1
	for t*t < partitions {
		t++
	}
	return t
}

// bubbleBackward walks the record at index i backward through
// buf[lo:i] while it compares less than its predecessor: the
// single-record form of the localised insertion step of spec §4.5.
// The breadth-first driver does not call it; its bubbleFinalDepth runs
// insertionRefine over each final group after the last pass instead.
func bubbleBackward[K any, V any](buf []Record[K, V], lo, i int, less LessFunc[K]) {
	for i > lo && hashTupleLess(buf[i], buf[i-1], less) {
		buf[i], buf[i-1] = buf[i-1], buf[i]
		i--
	}
}
