package radixpart

// breadthFirst implements spec §4.5: at each depth the driver scans
// the entire active buffer front-to-back, maintaining an
// anchor (the start of the current outer partition, identified by the
// high bits already fixed from shallower depths) and a set of local
// counters for the current depth's sub-partitions. When the anchor's
// high bits change, the run since the anchor is flushed: cursors are
// derived from the anchor and local counters, and the run is
// scattered into the alternate ping-pong buffer. Each record is thus
// read twice per depth: once to count, once in the flush to scatter.
//
// This trades depthFirst's small working set (one root-to-leaf path)
// for linear streaming per pass, which favours cache prefetchers when
// records are small — integer keys, per the source's own benchmark
// note reproduced in SPEC_FULL.md.
func breadthFirst[K any, V any](pairs []Pair[K, V], hash HashFunc[K], g geometry, less LessFunc[K], out []Record[K, V]) {
	n := len(pairs)
	if n == 0 {
		return
	}

	scratch := [2][]Record[K, V]{
		make([]Record[K, V], n),
		make([]Record[K, V], n),
	}
	countingSortHash(pairs, scratch[0], hash, g, 0)

	for d := 1; d < g.numIter; d++ {
		src := scratch[(d-1)%2]
		isLast := d == g.numIter-1
		var dst []Record[K, V]
		if isLast {
			dst = out
		} else {
			dst = scratch[d%2]
		}
		breadthFirstPass(src, dst, g, d)
	}

	if g.numIter <= 1 {
		copy(out, scratch[0])
	}

	if g.nosortBits == 0 {
		bubbleFinalDepth(out, g, less)
	}
}

// breadthFirstPass runs one full depth over src, flushing each outer
// partition's run as soon as the d-1-level anchor changes.
func breadthFirstPass[K any, V any](src, dst []Record[K, V], g geometry, d int) {
	n := len(src)
	partitions := g.partitions()
	counters := make([]int, partitions)

	outerShift := g.consumedShift(d)
	outerMask := maskForGeometry(g)
	anchor := 0
	anchorBucket := outerBucket(src[0].H, outerShift, outerMask)
	shift, mask := g.passShiftMask(d)

	flush := func(lo, hi int) {
		if hi <= lo {
			return
		}
		offsets := prefixSumOffsets(counters, lo)
		cursor := make([]int, partitions)
		copy(cursor, offsets[:partitions])
		for j := lo; j < hi; j++ {
			b := int((src[j].H & mask) >> shift)
			dst[cursor[b]] = src[j]
			cursor[b]++
		}
		for i := range counters {
			counters[i] = 0
		}
	}

	for j := 0; j < n; j++ {
		b := outerBucket(src[j].H, outerShift, outerMask)
		if b != anchorBucket {
			flush(anchor, j)
			anchor = j
			anchorBucket = b
		}
		sub := int((src[j].H & mask) >> shift)
		counters[sub]++
	}
	flush(anchor, n)
}

func outerBucket(h uint64, shift uint, mask uint64) uint64 {
	return (h & mask) >> shift
}

// bubbleFinalDepth applies the localised adjacent-swap insertion step
// spec §4.5 describes for the last depth when nosort_bits == 0: each
// record is bubbled backward through its fully-resolved sub-partition
// while it compares less than its predecessor. Because
// breadthFirstPass already grouped the buffer by sub-partition, the
// boundaries are recovered by scanning for changes in the mask_bits
// fingerprint prefix (not the raw 64-bit hash, which may carry bits
// above mask_bits that the partitioning never looked at) rather than
// threading offsets through the pass.
func bubbleFinalDepth[K any, V any](out []Record[K, V], g geometry, less LessFunc[K]) {
	n := len(out)
	topMask := maskForGeometry(g)
	lo := 0
	for i := 1; i <= n; i++ {
		if i == n || (out[i].H&topMask) != (out[i-1].H&topMask) {
			insertionRefine(out, lo, i, less)
			lo = i
		}
	}
}
