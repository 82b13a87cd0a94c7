package radixpart

import "sync/atomic"

// chunkRange is one worker's contiguous slice of the input, spec
// §4.7's "T contiguous chunks."
type chunkRange struct {
	lo, hi int
}

// splitChunks divides [0, n) into up to workers contiguous, near-equal
// ranges. For n >= 1 it never returns more chunks than n (an empty
// chunk would give a worker nothing to count or scatter); for n == 0
// it returns a single empty chunk.
func splitChunks(n, workers int) []chunkRange {
	if workers > n {
		workers = n
	}
	if workers < 1 {
		workers = 1
	}
	chunks := make([]chunkRange, workers)
	base := n / workers
	rem := n % workers
	lo := 0
	for t := 0; t < workers; t++ {
		size := base
		if t < rem {
			size++
		}
		chunks[t] = chunkRange{lo: lo, hi: lo + size}
		lo += size
	}
	return chunks
}

// globalCursors computes, from each worker's private partition counts
// (spec §4.7 Phase A), every worker's disjoint write cursor for every
// partition plus the P+1 partition offsets. Worker t's cursor for
// partition i is the total count of partitions [0, i) across all
// workers, plus the count of partition i contributed by workers [0,
// t) — exactly the ordering the spec's global exclusive prefix-sum
// describes, computed once by whichever worker is elected leader.
func globalCursors(counts [][]int, partitions int) (cursors [][]int, offsets []int) {
	workers := len(counts)
	cursors = make([][]int, workers)
	for t := range cursors {
		cursors[t] = make([]int, partitions)
	}
	offsets = make([]int, partitions+1)

	total := 0
	for i := 0; i < partitions; i++ {
		offsets[i] = total
		for t := 0; t < workers; t++ {
			cursors[t][i] = total
			total += counts[t][i]
		}
	}
	offsets[partitions] = total
	return cursors, offsets
}

// nextWorkIndex is the shared atomic work-queue of spec §4.7's
// sub-partition refinement step: a single counter that workers pop
// from via fetch_add, handing out one partition index at a time until
// the range is exhausted.
type nextWorkIndex struct {
	n atomic.Int64
}

func (w *nextWorkIndex) next(limit int) (int, bool) {
	i := w.n.Add(1) - 1
	if i >= int64(limit) {
		return 0, false
	}
	return int(i), true
}
