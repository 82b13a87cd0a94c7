package radixpart

import (
	"golang.org/x/sync/errgroup"

	rperrors "github.com/ekoontz/radixpart/errors"
)

// parallelNonInplace implements non_inplace_par (spec §4.7, §4.9): T
// long-lived workers, one per chunkRange, run Phase A (private
// counting) then suspend at a barrier while the elected leader
// computes the global cursor table; all workers then resume into
// Phase B (disjoint-range scatter into a fresh scratch buffer).
// Afterwards, the resulting P top-level partitions are refined by
// handing each to the existing sequential depthFirstDescend
// recursion, with workers pulling partition indices off a shared
// atomic counter (spec's single atomic work-queue) — those ranges
// are disjoint by construction, so no further locking is needed.
//
// errgroup.Group supplies goroutine lifecycle and first-error
// propagation across the whole pass; barrier supplies the
// intra-pass rendezvous and leader election errgroup has no
// primitive for.
func parallelNonInplace[K any, V any](pairs []Pair[K, V], hash HashFunc[K], g geometry, less LessFunc[K], workers int, out []Record[K, V]) error {
	n := len(pairs)
	if n == 0 {
		return nil
	}
	if workers < 1 {
		return rperrors.ErrInvalidWorkerCount
	}
	if len(out) < n {
		return rperrors.ErrOutputTooShort
	}

	chunks := splitChunks(n, workers)
	nworkers := len(chunks)
	partitions := g.partitions()
	shift, mask := g.passShiftMask(0)

	hashes := make([]uint64, n)
	counts := make([][]int, nworkers)
	for t := range counts {
		counts[t] = make([]int, partitions)
	}

	scratch := make([]Record[K, V], n)
	var cursors [][]int
	var offsets []int

	phaseBarrier := newBarrier(nworkers)
	var queue nextWorkIndex
	scratchPair := [2][]Record[K, V]{scratch, nil}
	if g.numIter > 1 {
		scratchPair[1] = make([]Record[K, V], n)
	}

	var eg errgroup.Group
	for t, c := range chunks {
		t, c := t, c
		eg.Go(func() error {
			// Phase A: private counting over this worker's chunk.
			local := counts[t]
			for i := c.lo; i < c.hi; i++ {
				h := hash(pairs[i].K)
				hashes[i] = h
				local[int((h&mask)>>shift)]++
			}

			phaseBarrier.wait(func() {
				cursors, offsets = globalCursors(counts, partitions)
			})

			// Phase B: disjoint-range scatter using this worker's cursors.
			cur := cursors[t]
			for i := c.lo; i < c.hi; i++ {
				h := hashes[i]
				b := int((h & mask) >> shift)
				scratch[cur[b]] = Record[K, V]{H: h, K: pairs[i].K, V: pairs[i].V}
				cur[b]++
			}

			// Every worker's scatter must land before any partition is
			// refined, since a partition's records come from all chunks.
			phaseBarrier.wait(nil)

			if g.numIter <= 1 {
				return nil
			}

			// Sub-partition refinement: pull partition indices off the
			// shared queue until exhausted.
			for {
				i, ok := queue.next(partitions)
				if !ok {
					return nil
				}
				depthFirstDescend(scratchPair, 1, offsets[i], offsets[i+1], g, less, out)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if g.numIter <= 1 {
		copy(out, scratch)
		if g.nosortBits == 0 {
			refinePartitions(out, offsets, less)
		}
	}
	return nil
}
