package radixpart

import (
	"sync"

	"golang.org/x/sync/errgroup"

	rperrors "github.com/ekoontz/radixpart/errors"
)

// partitionLock guards one partition's cursor/end pair during the
// parallel in-place scatter (spec §4.7 Phase B, in-place case).
type partitionLock struct {
	mu    sync.Mutex
	start int
	end   int
}

// parallelInplace implements inplace_par (spec §4.7, §4.9). buf
// already holds materialised (h, k, v) triples (record.go's
// documented in-place contract — there is no hashing phase here).
//
// Phase A counts each worker's chunk against the top-level geometry;
// at the barrier the leader turns the counts into a shared table of
// per-partition cursor/end pairs, one lock apiece. Phase B has every
// worker chase the classic cyclic-shift permutation (spec §4.6)
// across that shared table: each worker starts at partition (t*17)
// mod P to spread out contention, and every record move locks at most
// two partitions (the one being emptied and the one receiving the
// displaced record) in ascending index order to avoid deadlock.
//
// Sub-partition refinement mirrors the non-inplace driver: once Phase
// B settles, the P top-level ranges are independent, so workers pull
// indices from a shared atomic counter and call the existing
// sequential inplaceDescend recursion on each with no further locking.
func parallelInplace[K any, V any](buf []Record[K, V], g geometry, less LessFunc[K], workers int) error {
	n := len(buf)
	if n == 0 {
		return nil
	}
	if workers < 1 {
		return rperrors.ErrInvalidWorkerCount
	}

	chunks := splitChunks(n, workers)
	nworkers := len(chunks)
	partitions := g.partitions()
	shift, mask := g.passShiftMask(0)
	bucketOf := func(r Record[K, V]) int { return int((r.H & mask) >> shift) }

	counts := make([][]int, nworkers)
	for t := range counts {
		counts[t] = make([]int, partitions)
	}

	locks := make([]partitionLock, partitions)
	var offsets []int

	phaseBarrier := newBarrier(nworkers)
	var queue nextWorkIndex

	var eg errgroup.Group
	for t, c := range chunks {
		t, c := t, c
		eg.Go(func() error {
			local := counts[t]
			for i := c.lo; i < c.hi; i++ {
				local[bucketOf(buf[i])]++
			}

			phaseBarrier.wait(func() {
				_, offsets = globalCursors(counts, partitions)
				for i := 0; i < partitions; i++ {
					locks[i].start = offsets[i]
					locks[i].end = offsets[i+1]
				}
			})

			start := (t * 17) % partitions
			for step := 0; step < partitions; step++ {
				i := (start + step) % partitions
				for advancePartition(buf, locks, i, bucketOf) {
				}
			}

			if g.numIter <= 1 {
				return nil
			}
			for {
				i, ok := queue.next(partitions)
				if !ok {
					return nil
				}
				inplaceDescend(buf, 1, offsets[i], offsets[i+1], g, less)
			}
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	if g.numIter <= 1 && g.nosortBits == 0 {
		refinePartitions(buf, offsets, less)
	}
	return nil
}

// advancePartition performs one step of partition i's cyclic-shift
// emptying: if the record at its cursor already belongs to i, the
// cursor advances and the caller should call again; if the record
// belongs elsewhere, it is swapped directly into that target
// partition's cursor slot (displacing whatever sat there back to
// position i's cursor, to be examined on the next call). Returns
// false once partition i's cursor has met its end.
func advancePartition[K any, V any](buf []Record[K, V], locks []partitionLock, i int, bucketOf func(Record[K, V]) int) bool {
	li := &locks[i]
	li.mu.Lock()
	if li.start >= li.end {
		li.mu.Unlock()
		return false
	}
	pos := li.start
	target := bucketOf(buf[pos])
	if target == i {
		li.start++
		li.mu.Unlock()
		return true
	}
	li.mu.Unlock()

	a, b := i, target
	if a > b {
		a, b = b, a
	}
	locks[a].mu.Lock()
	locks[b].mu.Lock()
	defer locks[b].mu.Unlock()
	defer locks[a].mu.Unlock()

	if locks[i].start != pos {
		// Another worker already advanced partition i past pos while
		// we were not holding its lock; nothing to do this round.
		return true
	}
	if bucketOf(buf[pos]) != target {
		// Another worker swapped a different record into pos while we
		// were not holding its lock; re-examine it on the next call.
		return true
	}
	lt := &locks[target]
	if lt.start >= lt.end {
		// Every record destined for target has already arrived, so
		// the record at pos cannot genuinely belong there; this
		// would indicate a miscount. Leave it for the caller's next
		// call rather than corrupting state.
		return true
	}
	slot := lt.start
	lt.start++
	buf[pos], buf[slot] = buf[slot], buf[pos]
	return true
}
