package radixpart

import (
	"fmt"

	rperrors "github.com/ekoontz/radixpart/errors"
)

// checkHashDeterminism is the façade's concrete rendering of spec
// §7.1's "hash function returning different values for the same
// input across one call" contract violation: it calls hash twice on
// the first key and compares, a cheap sample check rather than
// rehashing every key. The original treats this as an assertion that
// disappears in release builds; Go has no such mode, so every
// non-inplace entry point checks it and returns a real error instead.
func checkHashDeterminism[K any, V any](src []Pair[K, V], hash HashFunc[K]) error {
	if len(src) == 0 {
		return nil
	}
	k := src[0].K
	if hash(k) != hash(k) {
		return rperrors.ErrNonDeterministicHash
	}
	return nil
}

// withScratchRecover runs fn, converting a panic raised while
// allocating the ping-pong scratch buffers (e.g. a request that
// exceeds the runtime's maximum allocation size) into
// ErrScratchAllocation (spec §7.2) instead of propagating the raw
// runtime panic. Because scratch is allocated before any record is
// written to dst, no partial output is ever observable on this path.
func withScratchRecover(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("%w: %v", rperrors.ErrScratchAllocation, r)
		}
	}()
	fn()
	return nil
}

// NonInplaceSeq is the non_inplace_seq entry point of spec §4.9: it
// hashes src and scatters into dst using two ping-pong scratch
// buffers, driven by the depth-first partitioner (C4) — the better
// default when keys are large or variable-length, since depth-first
// keeps the active working set to a single root-to-leaf path. dst
// must have length >= len(src).
func NonInplaceSeq[K any, V any](src []Pair[K, V], dst []Record[K, V], hash HashFunc[K], less LessFunc[K], maskBits, p, nosortBits int) error {
	if len(dst) < len(src) {
		return rperrors.ErrOutputTooShort
	}
	if err := checkHashDeterminism(src, hash); err != nil {
		return err
	}
	g, err := newGeometry(maskBits, p, nosortBits)
	if err != nil {
		return err
	}
	return withScratchRecover(func() {
		depthFirst(src, hash, g, less, dst[:len(src)])
	})
}

// NonInplaceSeqAuto is NonInplaceSeq with p chosen by the bit-geometry
// auto-tuner (C1) instead of supplied explicitly.
func NonInplaceSeqAuto[K any, V any](src []Pair[K, V], dst []Record[K, V], hash HashFunc[K], less LessFunc[K], maskBits, nosortBits int) error {
	return NonInplaceSeq(src, dst, hash, less, maskBits, autoPartitionBits(uint64(len(src))), nosortBits)
}

// NonInplaceSeqBreadthFirst is a supplemental entry point running the
// same contract as NonInplaceSeq but driven by the breadth-first
// partitioner (C5) instead: linear streaming per pass, which favours
// cache prefetchers when keys are small (e.g. integers). Callers who
// know their key shape can pick whichever of the two the source's own
// benchmarks favour; NonInplaceSeq's depth-first default is the safer
// choice when that isn't known.
func NonInplaceSeqBreadthFirst[K any, V any](src []Pair[K, V], dst []Record[K, V], hash HashFunc[K], less LessFunc[K], maskBits, p, nosortBits int) error {
	if len(dst) < len(src) {
		return rperrors.ErrOutputTooShort
	}
	if err := checkHashDeterminism(src, hash); err != nil {
		return err
	}
	g, err := newGeometry(maskBits, p, nosortBits)
	if err != nil {
		return err
	}
	return withScratchRecover(func() {
		breadthFirst(src, hash, g, less, dst[:len(src)])
	})
}

// NonInplaceSeqBreadthFirstAuto is NonInplaceSeqBreadthFirst with p
// chosen by the auto-tuner.
func NonInplaceSeqBreadthFirstAuto[K any, V any](src []Pair[K, V], dst []Record[K, V], hash HashFunc[K], less LessFunc[K], maskBits, nosortBits int) error {
	return NonInplaceSeqBreadthFirst(src, dst, hash, less, maskBits, autoPartitionBits(uint64(len(src))), nosortBits)
}

// NonInplacePar is the non_inplace_par entry point of spec §4.9: the
// parallel driver (C7) fans the hash-and-count phase and the scatter
// phase across workers goroutines, synchronised by a barrier (C8),
// then dispatches the resulting top-level partitions to a shared
// atomic work queue for depth-first refinement.
func NonInplacePar[K any, V any](src []Pair[K, V], dst []Record[K, V], hash HashFunc[K], less LessFunc[K], maskBits, p, nosortBits, workers int) error {
	if len(dst) < len(src) {
		return rperrors.ErrOutputTooShort
	}
	if err := checkHashDeterminism(src, hash); err != nil {
		return err
	}
	g, err := newGeometry(maskBits, p, nosortBits)
	if err != nil {
		return err
	}
	var perr error
	if err := withScratchRecover(func() {
		perr = parallelNonInplace(src, hash, g, less, workers, dst[:len(src)])
	}); err != nil {
		return err
	}
	return perr
}

// NonInplaceParAuto is NonInplacePar with p chosen by the auto-tuner.
func NonInplaceParAuto[K any, V any](src []Pair[K, V], dst []Record[K, V], hash HashFunc[K], less LessFunc[K], maskBits, nosortBits, workers int) error {
	return NonInplacePar(src, dst, hash, less, maskBits, autoPartitionBits(uint64(len(src))), nosortBits, workers)
}

// InplaceSeq is the inplace_seq entry point of spec §4.9: buf must
// already hold materialised (h, k, v) triples (the caller computes
// the hash; there is no hashing phase here), in arbitrary order. It
// is reordered in place using the cyclic-shift permuter (C6).
func InplaceSeq[K any, V any](buf []Record[K, V], less LessFunc[K], maskBits, p, nosortBits int) error {
	g, err := newGeometry(maskBits, p, nosortBits)
	if err != nil {
		return err
	}
	inplaceSortRecords(buf, g, less)
	return nil
}

// InplaceSeqAuto is InplaceSeq with p chosen by the auto-tuner.
func InplaceSeqAuto[K any, V any](buf []Record[K, V], less LessFunc[K], maskBits, nosortBits int) error {
	return InplaceSeq(buf, less, maskBits, autoPartitionBits(uint64(len(buf))), nosortBits)
}

// InplacePar is the inplace_par entry point of spec §4.9: the
// parallel driver partitions buf's top level across workers using a
// barrier-synchronised counting phase, then a lock-per-partition
// cyclic-shift scatter, before dispatching the resulting ranges to
// the shared work queue for in-place refinement.
func InplacePar[K any, V any](buf []Record[K, V], less LessFunc[K], maskBits, p, nosortBits, workers int) error {
	g, err := newGeometry(maskBits, p, nosortBits)
	if err != nil {
		return err
	}
	return parallelInplace(buf, g, less, workers)
}

// InplaceParAuto is InplacePar with p chosen by the auto-tuner.
func InplaceParAuto[K any, V any](buf []Record[K, V], less LessFunc[K], maskBits, nosortBits, workers int) error {
	return InplacePar(buf, less, maskBits, autoPartitionBits(uint64(len(buf))), nosortBits, workers)
}
