package radixpart

import (
	"math"

	"github.com/ekoontz/radixpart/internal/bits"
	"github.com/ekoontz/radixpart/internal/cachegeom"
	rperrors "github.com/ekoontz/radixpart/errors"
)

// minPartitionBits and maxPartitionBits bound partition_bits p (spec §3).
const (
	minPartitionBits = 6
	maxPartitionBits = 14
)

// geometry holds the three integers that define a sort's bit work
// (spec §3 "Bit geometry") plus the derived pass count.
type geometry struct {
	maskBits   int
	p          int
	nosortBits int
	numIter    int
}

// newGeometry validates and derives a geometry from explicit
// parameters. p must be in [1, 14] per the façade contract (spec
// §4.9); the auto-tuned path additionally restricts p to [6, 14]
// (spec §3) before calling this.
func newGeometry(maskBits, p, nosortBits int) (geometry, error) {
	if p < 1 || p > maxPartitionBits {
		return geometry{}, rperrors.ErrInvalidPartitionBits
	}
	if maskBits < 1 || maskBits > 64 {
		return geometry{}, rperrors.ErrInvalidMaskBits
	}
	if nosortBits < 0 || nosortBits > maskBits {
		return geometry{}, rperrors.ErrInvalidNosortBits
	}

	remaining := maskBits - nosortBits
	numIter := 0
	if remaining > 0 {
		numIter = (remaining + p - 1) / p // ceiling convention, spec §9(c)
	}
	return geometry{maskBits: maskBits, p: p, nosortBits: nosortBits, numIter: numIter}, nil
}

// partitions returns P = 2^p, the number of partitions per pass.
func (g geometry) partitions() int {
	return 1 << uint(g.p)
}

// passShiftMask returns the shift and mask for depth d (0-indexed),
// per spec §4.1: shift_d = max(0, mask_bits - p*(d+1)),
// mask_d = (1 << (mask_bits - p*d)) - 1.
func (g geometry) passShiftMask(d int) (shift uint, mask uint64) {
	s := g.maskBits - g.p*(d+1)
	if s < 0 {
		s = 0
	}
	shift = uint(s)
	mask = bits.MaskFor(g.maskBits - g.p*d)
	return
}

// consumedShift returns the right-shift that isolates the union of
// all bit groups consumed by depths [0, d): the top p*d bits of the
// mask_bits-wide fingerprint. This is what identifies whether two
// records still belong to the same outer partition after d passes —
// a single prior depth's own slice is not enough, since two distinct
// outer groups can coincidentally share one intermediate p-bit slice
// while differing in an earlier one.
func (g geometry) consumedShift(d int) uint {
	s := g.maskBits - g.p*d
	if s < 0 {
		s = 0
	}
	return uint(s)
}

// maskForGeometry returns the mask_bits-wide mask: the full fingerprint
// prefix the geometry's passes partition over, as opposed to any
// unused high bits of a 64-bit hash value.
func maskForGeometry(g geometry) uint64 {
	return bits.MaskFor(g.maskBits)
}

// bucketOf extracts the partition index for h at depth d: (h & mask) >> shift.
func (g geometry) bucketOf(h uint64, d int) int {
	shift, mask := g.passShiftMask(d)
	return int((h & mask) >> shift)
}

// power returns ceil(log2(n)), spec §4.1's `power(n)`.
func power(n uint64) int {
	return bits.CeilLog2(n)
}

// optimalPartitionBits implements spec §4.1's optimal_partition(n):
// the p in [6, 14] minimising the distance of log_{2^p}(n) from an
// integer (equivalently, the pass count ceil(mask_bits/p) rounds
// cleanly), with the early exit "if n < 2^p, return p".
func optimalPartitionBits(n uint64) int {
	for p := minPartitionBits; p <= maxPartitionBits; p++ {
		if n < uint64(1)<<uint(p) {
			return p
		}
	}

	maskBits := power(n)
	bestP, bestWaste := minPartitionBits, math.MaxInt
	for p := minPartitionBits; p <= maxPartitionBits; p++ {
		numIter := (maskBits + p - 1) / p
		waste := numIter*p - maskBits
		if waste < bestWaste {
			bestWaste = waste
			bestP = p
		}
	}
	return bestP
}

// cacheAwarePartitionBits refines optimalPartitionBits by capping p so
// that a pass's counter array (2^p int counters) fits within a
// configurable fraction of the L1 data cache, as reported by CPUID.
// This is the auto-tuner's cache-footprint requirement (spec §1): the
// distance-minimising p from optimalPartitionBits is a starting
// candidate, but it is reduced further if it would overflow L1.
func cacheAwarePartitionBits(n uint64, l1Bytes int) int {
	p := optimalPartitionBits(n)
	if l1Bytes <= 0 {
		return p
	}
	const counterSize = 8 // bytes per int counter on 64-bit platforms
	// Leave half of L1 for the records a pass actually touches.
	budget := l1Bytes / 2
	for p > minPartitionBits {
		partitions := 1 << uint(p)
		if partitions*counterSize <= budget {
			break
		}
		p--
	}
	return p
}

// autoPartitionBits is the façade's entry point for the p-omitted
// overloads: it combines the distance-minimising rule with the
// cache-footprint cap using the detected L1 data cache size.
func autoPartitionBits(n uint64) int {
	return cacheAwarePartitionBits(n, cachegeom.L1DataCacheBytes())
}
