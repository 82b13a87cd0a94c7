// Package cachegeom grounds the bit-geometry auto-tuner (spec §4.1) in a
// concrete mechanism: reading the machine's L1 data cache size via CPUID
// and using it to cap the partition width so a pass's counter array (plus
// the records it touches) stays inside L1.
package cachegeom

import "github.com/klauspost/cpuid/v2"

// DefaultL1Bytes is used when CPUID detection is unavailable (e.g. under
// emulation or on an architecture cpuid doesn't recognize). 32KiB is a
// conservative, widely-true L1 data cache size across recent x86-64 and
// arm64 cores.
const DefaultL1Bytes = 32 * 1024

// L1DataCacheBytes returns the per-core L1 data cache size in bytes, as
// reported by CPUID. Falls back to DefaultL1Bytes if detection reports
// an unknown or nonsensical value.
func L1DataCacheBytes() int {
	size := cpuid.CPU.Cache.L1D
	if size <= 0 {
		return DefaultL1Bytes
	}
	return size
}
