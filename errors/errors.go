// Package errors defines all exported error sentinels for the radixpart
// library.
//
// This is the single source of truth for error values. The top-level
// radixpart package imports from here, so callers can match its
// errors with errors.Is against these values.
package errors

import "errors"

// Façade contract errors (spec §7.1 — programmer contract violations).
var (
	ErrInvalidPartitionBits = errors.New("radixpart: partition_bits p must be in [1, 14]")
	ErrInvalidMaskBits      = errors.New("radixpart: mask_bits must be in [1, 64]")
	ErrInvalidNosortBits    = errors.New("radixpart: nosort_bits must be in [0, mask_bits]")
	ErrOutputTooShort       = errors.New("radixpart: output sequence shorter than input")
	ErrInvalidWorkerCount   = errors.New("radixpart: worker count must be >= 1")
	ErrNonDeterministicHash = errors.New("radixpart: hash function returned different values for the same key within one call")
)

// Resource exhaustion (spec §7.2).
var (
	ErrScratchAllocation = errors.New("radixpart: failed to allocate scratch buffers")
)

// Generic geometry error. No function in this module returns it:
// newGeometry reports each invalid parameter with its own sentinel above.
var (
	ErrInvalidGeometry = errors.New("radixpart: invalid bit geometry parameters")
)
