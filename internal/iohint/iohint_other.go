//go:build !linux && !darwin

package iohint

import "os"

// FadviseSequential is a no-op; fadvise is Linux-specific.
func FadviseSequential(fd int, offset, length int64) {
	// No-op
}

// FadviseDontNeed is a no-op; fadvise is Linux-specific.
func FadviseDontNeed(fd int, offset, length int64) {
	// No-op
}

// FallocateFile falls back to Truncate where native fallocate is unavailable.
// This sets the file size but may not reserve disk blocks on all filesystems.
func FallocateFile(file *os.File, size int64) error {
	return file.Truncate(size)
}

// PrefaultRegion is a no-op; no portable prefault primitive exists.
func PrefaultRegion(data []byte) {
	// No-op
}
