//go:build linux

// Package iohint provides best-effort OS hints for the external input
// generator (cmd/radixgen). It is never imported by the sort engine
// itself: spec.md's persistence/external-memory non-goals apply to the
// engine, not to the out-of-scope harness that manufactures inputs for it.
package iohint

import (
	"os"

	"golang.org/x/sys/unix"
)

// madvPopulateWrite was added in Linux 5.14.
// On older kernels, madvise returns EINVAL which is ignored.
const madvPopulateWrite = 23

// FadviseSequential hints to the kernel that the file will be read
// sequentially. Best-effort: errors are silently ignored.
func FadviseSequential(fd int, offset, length int64) {
	_ = unix.Fadvise(fd, offset, length, unix.FADV_SEQUENTIAL)
}

// FadviseDontNeed tells the kernel the page cache for this range can be
// dropped once read, so repeated generator runs don't inflate RSS.
func FadviseDontNeed(fd int, offset, length int64) {
	_ = unix.Fadvise(fd, offset, length, unix.FADV_DONTNEED)
}

// FallocateFile pre-allocates disk blocks to prevent SIGBUS on disk full.
func FallocateFile(file *os.File, size int64) error {
	if err := unix.Fallocate(int(file.Fd()), 0, 0, size); err != nil {
		return unix.Ftruncate(int(file.Fd()), size)
	}
	return unix.Ftruncate(int(file.Fd()), size)
}

// PrefaultRegion asks the kernel to prefault pages for writing.
// On kernels older than 5.14, madvise returns EINVAL which is ignored.
func PrefaultRegion(data []byte) {
	if len(data) == 0 {
		return
	}
	_ = unix.Madvise(data, madvPopulateWrite)
}
