//go:build darwin

package iohint

import (
	"os"

	"golang.org/x/sys/unix"
)

// FadviseSequential is a no-op on Darwin; FADV_SEQUENTIAL is Linux-specific.
func FadviseSequential(fd int, offset, length int64) {
	// No-op
}

// FadviseDontNeed is a no-op on Darwin.
func FadviseDontNeed(fd int, offset, length int64) {
	// No-op
}

// FallocateFile pre-allocates disk blocks using fcntl F_PREALLOCATE.
func FallocateFile(file *os.File, size int64) error {
	fst := unix.Fstore_t{
		Flags:   unix.F_ALLOCATEALL,
		Posmode: unix.F_PEOFPOSMODE,
		Offset:  0,
		Length:  size,
	}
	if err := unix.FcntlFstore(file.Fd(), unix.F_PREALLOCATE, &fst); err != nil {
		return unix.Ftruncate(int(file.Fd()), size)
	}
	return unix.Ftruncate(int(file.Fd()), size)
}

// PrefaultRegion is a no-op on Darwin; no efficient prefault primitive.
func PrefaultRegion(data []byte) {
	// No-op
}
