// Radixgen materializes a large file of random fixed-width (key,
// value) records, memory-maps it with edsrzf/mmap-go, and applies
// fadvise/fallocate/madvise hints through internal/iohint. It is the
// out-of-scope external input generator named in spec.md §1 ("input
// generators" are an external collaborator) — C14 of SPEC_FULL.md §2.
//
// The file this writes is a standalone, reproducible on-disk dataset;
// cmd/radixbench does not read it (it generates its own records in
// memory). The sort engine's own input/output remain in-memory slices,
// so nothing here is imported by the radixpart package.
//
// Usage:
//
//	go run ./cmd/radixgen -n 10000000 -out /tmp/records.bin
package main

import (
	"encoding/binary"
	"flag"
	"fmt"
	"math/rand/v2"
	"os"

	"github.com/edsrzf/mmap-go"

	"github.com/ekoontz/radixpart/internal/iohint"
)

// entrySize is 16 bytes: an 8-byte key followed by an 8-byte value,
// the fixed-width record layout this generator writes.
const entrySize = 16

func main() {
	nFlag := flag.Int("n", 10_000_000, "number of records to generate")
	outFlag := flag.String("out", "records.bin", "output file path")
	seedFlag := flag.Uint64("seed", 42, "PCG seed")
	flag.Parse()

	n := *nFlag
	totalBytes := int64(n) * entrySize

	file, err := os.Create(*outFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "create %s: %v\n", *outFlag, err)
		os.Exit(1)
	}
	defer func() { _ = file.Close() }()

	if err := iohint.FallocateFile(file, totalBytes); err != nil {
		fmt.Fprintf(os.Stderr, "fallocate: %v\n", err)
		os.Exit(1)
	}

	mm, err := mmap.MapRegion(file, int(totalBytes), mmap.RDWR, 0, 0)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mmap: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = mm.Unmap() }()

	data := []byte(mm)
	iohint.PrefaultRegion(data)

	rng := rand.New(rand.NewPCG(*seedFlag, *seedFlag^0x9E3779B97F4A7C15))
	for i := 0; i < n; i++ {
		off := i * entrySize
		binary.LittleEndian.PutUint64(data[off:], rng.Uint64())
		binary.LittleEndian.PutUint64(data[off+8:], rng.Uint64())
	}

	if err := mm.Flush(); err != nil {
		fmt.Fprintf(os.Stderr, "flush: %v\n", err)
		os.Exit(1)
	}

	iohint.FadviseSequential(int(file.Fd()), 0, totalBytes)
	fmt.Printf("wrote %d records (%d bytes) to %s\n", n, totalBytes, *outFlag)
}
