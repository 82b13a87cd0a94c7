// Radixbench drives all four façade entry points against randomly
// generated keyed records and reports throughput and the growth in
// peak RSS. It is the out-of-scope benchmark harness named in spec.md §1
// (C13 of SPEC_FULL.md §2) — never imported by the engine packages.
//
// Usage:
//
//	go run ./cmd/radixbench -n 10000000 -variant inplace_par -workers 8
//
// Flags:
//
//	-n        Number of records (default: 10,000,000)
//	-variant  non_inplace_seq, non_inplace_par, inplace_seq, inplace_par, all (default: all)
//	-p        Partition bits; 0 picks the auto-tuner (default: 0)
//	-workers  Worker count for the parallel variants (default: GOMAXPROCS)
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"os"
	"runtime"
	"syscall"
	"time"

	radixpart "github.com/ekoontz/radixpart"
)

func getMaxRSS() uint64 {
	var rusage syscall.Rusage
	if err := syscall.Getrusage(syscall.RUSAGE_SELF, &rusage); err != nil {
		return 0
	}
	maxRSS := uint64(rusage.Maxrss)
	if runtime.GOOS == "linux" {
		maxRSS *= 1024
	}
	return maxRSS
}

func intLess(a, b uint64) bool { return a < b }

func genPairs(n int, seed uint64) []radixpart.Pair[uint64, uint64] {
	rng := rand.New(rand.NewPCG(seed, seed^0x9E3779B97F4A7C15))
	pairs := make([]radixpart.Pair[uint64, uint64], n)
	for i := range pairs {
		k := rng.Uint64()
		pairs[i] = radixpart.Pair[uint64, uint64]{K: k, V: k}
	}
	return pairs
}

func materialize(pairs []radixpart.Pair[uint64, uint64], hash radixpart.HashFunc[uint64]) []radixpart.Record[uint64, uint64] {
	buf := make([]radixpart.Record[uint64, uint64], len(pairs))
	for i, pr := range pairs {
		buf[i] = radixpart.Record[uint64, uint64]{H: hash(pr.K), K: pr.K, V: pr.V}
	}
	return buf
}

func report(name string, n int, dur time.Duration, rssBefore uint64) {
	rssAfter := getMaxRSS()
	throughput := float64(n) / dur.Seconds() / 1_000_000
	fmt.Printf("%-18s  n=%-10d  %8.3fs  %7.2f M rec/s  peak RSS %6.1f MB\n",
		name, n, dur.Seconds(), throughput, float64(rssAfter-rssBefore)/1_000_000)
}

func main() {
	nFlag := flag.Int("n", 10_000_000, "number of records")
	variantFlag := flag.String("variant", "all", "non_inplace_seq, non_inplace_par, inplace_seq, inplace_par, all")
	pFlag := flag.Int("p", 0, "partition bits (0 = auto-tuned)")
	workersFlag := flag.Int("workers", runtime.GOMAXPROCS(0), "worker count for parallel variants")
	flag.Parse()

	n := *nFlag
	maskBits := 63
	nosortBits := 0
	hash := radixpart.IdentityUint64

	fmt.Printf("Generating %d records...\n", n)
	pairs := genPairs(n, 12345)

	run := func(name string, fn func() error) {
		runtime.GC()
		rssBefore := getMaxRSS()
		start := time.Now()
		if err := fn(); err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", name, err)
			return
		}
		report(name, n, time.Since(start), rssBefore)
	}

	p := *pFlag
	pickP := func() int {
		if p > 0 {
			return p
		}
		return 0 // signal to use the Auto entry point
	}

	want := func(name string) bool { return *variantFlag == "all" || *variantFlag == name }

	if want("non_inplace_seq") {
		dst := make([]radixpart.Record[uint64, uint64], n)
		run("non_inplace_seq", func() error {
			if pp := pickP(); pp > 0 {
				return radixpart.NonInplaceSeq(pairs, dst, hash, intLess, maskBits, pp, nosortBits)
			}
			return radixpart.NonInplaceSeqAuto(pairs, dst, hash, intLess, maskBits, nosortBits)
		})
	}

	if want("non_inplace_par") {
		dst := make([]radixpart.Record[uint64, uint64], n)
		run("non_inplace_par", func() error {
			if pp := pickP(); pp > 0 {
				return radixpart.NonInplacePar(pairs, dst, hash, intLess, maskBits, pp, nosortBits, *workersFlag)
			}
			return radixpart.NonInplaceParAuto(pairs, dst, hash, intLess, maskBits, nosortBits, *workersFlag)
		})
	}

	if want("inplace_seq") {
		buf := materialize(pairs, hash)
		run("inplace_seq", func() error {
			if pp := pickP(); pp > 0 {
				return radixpart.InplaceSeq(buf, intLess, maskBits, pp, nosortBits)
			}
			return radixpart.InplaceSeqAuto(buf, intLess, maskBits, nosortBits)
		})
	}

	if want("inplace_par") {
		buf := materialize(pairs, hash)
		run("inplace_par", func() error {
			if pp := pickP(); pp > 0 {
				return radixpart.InplacePar(buf, intLess, maskBits, pp, nosortBits, *workersFlag)
			}
			return radixpart.InplaceParAuto(buf, intLess, maskBits, nosortBits, *workersFlag)
		})
	}
}
