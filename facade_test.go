package radixpart

import (
	"testing"

	rperrors "github.com/ekoontz/radixpart/errors"
)

func TestNonInplaceSeqEmptyInput(t *testing.T) {
	var src []Pair[int, int]
	dst := make([]Record[int, int], 0)
	if err := NonInplaceSeq(src, dst, xorShiftHash, intLess, 16, 6, 0); err != nil {
		t.Fatalf("unexpected error on empty input: %v", err)
	}
}

func TestNonInplaceSeqSingleton(t *testing.T) {
	src := []Pair[int, int]{{K: 42, V: 99}}
	dst := make([]Record[int, int], 1)
	if err := NonInplaceSeq(src, dst, xorShiftHash, intLess, 16, 6, 0); err != nil {
		t.Fatal(err)
	}
	if dst[0].K != 42 || dst[0].V != 99 || dst[0].H != xorShiftHash(42) {
		t.Fatalf("singleton mismatch: %+v", dst[0])
	}
}

func TestNonInplaceSeqReverseIntegers(t *testing.T) {
	n := 500
	src := make([]Pair[int, int], n)
	for i := range src {
		src[i] = Pair[int, int]{K: n - i, V: i}
	}
	dst := make([]Record[int, int], n)
	if err := NonInplaceSeq(src, dst, xorShiftHash, intLess, 20, 6, 0); err != nil {
		t.Fatal(err)
	}
	assertSortedByMaskedPrefix(t, dst, maskForGeometry(mustGeometry(t, 20, 6, 0)))
}

func TestNonInplaceSeqDuplicateKeys(t *testing.T) {
	n := 400
	src := make([]Pair[int, int], n)
	for i := range src {
		src[i] = Pair[int, int]{K: i % 10, V: i} // heavy duplication
	}
	dst := make([]Record[int, int], n)
	if err := NonInplaceSeq(src, dst, xorShiftHash, intLess, 16, 6, 0); err != nil {
		t.Fatal(err)
	}
	got := make(map[int]int)
	for _, r := range dst {
		got[r.K]++
	}
	for k := 0; k < 10; k++ {
		if got[k] != n/10 {
			t.Errorf("key %d: count %d, want %d", k, got[k], n/10)
		}
	}
	verifyGroupedByHash(t, dst)
}

// collidingHash always returns the same fingerprint, forcing every
// record into one partition so the insertion refiner must resolve
// every tie.
func collidingHash(k int) uint64 { return 0xABCD }

func TestNonInplaceSeqAllCollide(t *testing.T) {
	n := 200
	src := make([]Pair[int, int], n)
	for i := range src {
		src[i] = Pair[int, int]{K: n - i, V: i}
	}
	dst := make([]Record[int, int], n)
	if err := NonInplaceSeq(src, dst, collidingHash, intLess, 16, 6, 0); err != nil {
		t.Fatal(err)
	}
	for i := 1; i < n; i++ {
		if dst[i-1].K > dst[i].K {
			t.Fatalf("tie-break ordering violated at %d: %d before %d", i, dst[i-1].K, dst[i].K)
		}
	}
}

func TestNonInplaceSeqOutputTooShort(t *testing.T) {
	src := make([]Pair[int, int], 10)
	dst := make([]Record[int, int], 5)
	if err := NonInplaceSeq(src, dst, xorShiftHash, intLess, 16, 6, 0); err != rperrors.ErrOutputTooShort {
		t.Fatalf("err = %v, want %v", err, rperrors.ErrOutputTooShort)
	}
}

func TestNonInplaceSeqInvalidPartitionBits(t *testing.T) {
	src := make([]Pair[int, int], 10)
	dst := make([]Record[int, int], 10)
	if err := NonInplaceSeq(src, dst, xorShiftHash, intLess, 16, 0, 0); err != rperrors.ErrInvalidPartitionBits {
		t.Fatalf("err = %v, want %v", err, rperrors.ErrInvalidPartitionBits)
	}
}

func TestNonInplaceSeqAutoPicksValidGeometry(t *testing.T) {
	rng := newTestRNG(t)
	n := 3000
	src := make([]Pair[int, int], n)
	for i := range src {
		src[i] = Pair[int, int]{K: rng.IntN(1 << 20), V: i}
	}
	dst := make([]Record[int, int], n)
	if err := NonInplaceSeqAuto(src, dst, xorShiftHash, intLess, 24, 0); err != nil {
		t.Fatal(err)
	}
	verifyGroupedByHash(t, dst)
}

func TestNonInplaceParMatchesSeqForVariousWorkerCounts(t *testing.T) {
	rng := newTestRNG(t)
	n := 4000
	src := make([]Pair[int, int], n)
	for i := range src {
		src[i] = Pair[int, int]{K: rng.IntN(1 << 20), V: i}
	}

	seqDst := make([]Record[int, int], n)
	if err := NonInplaceSeq(src, seqDst, xorShiftHash, intLess, 24, 6, 0); err != nil {
		t.Fatal(err)
	}
	seqGroups := groupBoundaries(seqDst, maskForGeometry(mustGeometry(t, 24, 6, 0)))

	for _, workers := range []int{1, 2, 4, 8} {
		parDst := make([]Record[int, int], n)
		if err := NonInplacePar(src, parDst, xorShiftHash, intLess, 24, 6, 0, workers); err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		parGroups := groupBoundaries(parDst, maskForGeometry(mustGeometry(t, 24, 6, 0)))
		if len(seqGroups) != len(parGroups) {
			t.Fatalf("workers=%d: group count mismatch seq=%d par=%d", workers, len(seqGroups), len(parGroups))
		}
		for h, seqSet := range seqGroups {
			parSet, ok := parGroups[h]
			if !ok {
				t.Fatalf("workers=%d: group %#x missing from parallel result", workers, h)
			}
			for k, c := range seqSet {
				if parSet[k] != c {
					t.Fatalf("workers=%d: group %#x key %d count mismatch seq=%d par=%d", workers, h, k, c, parSet[k])
				}
			}
		}
	}
}

func TestInplaceSeqMatchesNonInplaceSeq(t *testing.T) {
	rng := newTestRNG(t)
	n := 2500
	src := make([]Pair[int, int], n)
	for i := range src {
		src[i] = Pair[int, int]{K: rng.IntN(1 << 20), V: i}
	}

	niDst := make([]Record[int, int], n)
	if err := NonInplaceSeq(src, niDst, xorShiftHash, intLess, 24, 6, 0); err != nil {
		t.Fatal(err)
	}

	ipBuf := materializeRecords(src, xorShiftHash)
	if err := InplaceSeq(ipBuf, intLess, 24, 6, 0); err != nil {
		t.Fatal(err)
	}

	topMask := maskForGeometry(mustGeometry(t, 24, 6, 0))
	niGroups := groupBoundaries(niDst, topMask)
	ipGroups := groupBoundaries(ipBuf, topMask)
	if len(niGroups) != len(ipGroups) {
		t.Fatalf("group count mismatch: non-inplace=%d inplace=%d", len(niGroups), len(ipGroups))
	}
	for h, niSet := range niGroups {
		ipSet, ok := ipGroups[h]
		if !ok {
			t.Fatalf("group %#x missing from in-place result", h)
		}
		for k, c := range niSet {
			if ipSet[k] != c {
				t.Fatalf("group %#x key %d count mismatch non-inplace=%d inplace=%d", h, k, c, ipSet[k])
			}
		}
	}
}

func TestInplaceParMatchesInplaceSeqForVariousWorkerCounts(t *testing.T) {
	rng := newTestRNG(t)
	n := 4000
	src := make([]Pair[int, int], n)
	for i := range src {
		src[i] = Pair[int, int]{K: rng.IntN(1 << 20), V: i}
	}

	seqBuf := materializeRecords(src, xorShiftHash)
	if err := InplaceSeq(seqBuf, intLess, 24, 6, 0); err != nil {
		t.Fatal(err)
	}
	topMask := maskForGeometry(mustGeometry(t, 24, 6, 0))
	seqGroups := groupBoundaries(seqBuf, topMask)

	for _, workers := range []int{1, 2, 4, 8} {
		parBuf := materializeRecords(src, xorShiftHash)
		if err := InplacePar(parBuf, intLess, 24, 6, 0, workers); err != nil {
			t.Fatalf("workers=%d: %v", workers, err)
		}
		parGroups := groupBoundaries(parBuf, topMask)
		if len(seqGroups) != len(parGroups) {
			t.Fatalf("workers=%d: group count mismatch seq=%d par=%d", workers, len(seqGroups), len(parGroups))
		}
		for h, seqSet := range seqGroups {
			parSet, ok := parGroups[h]
			if !ok {
				t.Fatalf("workers=%d: group %#x missing from parallel result", workers, h)
			}
			for k, c := range seqSet {
				if parSet[k] != c {
					t.Fatalf("workers=%d: group %#x key %d count mismatch seq=%d par=%d", workers, h, k, c, parSet[k])
				}
			}
		}
	}
}

func TestInplaceParInvalidWorkerCount(t *testing.T) {
	buf := materializeRecords([]Pair[int, int]{{K: 1}, {K: 2}}, xorShiftHash)
	if err := InplacePar(buf, intLess, 16, 6, 0, 0); err != rperrors.ErrInvalidWorkerCount {
		t.Fatalf("err = %v, want %v", err, rperrors.ErrInvalidWorkerCount)
	}
}

func TestFacadeAllFourEntryPointsAgreeOnRandomStrings(t *testing.T) {
	rng := newTestRNG(t)
	n := 1000
	alphabet := "abcdefghijklmnopqrstuvwxyz"
	src := make([]Pair[string, int], n)
	for i := range src {
		b := make([]byte, 1+rng.IntN(12))
		for j := range b {
			b[j] = alphabet[rng.IntN(len(alphabet))]
		}
		src[i] = Pair[string, int]{K: string(b), V: i}
	}
	stringLess := func(a, b string) bool { return a < b }

	niDst := make([]Record[string, int], n)
	if err := NonInplaceSeq(src, niDst, XXH3String, stringLess, 24, 6, 0); err != nil {
		t.Fatal(err)
	}
	bfDst := make([]Record[string, int], n)
	if err := NonInplaceSeqBreadthFirst(src, bfDst, XXH3String, stringLess, 24, 6, 0); err != nil {
		t.Fatal(err)
	}
	parDst := make([]Record[string, int], n)
	if err := NonInplacePar(src, parDst, XXH3String, stringLess, 24, 6, 0, 4); err != nil {
		t.Fatal(err)
	}
	ipBuf := materializeRecords(src, XXH3String)
	if err := InplaceSeq(ipBuf, stringLess, 24, 6, 0); err != nil {
		t.Fatal(err)
	}
	ipParBuf := materializeRecords(src, XXH3String)
	if err := InplacePar(ipParBuf, stringLess, 24, 6, 0, 4); err != nil {
		t.Fatal(err)
	}

	topMask := maskForGeometry(mustGeometry(t, 24, 6, 0))
	reference := groupBoundariesString(niDst, topMask)
	for name, got := range map[string][]Record[string, int]{
		"breadth-first":  bfDst,
		"parallel":       parDst,
		"in-place":       ipBuf,
		"in-place-par":   ipParBuf,
	} {
		gotGroups := groupBoundariesString(got, topMask)
		if len(gotGroups) != len(reference) {
			t.Fatalf("%s: group count mismatch got=%d want=%d", name, len(gotGroups), len(reference))
		}
		for h, refSet := range reference {
			gotSet, ok := gotGroups[h]
			if !ok {
				t.Fatalf("%s: group %#x missing", name, h)
			}
			for k, c := range refSet {
				if gotSet[k] != c {
					t.Fatalf("%s: group %#x key %q count mismatch got=%d want=%d", name, h, k, gotSet[k], c)
				}
			}
		}
	}
}

func groupBoundariesString(out []Record[string, int], topMask uint64) map[uint64]map[string]int {
	groups := make(map[uint64]map[string]int)
	for _, r := range out {
		g := r.H & topMask
		if groups[g] == nil {
			groups[g] = make(map[string]int)
		}
		groups[g][r.K]++
	}
	return groups
}

func mustGeometry(t *testing.T, maskBits, p, nosortBits int) geometry {
	t.Helper()
	g, err := newGeometry(maskBits, p, nosortBits)
	if err != nil {
		t.Fatal(err)
	}
	return g
}

func TestNonInplaceSeqRejectsNonDeterministicHash(t *testing.T) {
	var calls int
	flaky := func(k int) uint64 {
		calls++
		return uint64(calls % 2)
	}
	src := []Pair[int, int]{{K: 1, V: 1}, {K: 2, V: 2}}
	dst := make([]Record[int, int], 2)
	if err := NonInplaceSeq(src, dst, flaky, intLess, 16, 6, 0); err != rperrors.ErrNonDeterministicHash {
		t.Fatalf("err = %v, want %v", err, rperrors.ErrNonDeterministicHash)
	}
}

func TestNonInplaceParRejectsNonDeterministicHash(t *testing.T) {
	var calls int
	flaky := func(k int) uint64 {
		calls++
		return uint64(calls % 2)
	}
	src := []Pair[int, int]{{K: 1, V: 1}, {K: 2, V: 2}}
	dst := make([]Record[int, int], 2)
	if err := NonInplacePar(src, dst, flaky, intLess, 16, 6, 0, 2); err != rperrors.ErrNonDeterministicHash {
		t.Fatalf("err = %v, want %v", err, rperrors.ErrNonDeterministicHash)
	}
}
