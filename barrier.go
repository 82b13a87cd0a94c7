package radixpart

import "sync"

// barrier synchronises a fixed number of worker goroutines at the end
// of each phase of the parallel driver (spec §4.7): Phase A (counting)
// must fully complete, across every worker, before any worker begins
// Phase B (scatter), since the global cursor table Phase B writes from
// depends on every worker's private counts.
//
// One goroutine arriving at each round is elected leader and runs
// leaderWork before releasing the rest — this is how the parallel
// driver computes the global exclusive prefix-sum across workers and
// partitions exactly once per round instead of racing every worker to
// redo it.
type barrier struct {
	mu      sync.Mutex
	cond    *sync.Cond
	parties int
	waiting int
	round   int
}

// newBarrier creates a barrier for the given number of parties. parties
// must be >= 1.
func newBarrier(parties int) *barrier {
	b := &barrier{parties: parties}
	b.cond = sync.NewCond(&b.mu)
	return b
}

// wait blocks until all N parties have called it for the current
// round, then returns. Exactly one caller per round — the one whose
// arrival completes the round — receives true; every other caller
// receives false. If leaderWork is non-nil, it runs once, inside the
// barrier, before any party (including the leader) leaves: this is
// what lets the leader compute shared state (the global prefix-sum of
// spec §4.7) with the guarantee that every other party's next read of
// it happens after this write.
func (b *barrier) wait(leaderWork func()) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	round := b.round
	b.waiting++
	if b.waiting < b.parties {
		for b.round == round {
			b.cond.Wait()
		}
		return false
	}

	// Last party to arrive: elected leader for this round.
	if leaderWork != nil {
		leaderWork()
	}
	b.waiting = 0
	b.round++
	b.cond.Broadcast()
	return true
}
