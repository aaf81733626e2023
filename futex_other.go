//go:build !linux

// Portable fallback backend for platforms without a futex syscall, per
// spec.md §9's invitation to implement the "sleep while equal, wake all"
// contract via "a userspace parking table" when no kernel primitive is
// available. This polls with a short, bounded backoff instead of
// blocking indefinitely on a true wait queue — correctness (the
// reload-and-compare loop in wait.go/read.go never trusts a wakeup
// without rechecking) is unaffected; only wakeup latency differs from
// the Linux backend in futex_linux.go.
package sysprop

import "time"

const futexPollInterval = 2 * time.Millisecond

func (a *Area) futexWait(off int64, expected uint32) {
	time.Sleep(futexPollInterval)
}

func (a *Area) futexWakeAll(off int64) {
	// No waiter table to signal; futexWait's poll loop will observe the
	// change on its next tick.
}
