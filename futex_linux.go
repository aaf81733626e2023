//go:build linux

// Linux futex backend: "sleep while *addr == expected, wake all"
// (spec.md §9, "Futex semantics"), implemented with the raw SYS_FUTEX
// syscall via golang.org/x/sys/unix — there is no higher-level wrapper in
// the Go ecosystem that reaches this syscall, and x/sys is already in the
// dependency graph (an indirect dependency of the teacher this package
// was built from). See futex_other.go for the portable fallback used on
// non-Linux builds.
package sysprop

import (
	"unsafe"

	"golang.org/x/sys/unix"
)

// futexWait blocks while the uint32 at byte offset off within a.mem still
// equals expected. Returns immediately (possibly spuriously) otherwise;
// callers always reload and recheck, per spec.md §4.4.
func (a *Area) futexWait(off int64, expected uint32) {
	addr := (*uint32)(unsafe.Pointer(&a.mem[off]))
	_, _, errno := unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(linuxFutexWait),
		uintptr(expected),
		0, 0, 0,
	)
	_ = errno // EAGAIN (value already changed) and EINTR are both fine to ignore here
}

// futexWakeAll wakes every waiter blocked on the uint32 at byte offset off.
func (a *Area) futexWakeAll(off int64) {
	addr := (*uint32)(unsafe.Pointer(&a.mem[off]))
	unix.Syscall6(
		unix.SYS_FUTEX,
		uintptr(unsafe.Pointer(addr)),
		uintptr(linuxFutexWake),
		uintptr(maxFutexWaiters),
		0, 0, 0,
	)
}

const (
	linuxFutexWait  = 0 // FUTEX_WAIT
	linuxFutexWake  = 1 // FUTEX_WAKE
	maxFutexWaiters = 1<<31 - 1
)
