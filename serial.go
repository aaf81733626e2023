package sysprop

import (
	"sync/atomic"
	"unsafe"
)

// Serial word layout of every PropertyInfo's per-record serial:
//
//	value_length << 24 | counter << 1 | dirty
//
// dirty is the low bit: set while a writer is between marking a record
// dirty and publishing the new value, so "serial | 1" and "serial + 1"
// are both single atomic-store operations (see spec.md §9, "Seqlock with
// embedded length"). The header's global serial does not use this
// layout: it is a plain counter incremented by 1 (header.go), so its low
// bit carries no meaning. Both kinds of word share the atomic helpers
// below, and wait.go compares both as raw words.

const (
	serialDirtyBit  = 1
	serialCounterShift = 1
	serialCounterMask  = 0x7fffff // 23 bits, per spec.md §4.3 step 3
	serialLengthShift  = 24
)

func serialDirty(s uint32) bool {
	return s&serialDirtyBit != 0
}

func serialValueLen(s uint32) int {
	return int(s >> serialLengthShift)
}

func serialCounter(s uint32) uint32 {
	return (s >> serialCounterShift) & serialCounterMask
}

// makeSerial packs a value length, counter, and dirty bit into a serial
// word. Counter is masked to 23 bits — callers rely on inequality, not
// magnitude, since the counter wraps every 2^23 updates (spec.md §9,
// "Counter wrap").
func makeSerial(valueLen int, counter uint32, dirty bool) uint32 {
	d := uint32(0)
	if dirty {
		d = 1
	}
	return uint32(valueLen)<<serialLengthShift | (counter&serialCounterMask)<<serialCounterShift | d
}

// atomicWord returns a *uint32 aliasing the mapping's bytes at off. Every
// access to header or PropertyInfo state goes through this so that all
// reads are acquire and all writes are release, matching spec.md §5's
// ordering requirements. off must be 4-byte aligned; the values of
// InfoRegionStart (a multiple of 8) and propertyInfoSize (128) in area.go
// guarantee this for every record's serial.
func atomicWord(mem []byte, off int64) *uint32 {
	return (*uint32)(unsafe.Pointer(&mem[off]))
}

func loadSerialAt(mem []byte, off int64) uint32 {
	return atomic.LoadUint32(atomicWord(mem, off))
}

func storeSerialAt(mem []byte, off int64, v uint32) {
	atomic.StoreUint32(atomicWord(mem, off), v)
}

func addSerialAt(mem []byte, off int64, delta uint32) uint32 {
	return atomic.AddUint32(atomicWord(mem, off), delta)
}
