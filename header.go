// Area header accessors: count, serial, magic/version validation.
//
// The header lives at offset 0 of the mapping and is process-shared —
// count and serial go through the atomic helpers in serial.go rather than
// a plain slice read, since readers in other processes may observe a
// write to them mid-flight. magic and version are stamped once, before
// the area is shared, and are read with plain slice reads.
package sysprop

import "fmt"

// count returns the number of populated entries. Monotonically
// non-decreasing for the life of the area (spec.md invariant 3).
func (a *Area) count() uint32 {
	return atomicLoad32(a.mem, offCount)
}

func (a *Area) setCount(v uint32) {
	atomicStore32(a.mem, offCount, v)
}

// Serial returns the area's global change counter. It strictly increases
// across every successful Add and Update (spec.md invariant 4).
func (a *Area) Serial() uint32 {
	return atomicLoad32(a.mem, offSerial)
}

func (a *Area) bumpSerial() uint32 {
	return atomicAdd32(a.mem, offSerial, 1)
}

func (a *Area) magic() uint32   { return le.Uint32(a.mem[offMagic : offMagic+4]) }
func (a *Area) version() uint32 { return le.Uint32(a.mem[offVersion : offVersion+4]) }

// stampHeader writes magic and version. Called once, by Init, on a freshly
// zeroed region — never touched again for the life of the area.
func (a *Area) stampHeader() {
	le.PutUint32(a.mem[offMagic:offMagic+4], AreaMagic)
	le.PutUint32(a.mem[offVersion:offVersion+4], AreaVersion)
}

// validateHeader checks the integrity tags an attaching reader must see
// before trusting the rest of the mapping (spec.md §4.5 step 5).
func (a *Area) validateHeader() error {
	if a.magic() != AreaMagic {
		return fmt.Errorf("%w: bad magic %#x", ErrBadArea, a.magic())
	}
	if a.version() != AreaVersion {
		return fmt.Errorf("%w: unsupported version %d", ErrBadArea, a.version())
	}
	return nil
}

// atomicLoad32/atomicStore32/atomicAdd32 are thin wrappers around
// serial.go's mapping-relative atomics, named for header.go's own offsets
// (which are plain counters, not seqlock words, but share the same
// acquire/release discipline spec.md §5 requires of every field in the
// header).
func atomicLoad32(mem []byte, off int64) uint32 { return loadSerialAt(mem, off) }
func atomicStore32(mem []byte, off int64, v uint32) { storeSerialAt(mem, off, v) }
func atomicAdd32(mem []byte, off int64, delta uint32) uint32 { return addSerialAt(mem, off, delta) }
