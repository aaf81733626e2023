// Reader protocol: lock-free lookup by name or index (spec.md C2, §4.2).
package sysprop

import "fmt"

// Find scans the TOC for a property named name and returns a stable
// reference to it. Names shorter than 1 byte or of length >= NameMax are
// rejected as "not found", matching the original's bounds check.
//
// If the area's bloom accelerator is enabled (see bloom.go), Find first
// reconciles the filter against any TOC entries published since it was
// last synced (reconcileBloom) — necessary because the filter is built
// once from a snapshot of the TOC, and the common case is a reader
// handle that never itself calls Add. Only after reconciling does a
// filter miss short-circuit straight to ErrNotFound without touching the
// TOC; a filter hit always falls through to the real linear scan below,
// since a bloom filter can false-positive but never false-negative.
func (a *Area) Find(name string) (Ref, error) {
	if a.mem == nil {
		return Ref{}, ErrClosed
	}
	if len(name) < 1 || len(name) >= NameMax {
		return Ref{}, ErrNotFound
	}

	if a.bloom != nil {
		a.reconcileBloom()
		if !a.bloom.Contains(name) {
			return Ref{}, ErrNotFound
		}
	}

	count := a.count()
	for i := uint32(0); i < count; i++ {
		entry := le.Uint32(a.mem[tocOffset(int(i)) : tocOffset(int(i))+4])
		nameLen, off := decodeTOC(entry)
		if !validTOCEntry(nameLen, off) {
			return Ref{}, fmt.Errorf("%w: corrupt TOC entry %d", ErrBadArea, i)
		}
		if nameLen != len(name) {
			continue
		}
		ref := Ref{area: a, off: off}
		if string(ref.nameBytes()[:nameLen]) == name {
			return ref, nil
		}
	}
	return Ref{}, ErrNotFound
}

// FindNth returns the i-th added record (0-indexed, insertion order), or
// ErrNotFound if i >= the number of populated entries. A TOC entry whose
// decoded offset or name length falls outside the bounds a valid record
// can occupy returns ErrBadArea instead of indexing out of range — the
// TOC is untrusted once an area has been attached from an external file
// (spec.md §9, "Offsets vs pointers").
func (a *Area) FindNth(i int) (Ref, error) {
	count := a.count()
	if i < 0 || uint32(i) >= count {
		return Ref{}, ErrNotFound
	}
	entry := le.Uint32(a.mem[tocOffset(i) : tocOffset(i)+4])
	nameLen, off := decodeTOC(entry)
	if !validTOCEntry(nameLen, off) {
		return Ref{}, fmt.Errorf("%w: corrupt TOC entry %d", ErrBadArea, i)
	}
	return Ref{area: a, off: off}, nil
}

// Foreach invokes cb for every property observed at entry, in insertion
// order. cb may return false to stop early. The set of records visited is
// exactly [0, count) as read once at the start of the call — properties
// added concurrently by the writer may or may not be observed, matching
// spec.md §4.2's "ordering is insertion order" contract without promising
// a consistent snapshot of count across the whole iteration.
//
// Foreach stops, without invoking cb, the first time it encounters a TOC
// entry whose offset or name length is out of bounds — the same
// corrupt-area defense as Find/FindNth (spec.md §9).
func (a *Area) Foreach(cb func(Ref) bool) {
	count := a.count()
	for i := uint32(0); i < count; i++ {
		entry := le.Uint32(a.mem[tocOffset(int(i)) : tocOffset(int(i))+4])
		nameLen, off := decodeTOC(entry)
		if !validTOCEntry(nameLen, off) {
			return
		}
		if !cb(Ref{area: a, off: off}) {
			return
		}
	}
}
