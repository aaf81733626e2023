// PropertyInfo record access: name and value codec within the info region.
//
// A PropertyInfo's name is written once, at Add time, and never touched
// again (spec.md invariant 1) — so reading it needs no seqlock. Its value
// is rewritten in place by Update under the seqlock in serial.go; readers
// must go through Read (read.go), never directly through the helpers here.
package sysprop

import "bytes"

// Ref is an opaque, stable reference to a PropertyInfo record returned by
// Find, FindNth, and Foreach. It remains valid for the lifetime of the
// mapping — records are never moved or freed (spec.md §4.2).
type Ref struct {
	area *Area
	off  int64 // byte offset of the record's base within area.mem
}

// nameBytes returns the record's name slice, NUL-terminator included,
// sized NameMax. Safe to read without synchronization: names are
// immutable after Add.
func (r Ref) nameBytes() []byte {
	base := r.off + propNameOff
	return r.area.mem[base : base+NameMax]
}

// Name returns the record's property name.
func (r Ref) Name() string {
	b := r.nameBytes()
	if i := bytes.IndexByte(b, 0); i >= 0 {
		b = b[:i]
	}
	return string(b)
}

func (r Ref) serialOffset() int64 {
	return r.off + propSerialOff
}

func (r Ref) valueBase() int64 {
	return r.off + propValueOff
}

// writeName copies name (without its NUL) into the record, zero-padding
// the rest of the NameMax field. Only called once, from Add, before the
// record is published via the TOC.
func (r Ref) writeName(name string) {
	b := r.nameBytes()
	clear(b)
	copy(b, name)
}

// writeValue copies value (without its NUL) into the record's value
// field, zero-padding the remainder. Callers hold the seqlock dirty bit
// already (write.go) or are initializing an unpublished record (Add).
func (r Ref) writeValue(value string) {
	base := r.valueBase()
	b := r.area.mem[base : base+ValueMax]
	clear(b)
	copy(b, value)
}

// readValue copies length+1 bytes (value plus its NUL terminator) out of
// the record's value field into dst, which must have capacity length+1.
func (r Ref) readValue(length int, dst []byte) {
	base := r.valueBase()
	copy(dst, r.area.mem[base:base+int64(length)+1])
}
