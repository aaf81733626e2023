// Package sysprop implements the core of a process-wide system property
// store: a shared, memory-mapped key/value area that one privileged writer
// mutates in place and every other process reads without syscalls.
//
// The mapping is divided into three fixed-offset regions: a header (which
// embeds the table of contents inline), and an info region holding a dense
// array of PropertyInfo records. Readers never allocate and never take a
// lock; a single writer appends new records and rewrites values in place
// under a seqlock discipline. Each step of the protocol is documented on
// the code that implements it: find.go, read.go, write.go and wait.go.
package sysprop

import "encoding/binary"

// Wire constants. These are part of the on-disk ABI and must never change
// without bumping AreaVersion — every process sharing the mapping compiles
// against the same values.
const (
	// NameMax is the upper bound on a property name including the NUL
	// terminator.
	NameMax = 32
	// ValueMax is the upper bound on a property value including the NUL
	// terminator.
	ValueMax = 92
	// MaxEntries is the upper bound on the number of properties a single
	// area can hold. 247 matches the historical bionic default for a
	// 32 KiB workspace.
	MaxEntries = 247
	// AreaSize is the fixed byte size of the backing file and mapping.
	AreaSize = 32 * 1024

	// AreaMagic identifies a valid area. Read as the bytes 'P','R','O','P'
	// in little-endian order.
	AreaMagic uint32 = 0x504f5250
	// AreaVersion identifies the on-disk layout version this package reads
	// and writes.
	AreaVersion uint32 = 1
)

// headerReservedWords pads the header so that its size is stable across
// minor additions without shifting toc (and therefore every stored offset).
const headerReservedWords = 4

// headerFixedWords is the count of uint32 words in the header before the
// toc array: count, serial, magic, version, reserved[4].
const headerFixedWords = 4 + headerReservedWords

// HeaderSize is the byte size of the header, including the inline TOC.
const HeaderSize = (headerFixedWords + MaxEntries) * 4

// propertyInfoSize is the on-disk size of one PropertyInfo record:
// name + serial (uint32) + value.
const propertyInfoSize = NameMax + 4 + ValueMax

// InfoRegionStart is the byte offset of the first PropertyInfo record,
// rounded up to 8-byte alignment so records never straddle an alignment
// boundary on any supported architecture.
const InfoRegionStart = (HeaderSize + 7) &^ 7

func init() {
	// These hold for the constants above; a change to any of them that
	// breaks the invariant would silently corrupt the on-disk format.
	if InfoRegionStart+MaxEntries*propertyInfoSize > AreaSize {
		panic("sysprop: MaxEntries does not fit within AreaSize")
	}
}

// header is the process-shared header at offset 0 of the mapping. Its
// layout mirrors struct prop_area from the original bionic implementation:
// count and serial are plain words mutated with atomic loads/stores (no
// locking — see serial.go), magic/version are stamped once at Init and
// never touched again, and toc is the table of contents: toc[i] for
// i < count is a packed (name_length<<24 | offset) descriptor pointing at
// a PropertyInfo record in the info region.
//
// header has no fields and is never read through: the layout above is
// expressed as the byte offsets in the const block below, and the
// accessors in header.go read and write the mapping at those offsets.
type header struct {
	// byte offsets into the mapping, used by encode/decode helpers below.
}

const (
	offCount   = 0
	offSerial  = 4
	offMagic   = 8
	offVersion = 12
	offReservedStart = 16
	offTOC     = headerFixedWords * 4
)

// tocOffset returns the byte offset of toc[i] within the mapping.
func tocOffset(i int) int {
	return offTOC + i*4
}

// infoOffset returns the byte offset of the i-th PropertyInfo record
// (the i-th property added, in insertion order) within the mapping.
func infoOffset(i int) int64 {
	return int64(InfoRegionStart + i*propertyInfoSize)
}

// encodeTOC packs a name length and a byte offset from the area base into
// a single TOC descriptor, per spec: (name_length << 24) | byte_offset.
func encodeTOC(nameLen int, offset int64) uint32 {
	return uint32(nameLen)<<24 | uint32(offset)
}

// decodeTOC unpacks a TOC descriptor into a name length and byte offset.
func decodeTOC(entry uint32) (nameLen int, offset int64) {
	return int(entry >> 24), int64(entry & 0x00ffffff)
}

// validTOCEntry reports whether a decoded TOC entry is safe to follow:
// its offset must land inside the info region, with room for a full
// PropertyInfo record, and its encoded name length must not exceed what
// a record's name field can hold. The TOC is untrusted once an area has
// been attached from an external file rather than built by this
// package's own Init/Add — a corrupted entry must fail the lookup
// instead of indexing out of bounds (spec.md §9, "Offsets vs pointers").
func validTOCEntry(nameLen int, offset int64) bool {
	return offset >= InfoRegionStart &&
		offset <= AreaSize-propertyInfoSize &&
		nameLen >= 0 && nameLen < NameMax
}

// propertyInfo describes the byte layout of one PropertyInfo record within
// the info region:
//
//	name  [NameMax]byte   NUL-terminated, immutable after Add
//	serial uint32          seqlock word: (value_length<<24)|(counter<<1)|dirty
//	value [ValueMax]byte  current value, always NUL at value[len]
//
// offsets relative to the record's own base.
const (
	propNameOff   = 0
	propSerialOff = NameMax
	propValueOff  = NameMax + 4
)

// le is the byte order of the TOC entries, magic and version, and the
// set-request message. count and the serial words are accessed through
// sync/atomic (serial.go) in the host's native byte order, which matches
// le only on little-endian hosts. The mapping is never transferred
// off-device (spec.md §6.2).
var le = binary.LittleEndian
