// Seqlock read protocol for a single PropertyInfo record (spec.md §4.2).
package sysprop

// Read performs the seqlock read loop: it copies the record's current
// value (and, if outName is non-nil, its name) into outValue and returns
// the value length. outValue must have capacity ValueMax.
//
// The loop:
//  1. loads the record's serial (acquire);
//  2. if the dirty bit is set, blocks on the record's futex until the
//     writer publishes a new serial, then retries from 1;
//  3. copies length+1 bytes into outValue;
//  4. reloads the serial; if it changed, retries from 1 — the value may
//     have been torn by a concurrent Update.
//
// This never allocates and never takes a lock; it is safe to call from
// any number of goroutines in any number of processes concurrently with
// a writer's Update.
func (r Ref) Read(outName []byte, outValue []byte) int {
	for {
		s := loadSerialAt(r.area.mem, r.serialOffset())
		for serialDirty(s) {
			r.area.futexWait(r.serialOffset(), s)
			s = loadSerialAt(r.area.mem, r.serialOffset())
		}

		length := serialValueLen(s)
		r.readValue(length, outValue[:length+1])

		s2 := loadSerialAt(r.area.mem, r.serialOffset())
		if s2 != s {
			continue
		}

		if outName != nil {
			copy(outName, r.nameBytes())
		}
		return length
	}
}

// Serial returns the record's raw serial word, for callers building their
// own higher-level wait logic on top of Wait/WaitAny.
func (r Ref) Serial() uint32 {
	return loadSerialAt(r.area.mem, r.serialOffset())
}

// Get is a convenience wrapper: Find then Read. On a miss it writes a
// NUL byte to outValue[0] and returns 0, matching spec.md §4.2 — a
// missing property is not an error at this layer.
func (a *Area) Get(name string, outValue []byte) int {
	ref, err := a.Find(name)
	if err != nil {
		if len(outValue) > 0 {
			outValue[0] = 0
		}
		return 0
	}
	return ref.Read(nil, outValue)
}
