// Writer protocol: in-place append (Add) and in-place value rewrite
// (Update) under seqlock discipline (spec.md C3, §4.3). Callers must be
// the sole writer attached to this area — the core assumes, but does not
// verify, single-writer discipline (spec.md §9, "Single-writer
// discipline"): a reader that attached read-only will fault on the first
// store below, by construction of the read-only mapping.
package sysprop

import "fmt"

// Add appends a new property. It fails with ErrFull if the area already
// holds MaxEntries properties, or ErrInvalid if name or value violate the
// length constraints in spec.md §4.3.
//
// Publication order is: write the record's name/value/serial, then
// publish toc[slot], then increment count, then increment the header
// serial and wake any waiters. Each step is ordered before the next so
// that a reader who observes the new count necessarily observes a
// consistent record and TOC slot (spec.md §3.3 invariant 4, §5).
func (a *Area) Add(name, value string) error {
	if a.mem == nil {
		return ErrClosed
	}
	if len(name) < 1 || len(name) >= NameMax {
		return fmt.Errorf("%w: name length", ErrInvalid)
	}
	if len(value) >= ValueMax {
		return fmt.Errorf("%w: value length", ErrInvalid)
	}

	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	slot := a.count()
	if slot >= MaxEntries {
		return ErrFull
	}

	ref := Ref{area: a, off: infoOffset(int(slot))}
	ref.writeName(name)
	ref.writeValue(value)
	// Dirty=0, counter=0: this slot has never been observable by a
	// reader yet, so there is nothing to mark dirty against.
	storeSerialAt(a.mem, ref.serialOffset(), makeSerial(len(value), 0, false))

	entryOff := tocOffset(int(slot))
	le.PutUint32(a.mem[entryOff:entryOff+4], encodeTOC(len(name), ref.off))

	a.setCount(slot + 1)
	a.bumpSerial()
	a.futexWakeAll(offSerial)

	if a.bloom != nil {
		a.bloom.Add(name)
	}

	return nil
}

// Update rewrites an existing property's value in place. It fails with
// ErrInvalid if value violates the length constraint. The seqlock
// sequence is: mark dirty, copy the new value, publish the new serial
// (length + incremented counter, dirty cleared), wake per-record
// waiters, then bump and wake on the header serial.
func (a *Area) Update(ref Ref, value string) error {
	if a.mem == nil {
		return ErrClosed
	}
	if len(value) >= ValueMax {
		return fmt.Errorf("%w: value length", ErrInvalid)
	}

	a.writeMu.Lock()
	defer a.writeMu.Unlock()

	s := loadSerialAt(a.mem, ref.serialOffset())
	storeSerialAt(a.mem, ref.serialOffset(), s|serialDirtyBit)

	ref.writeValue(value)

	counter := serialCounter(s) + 1
	storeSerialAt(a.mem, ref.serialOffset(), makeSerial(len(value), counter, false))
	a.futexWakeAll(ref.serialOffset())

	a.bumpSerial()
	a.futexWakeAll(offSerial)

	return nil
}
