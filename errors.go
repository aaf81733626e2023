package sysprop

import "errors"

// Sentinel errors returned by area operations. Callers should compare with
// errors.Is — call sites wrap these with additional context via %w.
var (
	// ErrNotFound is returned when a property name is absent from the TOC.
	ErrNotFound = errors.New("sysprop: property not found")

	// ErrInvalid is returned when a length or argument constraint is
	// violated: an empty or too-long name, a too-long value, or an empty
	// or too-long key to Set.
	ErrInvalid = errors.New("sysprop: invalid argument")

	// ErrFull is returned by Add when the area already holds MaxEntries
	// properties.
	ErrFull = errors.New("sysprop: area is full")

	// ErrBadArea is returned by Attach when the mapped file fails its
	// magic, version, ownership, or mode check.
	ErrBadArea = errors.New("sysprop: bad area")

	// ErrIOFailure wraps an underlying syscall failure (open, fstat, mmap,
	// socket, connect, send) encountered during Attach or Set.
	ErrIOFailure = errors.New("sysprop: io failure")

	// ErrClosed is returned by Find, Add and Update when called after
	// Close.
	ErrClosed = errors.New("sysprop: area is closed")
)
