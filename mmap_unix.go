//go:build unix

// Low-level mmap plumbing for the area lifecycle (spec.md C5, §4.5).
package sysprop

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// openNoFollow opens path read-only, refusing to follow a trailing
// symlink (spec.md §4.5 step 1).
func openNoFollow(path string) (int, error) {
	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NOFOLLOW, 0)
	if err != nil {
		return -1, err
	}
	return fd, nil
}

// checkOwnership enforces spec.md §4.5 step 3: the descriptor must be
// owned by uid 0, gid 0, and must not be group- or other-writable.
func checkOwnership(fd int) (size int64, err error) {
	var st unix.Stat_t
	if err := unix.Fstat(fd, &st); err != nil {
		return 0, fmt.Errorf("%w: fstat: %w", ErrIOFailure, err)
	}
	if st.Uid != 0 || st.Gid != 0 {
		return 0, fmt.Errorf("%w: not owned by uid/gid 0", ErrBadArea)
	}
	if st.Mode&(unix.S_IWGRP|unix.S_IWOTH) != 0 {
		return 0, fmt.Errorf("%w: group/other writable", ErrBadArea)
	}
	return st.Size, nil
}

// mmapReadOnly maps the full length of fd as PROT_READ/MAP_SHARED.
func mmapReadOnly(fd int, length int64) ([]byte, error) {
	mem, err := unix.Mmap(fd, 0, int(length), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap: %w", ErrIOFailure, err)
	}
	return mem, nil
}

// mmapReadWrite maps the full length of fd as PROT_READ|PROT_WRITE,
// MAP_SHARED — used only by the writer (Init/CreateArea).
func mmapReadWrite(fd int, length int64) ([]byte, error) {
	mem, err := unix.Mmap(fd, 0, int(length), unix.PROT_READ|unix.PROT_WRITE, unix.MAP_SHARED)
	if err != nil {
		return nil, fmt.Errorf("%w: mmap: %w", ErrIOFailure, err)
	}
	return mem, nil
}

func munmap(mem []byte) error {
	return unix.Munmap(mem)
}

func unixClose(fd int) error {
	return unix.Close(fd)
}

// createBackingFile creates (or truncates) the area's backing file at
// path, sized to AreaSize, and returns a read-write *os.File. Used by the
// writer side of the area lifecycle; readers never create the file.
func createBackingFile(path string) (*os.File, error) {
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE, 0644)
	if err != nil {
		return nil, fmt.Errorf("%w: create: %w", ErrIOFailure, err)
	}
	if err := f.Truncate(AreaSize); err != nil {
		f.Close()
		return nil, fmt.Errorf("%w: truncate: %w", ErrIOFailure, err)
	}
	return f, nil
}
