//go:build unix

// Area lifecycle: init, attach, and the dummy area a caller holds before
// either succeeds (spec.md C5, §4.5).
//
// Limited to unix builds: both the ownership check (fstat uid/gid/mode)
// and the futex backend this area relies on are POSIX primitives with no
// Windows equivalent the teacher's lock_windows.go style could be
// adapted from (see DESIGN.md).
package sysprop

import (
	"fmt"
	"os"
	"strconv"
	"sync"
	"sync/atomic"
)

// PropFilename is the fixed backing-file path attach tries first.
const PropFilename = "/dev/__properties__"

// envPropertyWorkspace is the legacy fallback environment variable: an
// integer file descriptor for the area, honored only when opening
// PropFilename fails with exactly "not found" (spec.md §4.5 rule 2).
const envPropertyWorkspace = "ANDROID_PROPERTY_WORKSPACE"

// Config holds the zero-value-safe construction options for an Area.
// Grounded on the teacher's Config struct (db.go): a plain struct, no
// config file, no env parsing beyond the one legacy variable the spec
// itself names.
type Config struct {
	// BloomAlgorithm selects the hash family used by the client-side
	// negative-lookup accelerator (see bloom.go/hash.go). Zero value
	// selects AlgXXHash3.
	BloomAlgorithm int
	// DisableBloom turns off the accelerator, falling back to a pure
	// linear TOC scan on every Find. Tests that must observe the raw C2
	// protocol set this.
	DisableBloom bool
}

// Area is a handle to a system property store: either a live mapping
// installed by Init or Attach, or the dummy area New returns before
// either succeeds.
//
// New never returns a nil pointer — a caller that queries its dummy
// area before attaching gets ErrNotFound or an empty read, never a nil
// dereference, matching spec.md §4.5's closing paragraph. Init,
// CreateArea and Attach return a nil *Area together with their error.
type Area struct {
	mem   []byte
	bloom *bloomFilter
	cfg   Config

	// writeMu serializes Add/Update against each other. It does not (and
	// cannot) serialize against other processes holding the same mapping
	// read-write — single-writer discipline is enforced externally, by
	// file permissions, not by this lock (spec.md §9).
	writeMu sync.Mutex

	// bloomMu guards reconcileBloom against concurrent callers of Find;
	// bloomSynced is the count (spec.md §3.2) already folded into bloom,
	// so a Find on a handle that never itself called Add still sees
	// names another process added after this handle was constructed
	// (see reconcileBloom in bloom.go).
	bloomMu     sync.Mutex
	bloomSynced atomic.Uint32

	dummy bool

	// file and ownsFD track the backing file CreateArea opened, so Close
	// can release it. Attach sets neither: it closes a fixed-path
	// descriptor itself and leaves one from the environment fallback
	// open, per spec.md §4.5 rule 7.
	file   *os.File
	ownsFD bool
}

// dummyMem backs every dummy Area: a single zeroed header whose count
// and serial both read as zero, so Find/Foreach/Get on an unattached
// Area behave exactly as they would on a real, empty area.
var dummyMem = make([]byte, InfoRegionStart)

// New returns the dummy area described in spec.md §4.5's closing
// paragraph: count()==0, every Find a safe miss, no backing mapping.
// Callers hold this value until Attach (or, for the writer, Init)
// replaces it with a live area.
func New(cfg Config) *Area {
	return &Area{mem: dummyMem, cfg: cfg, dummy: true}
}

// Init installs mem as the process-wide area: it zeroes the region,
// stamps magic and version, and returns a writable Area. mem must be at
// least AreaSize bytes, typically obtained by mmapping a backing file
// PROT_READ|PROT_WRITE, MAP_SHARED.
//
// Init is idempotent in the sense that calling it again on the same
// memory reinitializes it from scratch; it is not safe to call with
// live readers already attached (spec.md §4.5).
func Init(mem []byte, cfg Config) (*Area, error) {
	if len(mem) < AreaSize {
		return nil, fmt.Errorf("%w: area too small: %d bytes", ErrInvalid, len(mem))
	}
	clear(mem)

	a := &Area{mem: mem, cfg: cfg}
	a.stampHeader()
	if !cfg.DisableBloom {
		a.bloom = newBloomFilter(cfg.BloomAlgorithm)
	}
	return a, nil
}

// CreateArea creates (or truncates) the backing file at path, maps it
// read-write, and installs a fresh area via Init. This is the writer-side
// counterpart to Attach — only the privileged service that owns path
// calls it.
func CreateArea(path string, cfg Config) (*Area, error) {
	f, err := createBackingFile(path)
	if err != nil {
		return nil, err
	}

	mem, err := mmapReadWrite(int(f.Fd()), AreaSize)
	if err != nil {
		f.Close()
		return nil, err
	}

	a, err := Init(mem, cfg)
	if err != nil {
		munmap(mem)
		f.Close()
		return nil, err
	}
	a.file = f
	a.ownsFD = true
	return a, nil
}

// Attach resolves the area following spec.md §4.5 exactly:
//
//  1. open PropFilename read-only, refusing a trailing symlink;
//  2. if and only if that open fails with file-not-found, fall back to
//     the descriptor named by envPropertyWorkspace;
//  3. fstat the descriptor and reject unless owned by uid 0, gid 0, with
//     no group- or other-write bit set;
//  4. mmap the full file length, read-only, shared;
//  5. validate magic and version, unmapping and failing on mismatch;
//  6. install the mapping;
//  7. close the descriptor if it came from the fixed path (the mapping
//     keeps the pages alive); leave it open if it came from the
//     environment, per the legacy contract.
func Attach(path string, cfg Config) (*Area, error) {
	if path == "" {
		path = PropFilename
	}

	fd, fromEnv, err := openAreaDescriptor(path)
	if err != nil {
		return nil, err
	}

	size, err := checkOwnership(fd)
	if err != nil {
		if !fromEnv {
			unixClose(fd)
		}
		return nil, err
	}

	mem, err := mmapReadOnly(fd, size)
	if err != nil {
		if !fromEnv {
			unixClose(fd)
		}
		return nil, err
	}

	a := &Area{mem: mem, cfg: cfg}
	if err := a.validateHeader(); err != nil {
		munmap(mem)
		if !fromEnv {
			unixClose(fd)
		}
		return nil, err
	}

	if !cfg.DisableBloom {
		a.bloom = newBloomFilter(cfg.BloomAlgorithm)
		a.Foreach(func(r Ref) bool {
			a.bloom.Add(r.Name())
			return true
		})
		a.bloomSynced.Store(a.count())
	}

	if fromEnv {
		a.ownsFD = false
	} else {
		unixClose(fd)
	}
	return a, nil
}

// openAreaDescriptor implements rules 1–2 of Attach: try the fixed path
// first, and only fall back to the legacy environment variable on an
// exact "not found" error — any other failure (permission denied, I/O
// error) is returned as-is, since accepting it here would let an
// attacker induce the fallback.
func openAreaDescriptor(path string) (fd int, fromEnv bool, err error) {
	fd, err = openNoFollow(path)
	if err == nil {
		return fd, false, nil
	}
	if !os.IsNotExist(err) {
		return -1, false, fmt.Errorf("%w: open %s: %w", ErrIOFailure, path, err)
	}

	raw, ok := os.LookupEnv(envPropertyWorkspace)
	if !ok {
		return -1, false, fmt.Errorf("%w: %s not found and %s not set", ErrIOFailure, path, envPropertyWorkspace)
	}
	envFD, convErr := strconv.Atoi(raw)
	if convErr != nil {
		return -1, false, fmt.Errorf("%w: malformed %s", ErrInvalid, envPropertyWorkspace)
	}
	return envFD, true, nil
}

// Close releases the resources held by a live area. It is a no-op on a
// dummy area. After Close, Find, Add and Update return ErrClosed; calling
// any other method is undefined, per the same discipline the teacher
// applies to a closed db.go handle.
func (a *Area) Close() error {
	if a.dummy || a.mem == nil {
		return nil
	}
	err := munmap(a.mem)
	a.mem = nil
	if a.file != nil {
		if cerr := a.file.Close(); err == nil {
			err = cerr
		}
	} else if a.ownsFD {
		// No descriptor to release here: only CreateArea sets ownsFD, and
		// it also sets file. A descriptor from the environment fallback
		// is never recorded on the Area and stays open (spec.md §4.5
		// rule 7).
	}
	return err
}
