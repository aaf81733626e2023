// Hash algorithms for the client-side bloom accelerator (bloom.go). These
// never touch the wire format — a property's identity is always its name,
// compared byte-for-byte in find.go — they only pick which hash family
// seeds the in-process negative-lookup filter built at Attach time.
package sysprop

import (
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Bloom hash algorithm constants, selected via Config.BloomAlgorithm.
const (
	AlgXXHash3 = 1 // default: fastest, best distribution for short ASCII names
	AlgFNV1a   = 2 // no external dependency
	AlgBlake2b = 3 // widest avalanche, useful when names are adversarial
)

// bloomHash64 returns a 64-bit digest of name using the selected algorithm.
func bloomHash64(name string, alg int) uint64 {
	switch alg {
	case AlgFNV1a:
		h := fnv.New64a()
		h.Write([]byte(name))
		return h.Sum64()
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		h.Write([]byte(name))
		var out [8]byte
		copy(out[:], h.Sum(nil))
		return le.Uint64(out[:])
	default:
		return xxh3.HashString(name)
	}
}
