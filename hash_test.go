// Hash algorithm tests for the bloom accelerator (hash.go). Each
// algorithm must be deterministic and must not collapse distinct inputs
// onto the same digest for the small sample sizes these tests use.
package sysprop

import "testing"

func TestBloomHash64Deterministic(t *testing.T) {
	for _, alg := range []int{AlgXXHash3, AlgFNV1a, AlgBlake2b} {
		a := bloomHash64("property", alg)
		b := bloomHash64("property", alg)
		if a != b {
			t.Errorf("alg %d: bloomHash64 not deterministic: %x != %x", alg, a, b)
		}
	}
}

func TestBloomHash64Distinguishes(t *testing.T) {
	for _, alg := range []int{AlgXXHash3, AlgFNV1a, AlgBlake2b} {
		a := bloomHash64("property", alg)
		b := bloomHash64("other_property", alg)
		if a == b {
			t.Errorf("alg %d: collision between distinct names", alg)
		}
	}
}

func TestBloomHash64DefaultsToXXHash3(t *testing.T) {
	b := newBloomFilter(0)
	if b.alg != AlgXXHash3 {
		t.Errorf("alg zero value = %d, want AlgXXHash3", b.alg)
	}
	if got, want := bloomHash64("property", 0), bloomHash64("property", AlgXXHash3); got != want {
		t.Errorf("bloomHash64(alg 0) = %x, want the AlgXXHash3 digest %x", got, want)
	}
}
