package sysprop

import (
	"fmt"
	"sync"
	"testing"
	"time"
)

// TestWaitAnyObservesAdd mirrors the original's "wait" test: wait_any
// must return once an Add has bumped the header serial.
func TestWaitAnyObservesAdd(t *testing.T) {
	a := openTestArea(t, Config{})
	prev := a.Serial()

	var wg sync.WaitGroup
	wg.Go(func() {
		time.Sleep(5 * time.Millisecond)
		must(t, a.Add("property", "value1"))
	})

	got := a.WaitAny(prev)
	wg.Wait()
	if got == prev {
		t.Error("WaitAny returned without observing the Add")
	}
}

// TestRefWaitObservesUpdate verifies that Ref.Wait unblocks exactly when
// the record it was called on is updated, not on an unrelated Add.
func TestRefWaitObservesUpdate(t *testing.T) {
	a := openTestArea(t, Config{})
	must(t, a.Add("property", "value1"))
	ref, err := a.Find("property")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	done := make(chan struct{})
	go func() {
		ref.Wait()
		close(done)
	}()

	time.Sleep(2 * time.Millisecond)
	must(t, a.Add("other_property", "value2")) // unrelated record
	select {
	case <-done:
		t.Fatal("Wait returned after an unrelated Add")
	case <-time.After(10 * time.Millisecond):
	}

	must(t, a.Update(ref, "value2"))
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Wait did not return after Update")
	}
}

// TestConcurrentReadersDuringUpdate drives many concurrent Read calls
// against a record while a writer repeatedly Updates it, verifying that
// every Read returns one of the values the writer actually published —
// never a torn mix of two (spec.md invariant: the seqlock retry loop
// must reject any serial change observed mid-copy).
func TestConcurrentReadersDuringUpdate(t *testing.T) {
	a := openTestArea(t, Config{})
	must(t, a.Add("property", "v0000"))
	ref, err := a.Find("property")
	if err != nil {
		t.Fatalf("Find: %v", err)
	}

	valid := map[string]bool{}
	for i := 0; i < 50; i++ {
		valid[paddedValue5(i)] = true
	}

	stop := make(chan struct{})
	var wg sync.WaitGroup

	wg.Go(func() {
		for i := 0; i < 50; i++ {
			must(t, a.Update(ref, paddedValue5(i)))
		}
		close(stop)
	})

	for g := 0; g < 8; g++ {
		wg.Go(func() {
			out := make([]byte, ValueMax)
			for {
				select {
				case <-stop:
					return
				default:
				}
				n := ref.Read(nil, out)
				if !valid[string(out[:n])] {
					t.Errorf("Read returned unpublished value %q", out[:n])
				}
			}
		})
	}

	wg.Wait()
}

func paddedValue5(i int) string {
	return fmt.Sprintf("v%04d", i)
}
