//go:build unix

package sysprop

import (
	"errors"
	"os"
	"testing"
)

// TestDummyAreaIsSafe verifies the closing paragraph of the lifecycle
// contract: every query against a freshly constructed, unattached Area
// is a clean miss, never a crash.
func TestDummyAreaIsSafe(t *testing.T) {
	a := New(Config{})
	if a.count() != 0 {
		t.Fatalf("dummy area count = %d, want 0", a.count())
	}
	if _, err := a.Find("anything"); err != ErrNotFound {
		t.Errorf("Find on dummy area = %v, want ErrNotFound", err)
	}
	out := make([]byte, ValueMax)
	if n := a.Get("anything", out); n != 0 {
		t.Errorf("Get on dummy area = %d, want 0", n)
	}
	a.Foreach(func(Ref) bool {
		t.Error("Foreach invoked callback on dummy area")
		return true
	})
}

func TestInitRejectsUndersizedMemory(t *testing.T) {
	mem := make([]byte, 16)
	if _, err := Init(mem, Config{}); !errors.Is(err, ErrInvalid) {
		t.Errorf("Init(undersized) = %v, want ErrInvalid", err)
	}
}

// TestAttachRejectsUnknownPath exercises rule 2 of the attach sequence:
// a missing file with no ANDROID_PROPERTY_WORKSPACE fallback set must
// fail, never silently succeed against garbage memory.
func TestAttachRejectsUnknownPath(t *testing.T) {
	os.Unsetenv(envPropertyWorkspace)
	dir := t.TempDir()
	_, err := Attach(dir+"/does-not-exist", Config{})
	if err == nil {
		t.Fatal("Attach on a nonexistent path succeeded")
	}
}

// TestCreateAreaThenAttachRejectsOwnership verifies that an area file
// created by the current (non-root) test process — and therefore not
// owned by uid 0 — is rejected by Attach's ownership check, rather than
// trusted because the magic and version otherwise validate.
func TestCreateAreaThenAttachRejectsOwnership(t *testing.T) {
	if os.Geteuid() == 0 {
		t.Skip("running as root: ownership check cannot be exercised")
	}
	path := t.TempDir() + "/__properties__"
	writer, err := CreateArea(path, Config{})
	if err != nil {
		t.Fatalf("CreateArea: %v", err)
	}
	defer writer.Close()

	if _, err := Attach(path, Config{}); !errors.Is(err, ErrBadArea) {
		t.Errorf("Attach(non-root-owned file) = %v, want ErrBadArea", err)
	}
}
