//go:build linux

// Death test for the read-only-mapping fault spec.md §8.4 scenario 6
// requires: a process that attached read-only and then writes into the
// mapping must crash (SIGSEGV/SIGBUS), never silently succeed or corrupt
// memory. A real fault can't be recovered from inside the process that
// takes it, so this re-execs the test binary as a child, the same
// os/exec pattern the original's properties_DeathTest.read_only exercises
// via a forked, ASSERT_EXIT child process.
package sysprop

import (
	"os"
	"os/exec"
	"testing"
)

const deathTestHelperEnv = "SYSPROP_DEATH_TEST_HELPER"
const deathTestPathEnv = "SYSPROP_DEATH_TEST_PATH"

func TestReadOnlyMappingFaults(t *testing.T) {
	if os.Getenv(deathTestHelperEnv) == "1" {
		runReadOnlyFaultHelper()
		return
	}

	path := t.TempDir() + "/__properties__"
	writer, err := CreateArea(path, Config{})
	if err != nil {
		t.Fatalf("CreateArea: %v", err)
	}
	must(t, writer.Add("property", "value1"))
	writer.Close()

	cmd := exec.Command(os.Args[0], "-test.run=^TestReadOnlyMappingFaults$")
	cmd.Env = append(os.Environ(), deathTestHelperEnv+"=1", deathTestPathEnv+"="+path)
	out, err := cmd.CombinedOutput()

	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		t.Fatalf("helper process did not fail as expected (err=%v); output:\n%s", err, out)
	}
	if exitErr.Success() {
		t.Fatalf("helper process exited successfully, want a fatal signal; output:\n%s", out)
	}
}

// runReadOnlyFaultHelper attaches read-only and writes directly into the
// mapping, the way a buggy writer sharing its area with a reader's
// mapping would — this must fault. It only ever runs inside the re-exec'd
// child TestReadOnlyMappingFaults spawns above.
func runReadOnlyFaultHelper() {
	a, err := Attach(os.Getenv(deathTestPathEnv), Config{})
	if err != nil {
		os.Exit(2)
	}
	a.mem[0] = 0xff // must fault: a.mem is PROT_READ-only
	os.Exit(0)      // unreachable if the mapping is truly read-only
}
