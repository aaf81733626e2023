// Diagnostic snapshot dump (SPEC_FULL.md §11.2). Area.Dump walks Foreach
// and writes a zstd-compressed JSON array of every current property —
// explicitly a read-only export for bug-report-style tooling, not a
// persistence mechanism: nothing in this package ever loads a dump back
// into a live Area (spec.md's Non-goals still exclude reboot
// persistence).
package sysprop

import (
	"bytes"
	"io"

	json "github.com/goccy/go-json"
)

// DumpEntry is one property's state as captured by Dump.
type DumpEntry struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Serial uint32 `json:"serial"`
}

// Dump writes every current property to w as zstd-compressed JSON.
func (a *Area) Dump(w io.Writer) error {
	var entries []DumpEntry
	value := make([]byte, ValueMax)

	a.Foreach(func(ref Ref) bool {
		n := ref.Read(nil, value)
		entries = append(entries, DumpEntry{
			Name:   ref.Name(),
			Value:  string(value[:n]),
			Serial: ref.Serial(),
		})
		return true
	})

	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}

	_, err = w.Write(zstdCompress(data))
	return err
}

// LoadDump reads a zstd-compressed JSON dump produced by Dump. It is a
// pure parser — the result is informational only and is never installed
// as a live area.
func LoadDump(r io.Reader) ([]DumpEntry, error) {
	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		return nil, err
	}

	data, err := zstdDecompress(buf.Bytes())
	if err != nil {
		return nil, err
	}

	var entries []DumpEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
