// Zstd round-trip tests for the diagnostic dump pipeline (compress.go).
package sysprop

import (
	"bytes"
	"strings"
	"testing"
)

func TestZstdRoundTrip(t *testing.T) {
	cases := [][]byte{
		nil,
		[]byte(""),
		[]byte("value1"),
		[]byte(strings.Repeat("x", 64*1024)),
		[]byte("unicode: éè中文"),
		{0x00, 0x01, 0xff, 0xfe, 0x00},
	}
	for i, in := range cases {
		compressed := zstdCompress(in)
		out, err := zstdDecompress(compressed)
		if err != nil {
			t.Fatalf("case %d: decompress: %v", i, err)
		}
		if !bytes.Equal(out, in) {
			t.Fatalf("case %d: round trip mismatch: got %v want %v", i, out, in)
		}
	}
}

func TestZstdDecompressRejectsGarbage(t *testing.T) {
	if _, err := zstdDecompress([]byte("not a zstd frame")); err == nil {
		t.Fatal("decompress of garbage succeeded")
	}
}
