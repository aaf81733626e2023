// Zstd compression for the diagnostic snapshot dump (dump.go). Grounded
// on the teacher's per-document zstd pipeline in compress.go, simplified
// here to plain compressed bytes since a dump is written whole to a
// writer — there is no JSON-string-escaping constraint forcing an
// ascii85 detour the way there was for an inline per-record field.
package sysprop

import "github.com/klauspost/compress/zstd"

// Shared encoder/decoder, both documented safe for concurrent use.
// Allocated once since construction (internal state tables) is expensive
// relative to compressing a dump.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedFastest))
	zstdDecoder, _ = zstd.NewReader(nil)
)

func zstdCompress(data []byte) []byte {
	return zstdEncoder.EncodeAll(data, nil)
}

func zstdDecompress(data []byte) ([]byte, error) {
	return zstdDecoder.DecodeAll(data, nil)
}
