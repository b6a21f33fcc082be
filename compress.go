// Compressed ADIS payloads.
//
// Large exports are stored and shipped as Zstd frames. ParseCompressed
// accepts a frame holding ADIS text; IsCompressed tells a frame apart from
// plain text or JSON by its magic number, so callers can accept either.
package adis

import (
	"bytes"
	"fmt"

	"github.com/klauspost/compress/zstd"
)

// Shared encoder/decoder, both safe for concurrent use. Construction is
// expensive, so they are built once.
var (
	zstdEncoder, _ = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	zstdDecoder, _ = zstd.NewReader(nil)
)

// zstdMagic opens every Zstd frame.
var zstdMagic = []byte{0x28, 0xb5, 0x2f, 0xfd}

// IsCompressed reports whether data starts with a Zstd frame header.
func IsCompressed(data []byte) bool {
	return bytes.HasPrefix(data, zstdMagic)
}

func compress(data []byte) []byte {
	return zstdEncoder.EncodeAll(data, make([]byte, 0, len(data)/4))
}

// Decompress returns the contents of a Zstd frame.
func Decompress(data []byte) ([]byte, error) {
	if !IsCompressed(data) {
		return nil, fmt.Errorf("%w: missing zstd frame header", ErrDecompress)
	}
	out, err := zstdDecoder.DecodeAll(data, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: zstd: %w", ErrDecompress, err)
	}
	return out, nil
}

// DumpCompressed returns the document's ADIS text as a Zstd frame.
func (d *Document) DumpCompressed() ([]byte, error) {
	text, err := d.Dump()
	if err != nil {
		return nil, err
	}
	return compress([]byte(text)), nil
}

// ParseCompressed decompresses a Zstd frame and parses the ADIS text in it.
func ParseCompressed(data []byte) (*Document, error) {
	text, err := Decompress(data)
	if err != nil {
		return nil, err
	}
	return Parse(string(text))
}
