// Document fingerprints.
//
// A fingerprint is a 16 hex character hash of a document's dumped ADIS
// text. Two documents that dump to the same bytes share a fingerprint, so
// comment lines and the line endings of the input do not affect it. Three
// algorithms are supported.
package adis

import (
	"fmt"
	"hash/fnv"

	"github.com/zeebo/xxh3"
	"golang.org/x/crypto/blake2b"
)

// Hash algorithm constants.
const (
	AlgXXHash3 = 1 // Default, fastest
	AlgFNV1a   = 2 // No external dependencies
	AlgBlake2b = 3 // Best distribution
)

// digest returns data's 16 hex character hash under alg. Zero selects
// AlgXXHash3.
func digest(data []byte, alg int) (string, error) {
	switch alg {
	case 0, AlgXXHash3:
		return fmt.Sprintf("%016x", xxh3.Hash(data)), nil
	case AlgFNV1a:
		h := fnv.New64a()
		h.Write(data)
		return fmt.Sprintf("%016x", h.Sum64()), nil
	case AlgBlake2b:
		h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
		h.Write(data)
		return fmt.Sprintf("%016x", h.Sum(nil)), nil
	default:
		return "", fmt.Errorf("%w: %d", ErrUnknownAlgorithm, alg)
	}
}

// Fingerprint hashes the document's dumped text.
func (d *Document) Fingerprint(alg int) (string, error) {
	text, err := d.Dump()
	if err != nil {
		return "", err
	}
	return digest([]byte(text), alg)
}
