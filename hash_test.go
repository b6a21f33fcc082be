// Fingerprint tests.
//
// A fingerprint identifies a document by its canonical text, so two
// inputs that only differ in line endings, blank lines or comments must
// share one, while any change to a value must not.
package adis

import (
	"errors"
	"regexp"
	"strings"
	"testing"
)

var hexPattern = regexp.MustCompile(`^[0-9a-f]{16}$`)

func TestFingerprintFormat(t *testing.T) {
	d := mustParse(t, sample)
	for _, alg := range []int{AlgXXHash3, AlgFNV1a, AlgBlake2b} {
		got, err := d.Fingerprint(alg)
		if err != nil {
			t.Fatalf("alg %d: %v", alg, err)
		}
		if !hexPattern.MatchString(got) {
			t.Errorf("alg %d did not produce 16 hex chars: %q", alg, got)
		}
	}
}

// TestFingerprintDefault verifies that the zero algorithm is xxHash3.
func TestFingerprintDefault(t *testing.T) {
	d := mustParse(t, sample)
	zero, _ := d.Fingerprint(0)
	xx, _ := d.Fingerprint(AlgXXHash3)
	if zero != xx {
		t.Errorf("Fingerprint(0) = %q, Fingerprint(AlgXXHash3) = %q", zero, xx)
	}
}

func TestFingerprintAlgorithmsDiffer(t *testing.T) {
	d := mustParse(t, sample)
	seen := map[string]int{}
	for _, alg := range []int{AlgXXHash3, AlgFNV1a, AlgBlake2b} {
		h, _ := d.Fingerprint(alg)
		if prev, ok := seen[h]; ok {
			t.Errorf("alg %d and %d produced the same fingerprint %q", prev, alg, h)
		}
		seen[h] = alg
	}
}

// TestFingerprintCanonical verifies that non-canonical input hashes the
// same as the canonical text it normalises to.
func TestFingerprintCanonical(t *testing.T) {
	want, _ := mustParse(t, sample).Fingerprint(AlgXXHash3)

	noisy := "CNexported\n" + strings.ReplaceAll(sample, "\r\n", "\n\n")
	got, err := mustParse(t, noisy).Fingerprint(AlgXXHash3)
	if err != nil {
		t.Fatal(err)
	}
	if got != want {
		t.Errorf("noisy input fingerprint %q, want %q", got, want)
	}
}

func TestFingerprintChanges(t *testing.T) {
	a, _ := mustParse(t, sample).Fingerprint(AlgXXHash3)
	b, _ := mustParse(t, strings.Replace(sample, "abc   1234", "abc   1235", 1)).Fingerprint(AlgXXHash3)
	if a == b {
		t.Errorf("different documents share fingerprint %q", a)
	}
}

func TestFingerprintUnknownAlgorithm(t *testing.T) {
	_, err := mustParse(t, sample).Fingerprint(99)
	if !errors.Is(err, ErrUnknownAlgorithm) {
		t.Errorf("got %v, want ErrUnknownAlgorithm", err)
	}
}
