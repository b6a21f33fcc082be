package adis

import (
	"bufio"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func TestScanLines(t *testing.T) {
	var got []string
	var nums []int
	err := scanLines(strings.NewReader("a\r\n\r\nb\n\nc"), func(n int, text string) error {
		nums = append(nums, n)
		got = append(got, text)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(got, ",") != "a,b,c" {
		t.Errorf("lines = %q", got)
	}
	if len(nums) != 3 || nums[0] != 1 || nums[1] != 3 || nums[2] != 5 {
		t.Errorf("line numbers = %v, want [1 3 5]", nums)
	}
}

// TestParseReader verifies that reading in small chunks makes no
// difference to the parsed document.
func TestParseReader(t *testing.T) {
	d, err := ParseReader(iotest.OneByteReader(strings.NewReader(sample)))
	if err != nil {
		t.Fatal(err)
	}
	if got := mustDump(t, d); got != sample {
		t.Errorf("Dump() =\n%q\nwant\n%q", got, sample)
	}
}

func TestParseReaderLineTooLong(t *testing.T) {
	text := "CN" + strings.Repeat("x", MaxLineSize) + "\r\nZN\r\n"
	_, err := ParseReader(strings.NewReader(text))
	if !errors.Is(err, bufio.ErrTooLong) {
		t.Errorf("got %v, want bufio.ErrTooLong", err)
	}
}

func TestParseReaderReadError(t *testing.T) {
	boom := errors.New("boom")
	_, err := ParseReader(iotest.ErrReader(boom))
	if !errors.Is(err, boom) {
		t.Errorf("got %v, want read error", err)
	}
}
