// Line scanning.
//
// ADIS lines end in CRLF. Input may use bare LF; the CR before a line
// feed is dropped and blank lines are skipped. Output always uses CRLF.
package adis

import (
	"bufio"
	"fmt"
	"io"
)

// MaxLineSize bounds a single input line.
const MaxLineSize = 1 << 20

const crlf = "\r\n"

// Delimiter lines written between and after logical files.
const (
	endOfLogicalFile  = "EN" + crlf
	physicalEndOfFile = "ZN" + crlf
)

// scanLines calls fn with each non-blank line of r and its 1-based line
// number. Scanning stops at the first error fn returns.
func scanLines(r io.Reader, fn func(n int, text string) error) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), MaxLineSize)

	n := 0
	for scanner.Scan() {
		n++
		text := scanner.Text() // ScanLines drops the CR of a CRLF
		if text == "" {
			continue
		}
		if err := fn(n, text); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("line %d: %w", n+1, err)
	}
	return nil
}
