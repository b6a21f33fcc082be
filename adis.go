// Documents: every logical file of one physical ADIS text.
//
// Parse classifies each line and closes the current logical file at every
// end-of-logical-file (E) or physical-end-of-file (Z/T) line. Delimiters
// are consumed, not stored. Lines after the last delimiter belong to no
// file and are not returned; two delimiters in a row produce an empty file.
//
// Dump writes files separated by "EN" lines and ends with a "ZN" line.
package adis

import (
	"fmt"
	"io"
	"strings"
)

// Options controls how decoded values are presented in the JSON mapping.
// The zero value trims the space padding of text values.
type Options struct {
	KeepPadding bool // expose text values exactly as stored in their slot
}

// Document is a parsed physical ADIS text.
type Document struct {
	Files []*File
}

func (d *Document) String() string {
	return fmt.Sprintf("document with %d files", len(d.Files))
}

// Parse builds a Document from ADIS text.
func Parse(text string) (*Document, error) {
	return ParseReader(strings.NewReader(text))
}

// ParseReader builds a Document from ADIS text read from r.
func ParseReader(r io.Reader) (*Document, error) {
	var files []*File
	var pending []Line

	err := scanLines(r, func(n int, text string) error {
		l, err := Classify(text)
		if err != nil {
			return fmt.Errorf("line %d: %w", n, err)
		}

		switch l.(type) {
		case *EndOfLogicalFileLine, *PhysicalEndOfFileLine:
			f, err := AssembleFile(pending)
			if err != nil {
				return fmt.Errorf("file %d (ends line %d): %w", len(files)+1, n, err)
			}
			files = append(files, f)
			pending = nil
		default:
			pending = append(pending, l)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return &Document{Files: files}, nil
}

// Dump returns the document as ADIS text with CRLF line endings.
func (d *Document) Dump() (string, error) {
	var sb strings.Builder
	for i, f := range d.Files {
		if i > 0 {
			sb.WriteString(endOfLogicalFile)
		}
		if err := f.dump(&sb); err != nil {
			return "", fmt.Errorf("file %d: %w", i+1, err)
		}
	}
	sb.WriteString(physicalEndOfFile)
	return sb.String(), nil
}

// Stats counts the contents of a document.
type Stats struct {
	Files  int
	Blocks int
	Rows   int
}

// Stats returns file, block and row counts.
func (d *Document) Stats() Stats {
	s := Stats{Files: len(d.Files)}
	for _, f := range d.Files {
		s.Blocks += len(f.Blocks)
		for _, b := range f.Blocks {
			s.Rows += len(b.Rows)
		}
	}
	return s
}
