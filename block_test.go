// Block assembly tests.
//
// A block pairs one definition line with its value lines. The interesting
// cases are the value payload lengths: a payload must cover every field or
// every field but the last, and nothing in between.
package adis

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// twoFields is a definition line with a 5-char text field and a 5-char
// number field with two decimals.
const twoFields = "DN1234560000000105000000002052"

func classifyAll(t *testing.T, raws ...string) []Line {
	t.Helper()
	lines := make([]Line, 0, len(raws))
	for _, raw := range raws {
		l, err := Classify(raw)
		if err != nil {
			t.Fatalf("Classify(%q): %v", raw, err)
		}
		lines = append(lines, l)
	}
	return lines
}

func TestAssembleBlock(t *testing.T) {
	b, err := AssembleBlock(classifyAll(t,
		twoFields,
		"VN123456abc   1234",
		"CNignored",
		"VN123456?????|||||",
		"VN123456xy   ",
	))
	if err != nil {
		t.Fatal(err)
	}

	want := &Block{
		Entity: "123456",
		Status: StatusNormal,
		Definitions: []FieldDefinition{
			mustDef(t, "00000001", 5, 0),
			mustDef(t, "00000002", 5, 2),
		},
		Rows: []Row{
			{Text("00000001", "abc  "), Number("00000002", 12.34)},
			{Null("00000001")},
			{Text("00000001", "xy   ")},
		},
	}
	if diff := cmp.Diff(want, b, cmp.AllowUnexported(FieldDefinition{})); diff != "" {
		t.Errorf("block mismatch (-want +got):\n%s", diff)
	}
}

// TestValueLineLengths walks the payload lengths around the two legal
// values. With widths 5+5, only 10 (every field) and 5 (last field
// omitted) are accepted.
func TestValueLineLengths(t *testing.T) {
	tests := []struct {
		payload string
		ok      bool
	}{
		{"", false},
		{"abc", false},
		{"abcd", false},
		{"abcde", true},
		{"abcde1", false},
		{"abcde1234", false},
		{"abcde12345", true},
		{"abcde123456", false},
	}
	for _, tt := range tests {
		_, err := AssembleBlock(classifyAll(t, twoFields, "VN123456"+tt.payload))
		if tt.ok && err != nil {
			t.Errorf("payload %q: %v", tt.payload, err)
		}
		if !tt.ok && !errors.Is(err, ErrValueLineLengthMismatch) {
			t.Errorf("payload %q: got %v, want ErrValueLineLengthMismatch", tt.payload, err)
		}
	}
}

// TestEmptyLayoutRows verifies that a block with no fields accepts empty
// value lines and produces empty rows.
func TestEmptyLayoutRows(t *testing.T) {
	b, err := AssembleBlock(classifyAll(t, "DN123456", "VN123456"))
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Rows) != 1 || len(b.Rows[0]) != 0 {
		t.Errorf("rows = %v, want one empty row", b.Rows)
	}
}

func TestAssembleBlockErrors(t *testing.T) {
	tests := []struct {
		name  string
		lines []string
		want  error
	}{
		{"no lines", nil, ErrMissingDefinition},
		{"only comments", []string{"CNa", "CNb"}, ErrMissingDefinition},
		{"value first", []string{"VN123456abcde", twoFields}, ErrValueBeforeDefinition},
		{"two definitions", []string{twoFields, twoFields}, ErrUnexpectedDefinition},
		{"bad number", []string{twoFields, "VN123456abcde12x45"}, ErrInvalidNumber},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := AssembleBlock(classifyAll(t, tt.lines...))
			if !errors.Is(err, tt.want) {
				t.Errorf("got %v, want %v", err, tt.want)
			}
		})
	}
}

// TestValueLineEntityIgnored verifies that the entity and status repeated
// on value lines are not checked, and that dumping rewrites them with the
// block's own.
func TestValueLineEntityIgnored(t *testing.T) {
	b, err := AssembleBlock(classifyAll(t, twoFields, "VS999999abcde12345"))
	if err != nil {
		t.Fatal(err)
	}
	got, err := b.Dump()
	if err != nil {
		t.Fatal(err)
	}
	want := twoFields + "\r\nVN123456abcde12345\r\n"
	if got != want {
		t.Errorf("Dump() = %q, want %q", got, want)
	}
}

// TestBlockDump checks fill characters on output: fields missing from a
// row are '|'-filled and nulls are '?'-filled. Values for items the block
// does not define are dropped.
func TestBlockDump(t *testing.T) {
	b, err := NewBlock("123456", StatusNormal, []FieldDefinition{
		mustDef(t, "00000001", 5, 0),
		mustDef(t, "00000002", 5, 2),
	}, []Row{
		{Text("00000001", "ab"), Number("00000002", 1.239)},
		{Null("00000002")},
		{Text("99999999", "stray")},
	})
	if err != nil {
		t.Fatal(err)
	}

	got, err := b.Dump()
	if err != nil {
		t.Fatal(err)
	}
	want := twoFields + "\r\n" +
		"VN123456ab     123\r\n" +
		"VN123456|||||?????\r\n" +
		"VN123456||||||||||\r\n"
	if got != want {
		t.Errorf("Dump() =\n%q\nwant\n%q", got, want)
	}
}

func TestBlockDumpError(t *testing.T) {
	b, _ := NewBlock("123456", StatusNormal, []FieldDefinition{
		mustDef(t, "00000001", 3, 0),
	}, []Row{{Text("00000001", "toolong")}})
	if _, err := b.Dump(); !errors.Is(err, ErrValueTooLong) {
		t.Errorf("got %v, want ErrValueTooLong", err)
	}
}

func TestNewBlockValidation(t *testing.T) {
	if _, err := NewBlock("12345", StatusNormal, nil, nil); !errors.Is(err, ErrInvalidEntityNumber) {
		t.Errorf("short entity: got %v, want ErrInvalidEntityNumber", err)
	}
	if _, err := NewBlock("123456", Status('X'), nil, nil); !errors.Is(err, ErrUnknownStatus) {
		t.Errorf("bad status: got %v, want ErrUnknownStatus", err)
	}
	d := mustDef(t, "00000001", 5, 0)
	if _, err := NewBlock("123456", StatusNormal, []FieldDefinition{d, d}, nil); !errors.Is(err, ErrInvalidDefinition) {
		t.Errorf("repeated item: got %v, want ErrInvalidDefinition", err)
	}
}
