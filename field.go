// Field definitions and the fixed-width value codec.
//
// A definition line carries one 11-character header per field:
//
//	IIIIIIIISSD
//
// where I is the 8-character item number, S the field size (two digits,
// zero-padded) and D the number of implied decimal digits. Every value line
// of the block then holds one slot of exactly S characters per field.
//
// Numbers are stored as scaled integers right-justified in their slot.
// Encoding truncates fractional digits beyond D instead of rounding, so
// 1.239 with D=2 is written as "123" and reads back as 1.23. This is the
// format's behaviour, not a precision bug.
package adis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Definition layout constants.
const (
	ItemNumberSize       = 8  // chars in an item number
	DefinitionHeaderSize = 11 // item number + 2 size digits + 1 decimal digit
	MaxFieldSize         = 99
	MaxDecimalDigits     = 9
)

// Slot fill characters.
const (
	undefinedChar = '|' // field not defined for this row
	nullChar      = '?' // field defined, value null
)

// FieldDefinition describes one fixed-width slot. It is immutable once
// constructed.
type FieldDefinition struct {
	item     string
	size     int
	decimals int
}

// NewFieldDefinition validates and returns a definition.
func NewFieldDefinition(item string, size, decimals int) (FieldDefinition, error) {
	if utf8.RuneCountInString(item) != ItemNumberSize {
		return FieldDefinition{}, fmt.Errorf("%w: item number must be %d chars, got %q", ErrInvalidDefinition, ItemNumberSize, item)
	}
	if size < 1 || size > MaxFieldSize {
		return FieldDefinition{}, fmt.Errorf("%w: item %s: field size must be between 1 and %d, got %d", ErrInvalidDefinition, item, MaxFieldSize, size)
	}
	if decimals < 0 || decimals > MaxDecimalDigits {
		return FieldDefinition{}, fmt.Errorf("%w: item %s: decimal digits must be between 0 and %d, got %d", ErrInvalidDefinition, item, MaxDecimalDigits, decimals)
	}
	return FieldDefinition{item: item, size: size, decimals: decimals}, nil
}

// ItemNumber returns the 8-character item number.
func (d FieldDefinition) ItemNumber() string { return d.item }

// FieldSize returns the slot width in characters.
func (d FieldDefinition) FieldSize() int { return d.size }

// DecimalDigits returns the number of implied fractional digits.
func (d FieldDefinition) DecimalDigits() int { return d.decimals }

func (d FieldDefinition) String() string {
	return fmt.Sprintf("%s(size=%d, decimals=%d)", d.item, d.size, d.decimals)
}

// Header returns the 11-character header used in a definition line.
func (d FieldDefinition) Header() string {
	return fmt.Sprintf("%s%02d%d", d.item, d.size, d.decimals)
}

// checkUnique rejects a layout that names the same item twice. Rows are
// keyed by item number, so a repeated item could not be told apart.
func checkUnique(defs []FieldDefinition) error {
	seen := make(map[string]int, len(defs))
	for i, d := range defs {
		if prev, ok := seen[d.item]; ok {
			return fmt.Errorf("%w: item %s repeated in fields %d and %d", ErrInvalidDefinition, d.item, prev+1, i+1)
		}
		seen[d.item] = i
	}
	return nil
}

// parseHeader decodes one 11-character header chunk.
func parseHeader(chunk []rune) (FieldDefinition, error) {
	if len(chunk) != DefinitionHeaderSize {
		return FieldDefinition{}, fmt.Errorf("%w: header must be %d chars, got %d", ErrMalformedDefinition, DefinitionHeaderSize, len(chunk))
	}
	item := string(chunk[:ItemNumberSize])
	size, err := strconv.Atoi(string(chunk[8:10]))
	if err != nil {
		return FieldDefinition{}, fmt.Errorf("%w: item %s: field size %q is not a number", ErrInvalidDefinition, item, string(chunk[8:10]))
	}
	decimals, err := strconv.Atoi(string(chunk[10:]))
	if err != nil {
		return FieldDefinition{}, fmt.Errorf("%w: item %s: decimal digits %q is not a number", ErrInvalidDefinition, item, string(chunk[10:]))
	}
	return NewFieldDefinition(item, size, decimals)
}

// Decode reads the slot for this field. raw must be exactly FieldSize
// characters, or empty when a trailing field was omitted from the line.
// ok is false when the field is undefined: the slot is empty or filled
// with '|'.
func (d FieldDefinition) Decode(raw string) (v Value, ok bool, err error) {
	n := utf8.RuneCountInString(raw)
	if n == 0 {
		return Value{}, false, nil
	}
	if n != d.size {
		return Value{}, false, fmt.Errorf("%w: item %s: expected %d chars or an empty field, got %d", ErrFieldLengthMismatch, d.item, d.size, n)
	}
	if filled(raw, undefinedChar) {
		return Value{}, false, nil
	}
	if filled(raw, nullChar) {
		return Null(d.item), true, nil
	}
	if d.decimals == 0 {
		return Text(d.item, raw), true, nil
	}

	num, err := parseScaled(raw, d.decimals)
	if err != nil {
		return Value{}, false, fmt.Errorf("%w: item %s: %q", ErrInvalidNumber, d.item, raw)
	}
	return Number(d.item, num), true, nil
}

// Undefined returns the slot for a field that is not defined in a row.
func (d FieldDefinition) Undefined() string {
	return strings.Repeat(string(undefinedChar), d.size)
}

// Encode renders v into a slot of exactly FieldSize characters.
func (d FieldDefinition) Encode(v Value) (string, error) {
	switch v.Kind {
	case KindNull:
		return strings.Repeat(string(nullChar), d.size), nil

	case KindText:
		n := utf8.RuneCountInString(v.Text)
		if n > d.size {
			return "", fmt.Errorf("%w: item %s: %q is %d chars, field holds %d", ErrValueTooLong, d.item, v.Text, n, d.size)
		}
		return v.Text + strings.Repeat(" ", d.size-n), nil

	case KindNumber:
		digits, err := scale(v.Number, d.decimals)
		if err != nil {
			return "", fmt.Errorf("%w: item %s: %w", ErrInvalidNumber, d.item, err)
		}
		if len(digits) > d.size {
			return "", fmt.Errorf("%w: item %s: %v renders as %d chars, field holds %d", ErrValueTooLarge, d.item, v.Number, len(digits), d.size)
		}
		return strings.Repeat(" ", d.size-len(digits)) + digits, nil

	default:
		return "", fmt.Errorf("%w: item %s: unknown value kind %s", ErrInvalidDataRow, d.item, v.Kind)
	}
}

// filled reports whether s is non-empty and consists only of c.
func filled(s string, c rune) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r != c {
			return false
		}
	}
	return true
}

// parseScaled parses a padded integer slot and shifts it right by
// decimals places. Spaces anywhere in the slot are padding.
func parseScaled(raw string, decimals int) (float64, error) {
	digits := strings.ReplaceAll(raw, " ", "")
	if !integer(digits) {
		return 0, strconv.ErrSyntax
	}
	var n float64
	if i, err := strconv.ParseInt(digits, 10, 64); err == nil {
		n = float64(i)
	} else {
		// Wider than int64; precision is bounded by float64 either way.
		f, err := strconv.ParseFloat(digits, 64)
		if err != nil {
			return 0, err
		}
		n = f
	}
	return n / math.Pow10(decimals), nil
}

// integer reports whether s is an optionally signed run of ASCII digits.
func integer(s string) bool {
	if s != "" && (s[0] == '-' || s[0] == '+') {
		s = s[1:]
	}
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// scale renders n with exactly decimals fractional digits and drops the
// decimal point. Excess fractional digits are truncated, never rounded.
func scale(n float64, decimals int) (string, error) {
	if math.IsNaN(n) || math.IsInf(n, 0) {
		return "", fmt.Errorf("%v has no fixed-point form", n)
	}
	if n == 0 {
		n = 0 // drop the sign of -0
	}
	text := strconv.FormatFloat(n, 'f', -1, 64)
	whole, frac, _ := strings.Cut(text, ".")
	if len(frac) > decimals {
		frac = frac[:decimals]
	} else {
		frac += strings.Repeat("0", decimals-len(frac))
	}
	return whole + frac, nil
}
