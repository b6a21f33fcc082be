// Decoded field values.
//
// A Value always names the item it belongs to. Its payload is one of three
// kinds: an explicit null ('?' on the wire), text, or a scaled number.
// Undefined fields ('|' on the wire) have no Value at all.
package adis

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the payload of a Value.
type Kind int

// Value kinds.
const (
	KindNull   Kind = iota // '?'-filled slot or JSON null
	KindText               // decimal_digits == 0
	KindNumber             // decimal_digits > 0, or a JSON number
)

func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindText:
		return "text"
	case KindNumber:
		return "number"
	default:
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Value is one decoded field of a data row.
type Value struct {
	Item   string  // item number of the owning definition
	Kind   Kind    // payload discriminator
	Text   string  // set when Kind == KindText, untrimmed
	Number float64 // set when Kind == KindNumber
}

// Row is one data row. Fields are in definition order; undefined fields
// are missing rather than present as nulls.
type Row []Value

// Null returns an explicit null value for item.
func Null(item string) Value {
	return Value{Item: item, Kind: KindNull}
}

// Text returns a text value for item.
func Text(item, s string) Value {
	return Value{Item: item, Kind: KindText, Text: s}
}

// Number returns a numeric value for item.
func Number(item string, n float64) Value {
	return Value{Item: item, Kind: KindNumber, Number: n}
}

// Any returns the payload as a JSON-compatible value: nil, string or
// float64. Text loses its trailing space padding unless keepPadding is
// set. Leading spaces are content: right-justified text keeps them.
func (v Value) Any(keepPadding bool) any {
	switch v.Kind {
	case KindText:
		if keepPadding {
			return v.Text
		}
		return strings.TrimRight(v.Text, " ")
	case KindNumber:
		return v.Number
	default:
		return nil
	}
}

// valueOf converts a decoded JSON value back into a Value. Only null,
// strings and numbers have an ADIS representation.
func valueOf(item string, raw any) (Value, error) {
	switch x := raw.(type) {
	case nil:
		return Null(item), nil
	case string:
		return Text(item, x), nil
	case float64:
		return Number(item, x), nil
	case int64:
		return Number(item, float64(x)), nil
	case uint64:
		return Number(item, float64(x)), nil
	default:
		return Value{}, fmt.Errorf("%w: item %s: unsupported value %v (%T)", ErrInvalidDataRow, item, raw, raw)
	}
}

func (v Value) String() string {
	switch v.Kind {
	case KindText:
		return fmt.Sprintf("%s=%q", v.Item, v.Text)
	case KindNumber:
		return fmt.Sprintf("%s=%s", v.Item, strconv.FormatFloat(v.Number, 'f', -1, 64))
	default:
		return v.Item + "=null"
	}
}

// Get returns the value for item, if the row defines it.
func (r Row) Get(item string) (Value, bool) {
	for _, v := range r {
		if v.Item == item {
			return v, true
		}
	}
	return Value{}, false
}
