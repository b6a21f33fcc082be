// Line classification.
//
// Every ADIS line starts with a type character and a status character:
//
//	D  definition            entity number + N field headers
//	V  value                 entity number + fixed-width payload
//	C  comment               free text
//	E  end of logical file   no payload
//	Z  physical end of file  no payload ('T' is accepted as a synonym)
//
// Classify turns one raw line into one of the concrete *Line types below.
// Line is a closed set: callers switch on the concrete type. Value lines
// keep their payload unparsed because only the owning block knows the
// field layout.
package adis

import (
	"fmt"
	"strings"
)

// LineType is the first character of a line.
type LineType byte

// Line type markers.
const (
	TypeDefinition        LineType = 'D'
	TypeValue             LineType = 'V'
	TypeComment           LineType = 'C'
	TypeEndOfLogicalFile  LineType = 'E'
	TypePhysicalEndOfFile LineType = 'Z'
	TypeTerminate         LineType = 'T' // alternative physical end of file
)

// entityEnd is the exclusive end of the entity number in D and V lines.
const entityEnd = 8

// EntityNumberSize is the length of an entity number.
const EntityNumberSize = entityEnd - 2

// Name returns a human-readable name for the line type.
func (t LineType) Name() string {
	switch t {
	case TypeDefinition:
		return "definition"
	case TypeValue:
		return "value"
	case TypeComment:
		return "comment"
	case TypeEndOfLogicalFile:
		return "end of logical file"
	case TypePhysicalEndOfFile, TypeTerminate:
		return "physical end of file"
	default:
		return fmt.Sprintf("line type %q", byte(t))
	}
}

func (t LineType) String() string {
	return string(rune(t))
}

// allows reports whether a line of type t may carry status s. Only data
// carrying lines accept every status; file delimiters must be normal.
func (t LineType) allows(s Status) bool {
	switch t {
	case TypeEndOfLogicalFile, TypePhysicalEndOfFile, TypeTerminate:
		return s == StatusNormal
	default:
		return s.Valid()
	}
}

// Line is a classified ADIS line. The concrete type is one of
// *DefinitionLine, *ValueLine, *CommentLine, *EndOfLogicalFileLine or
// *PhysicalEndOfFileLine.
type Line interface {
	Type() LineType
	Status() Status
	// String returns the line as written on the wire, without CRLF.
	String() string
	sealed()
}

type lineStatus struct {
	status Status
}

func (l lineStatus) Status() Status { return l.status }
func (lineStatus) sealed()          {}

// DefinitionLine starts a block and declares its field layout.
type DefinitionLine struct {
	lineStatus
	Entity      string
	Definitions []FieldDefinition
}

// NewDefinitionLine builds a definition line without going through text.
func NewDefinitionLine(status Status, entity string, defs []FieldDefinition) *DefinitionLine {
	return &DefinitionLine{lineStatus: lineStatus{status}, Entity: entity, Definitions: defs}
}

func (*DefinitionLine) Type() LineType { return TypeDefinition }

func (l *DefinitionLine) String() string {
	var b strings.Builder
	b.Grow(entityEnd + len(l.Definitions)*DefinitionHeaderSize)
	b.WriteByte(byte(TypeDefinition))
	b.WriteByte(byte(l.status))
	b.WriteString(l.Entity)
	for _, d := range l.Definitions {
		b.WriteString(d.Header())
	}
	return b.String()
}

// ValueLine holds one data row in its raw, undecoded form.
type ValueLine struct {
	lineStatus
	Entity  string
	Payload string
}

// NewValueLine builds a value line without going through text.
func NewValueLine(status Status, entity, payload string) *ValueLine {
	return &ValueLine{lineStatus: lineStatus{status}, Entity: entity, Payload: payload}
}

func (*ValueLine) Type() LineType { return TypeValue }

func (l *ValueLine) String() string {
	return TypeValue.String() + l.status.String() + l.Entity + l.Payload
}

// CommentLine carries free text. Comments are dropped when a block is
// assembled.
type CommentLine struct {
	lineStatus
	Text string
}

func (*CommentLine) Type() LineType { return TypeComment }

func (l *CommentLine) String() string {
	return TypeComment.String() + l.status.String() + l.Text
}

// EndOfLogicalFileLine closes a logical file.
type EndOfLogicalFileLine struct {
	lineStatus
}

func (*EndOfLogicalFileLine) Type() LineType { return TypeEndOfLogicalFile }

func (l *EndOfLogicalFileLine) String() string {
	return TypeEndOfLogicalFile.String() + l.status.String()
}

// PhysicalEndOfFileLine closes the last logical file of a physical file.
type PhysicalEndOfFileLine struct {
	lineStatus
	char LineType // 'Z' or 'T'
}

func (l *PhysicalEndOfFileLine) Type() LineType { return l.char }

func (l *PhysicalEndOfFileLine) String() string {
	return l.char.String() + l.status.String()
}

// Classify parses one raw line (without line terminator).
func Classify(raw string) (Line, error) {
	r := []rune(raw)
	if len(r) == 0 {
		return nil, fmt.Errorf("%w: empty line", ErrUnknownLineType)
	}

	t := LineType(r[0])
	switch {
	case r[0] > 0x7f:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLineType, r[0])
	case t == TypeDefinition, t == TypeValue, t == TypeComment,
		t == TypeEndOfLogicalFile, t == TypePhysicalEndOfFile, t == TypeTerminate:
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownLineType, r[0])
	}

	if len(r) < 2 {
		return nil, fmt.Errorf("%w: %s line has no status", ErrUnknownStatus, t.Name())
	}
	status, err := ParseStatus(r[1])
	if err != nil {
		return nil, err
	}
	if !t.allows(status) {
		return nil, fmt.Errorf("%w: %s line may not have status %s", ErrStatusNotAllowed, t.Name(), status.Name())
	}
	st := lineStatus{status}

	switch t {
	case TypeDefinition:
		entity, err := entityNumber(r)
		if err != nil {
			return nil, err
		}
		defs, err := parseDefinitions(r[entityEnd:])
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", entity, err)
		}
		return &DefinitionLine{lineStatus: st, Entity: entity, Definitions: defs}, nil

	case TypeValue:
		entity, err := entityNumber(r)
		if err != nil {
			return nil, err
		}
		return &ValueLine{lineStatus: st, Entity: entity, Payload: string(r[entityEnd:])}, nil

	case TypeComment:
		return &CommentLine{lineStatus: st, Text: string(r[2:])}, nil

	case TypeEndOfLogicalFile:
		return &EndOfLogicalFileLine{lineStatus: st}, nil

	default:
		return &PhysicalEndOfFileLine{lineStatus: st, char: t}, nil
	}
}

func entityNumber(r []rune) (string, error) {
	if len(r) < entityEnd {
		return "", fmt.Errorf("%w: %s line needs %d chars of entity number, got %q", ErrInvalidEntityNumber, LineType(r[0]).Name(), EntityNumberSize, string(r[2:]))
	}
	return string(r[2:entityEnd]), nil
}

// parseDefinitions splits the header section of a definition line into
// 11-character chunks.
func parseDefinitions(text []rune) ([]FieldDefinition, error) {
	if len(text)%DefinitionHeaderSize != 0 {
		return nil, fmt.Errorf("%w: definitions text is %d chars, not a multiple of %d", ErrMalformedDefinition, len(text), DefinitionHeaderSize)
	}
	defs := make([]FieldDefinition, 0, len(text)/DefinitionHeaderSize)
	for start := 0; start < len(text); start += DefinitionHeaderSize {
		d, err := parseHeader(text[start : start+DefinitionHeaderSize])
		if err != nil {
			return nil, fmt.Errorf("field %d: %w", len(defs)+1, err)
		}
		defs = append(defs, d)
	}
	if err := checkUnique(defs); err != nil {
		return nil, err
	}
	return defs, nil
}
