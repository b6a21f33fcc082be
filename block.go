// Blocks: one definition line plus the value lines that follow it.
//
// The definition line fixes the block's entity number, status and field
// layout. Each value line is decoded against that layout. A value payload
// must cover every field, or every field but the last: the final field may
// be left off the wire entirely and is then undefined for that row. Any
// other payload length is rejected, including payloads that cut the last
// field short.
//
// Value lines repeat the entity number and carry their own status. Neither
// is checked against the definition; when the block is dumped every row is
// written with the block's entity number and status.
package adis

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Block is a definition and its decoded data rows.
type Block struct {
	Entity      string
	Status      Status
	Definitions []FieldDefinition
	Rows        []Row
}

// NewBlock validates the entity number, status and field layout and
// returns a block.
func NewBlock(entity string, status Status, defs []FieldDefinition, rows []Row) (*Block, error) {
	if utf8.RuneCountInString(entity) != EntityNumberSize {
		return nil, fmt.Errorf("%w: must be %d chars, got %q", ErrInvalidEntityNumber, EntityNumberSize, entity)
	}
	if !status.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownStatus, byte(status))
	}
	if err := checkUnique(defs); err != nil {
		return nil, err
	}
	return &Block{Entity: entity, Status: status, Definitions: defs, Rows: rows}, nil
}

func (b *Block) String() string {
	return fmt.Sprintf("block %s status=%s fields=%d rows=%d", b.Entity, b.Status, len(b.Definitions), len(b.Rows))
}

// assembler accumulates the lines of one block. pending is the field
// layout taken from the definition line; it stays nil until that line has
// been seen and is never visible outside the assembler.
type assembler struct {
	pending []FieldDefinition
	block   *Block
}

func (a *assembler) feed(l Line) error {
	switch l := l.(type) {
	case *DefinitionLine:
		if a.block != nil {
			return fmt.Errorf("%w: entity %s follows entity %s", ErrUnexpectedDefinition, l.Entity, a.block.Entity)
		}
		a.pending = l.Definitions
		a.block = &Block{Entity: l.Entity, Status: l.Status(), Definitions: l.Definitions}

	case *ValueLine:
		if a.block == nil {
			return fmt.Errorf("%w: entity %s", ErrValueBeforeDefinition, l.Entity)
		}
		row, err := decodeRow(a.pending, l.Payload)
		if err != nil {
			return fmt.Errorf("entity %s: %w", l.Entity, err)
		}
		a.block.Rows = append(a.block.Rows, row)
	}
	// Comments carry no block data and file delimiters never reach a block.
	return nil
}

func (a *assembler) finish() (*Block, error) {
	if a.block == nil {
		return nil, ErrMissingDefinition
	}
	return a.block, nil
}

// AssembleBlock builds a block from a definition line and the value and
// comment lines that follow it.
func AssembleBlock(lines []Line) (*Block, error) {
	var a assembler
	for i, l := range lines {
		if err := a.feed(l); err != nil {
			return nil, fmt.Errorf("line %d: %w", i+1, err)
		}
	}
	return a.finish()
}

// decodeRow splits a value payload into slots and decodes each one.
// Undefined slots are left out of the row.
func decodeRow(defs []FieldDefinition, payload string) (Row, error) {
	r := []rune(payload)

	full := 0
	for _, d := range defs {
		full += d.size
	}
	short := full
	if len(defs) > 0 {
		short = full - defs[len(defs)-1].size
	}
	if len(r) != full && len(r) != short {
		if full == short {
			return nil, fmt.Errorf("%w: expected %d chars, got %d", ErrValueLineLengthMismatch, full, len(r))
		}
		return nil, fmt.Errorf("%w: expected %d or %d chars, got %d", ErrValueLineLengthMismatch, full, short, len(r))
	}

	row := make(Row, 0, len(defs))
	pos := 0
	for _, d := range defs {
		end := min(pos+d.size, len(r))
		v, ok, err := d.Decode(string(r[pos:end]))
		if err != nil {
			return nil, err
		}
		if ok {
			row = append(row, v)
		}
		pos = end
	}
	return row, nil
}

// encodeRow renders one row as a value payload. Fields the row does not
// define are '|'-filled; explicit nulls are '?'-filled. Values for items
// the block does not define are ignored.
func (b *Block) encodeRow(row Row) (string, error) {
	byItem := make(map[string]Value, len(row))
	for _, v := range row {
		byItem[v.Item] = v
	}

	var sb strings.Builder
	for _, d := range b.Definitions {
		v, ok := byItem[d.item]
		if !ok {
			sb.WriteString(d.Undefined())
			continue
		}
		slot, err := d.Encode(v)
		if err != nil {
			return "", err
		}
		sb.WriteString(slot)
	}
	return sb.String(), nil
}

// dump writes the definition line and one value line per row.
func (b *Block) dump(w *strings.Builder) error {
	w.WriteString(NewDefinitionLine(b.Status, b.Entity, b.Definitions).String())
	w.WriteString(crlf)
	for i, row := range b.Rows {
		payload, err := b.encodeRow(row)
		if err != nil {
			return fmt.Errorf("entity %s: row %d: %w", b.Entity, i+1, err)
		}
		w.WriteString(NewValueLine(b.Status, b.Entity, payload).String())
		w.WriteString(crlf)
	}
	return nil
}

// Dump returns the block as ADIS text with CRLF line endings.
func (b *Block) Dump() (string, error) {
	var sb strings.Builder
	if err := b.dump(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
