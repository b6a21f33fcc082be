// JSON mapping of a Document.
//
// The JSON form is a list of logical files. Each file is an object keyed by
// entity number; each block is
//
//	{"status": "N",
//	 "definitions": [{"item_number": "...", "field_size": 5, "decimal_digits": 2}],
//	 "data": [{"<item_number>": <null|string|number>, ...}]}
//
// Go maps are unordered, so files are held as ordered entity/block pairs
// and written with a hand-rolled object encoder that preserves block order.
// Row keys are written in definition order. On input, object key order is
// recovered with the streaming decoder.
//
// Entity numbers should be unique within a file. When they are not, the
// last block for an entity wins but keeps the position of the first, on
// both input and output.
package adis

import (
	"bytes"
	"fmt"
	"maps"
	"slices"

	json "github.com/goccy/go-json"
)

// Mapping is the JSON-shaped form of a Document.
type Mapping []FileMapping

// FileMapping is one logical file: entity number → block, in order.
type FileMapping []EntityBlock

// EntityBlock pairs an entity number with its block.
type EntityBlock struct {
	Entity string
	Block  BlockMapping
}

// BlockMapping is the JSON form of a Block.
type BlockMapping struct {
	Status      string              `json:"status"`
	Definitions []DefinitionMapping `json:"definitions"`
	Data        []map[string]any    `json:"data"`
}

// DefinitionMapping is the JSON form of a FieldDefinition. Name is only set
// by Annotate and is ignored when the mapping is turned back into a block.
type DefinitionMapping struct {
	ItemNumber    string `json:"item_number"`
	FieldSize     int    `json:"field_size"`
	DecimalDigits int    `json:"decimal_digits"`
	Name          string `json:"name,omitempty"`
}

// set stores bm under entity. An existing entry is replaced in place.
func (fm FileMapping) set(entity string, bm BlockMapping) FileMapping {
	for i := range fm {
		if fm[i].Entity == entity {
			fm[i].Block = bm
			return fm
		}
	}
	return append(fm, EntityBlock{Entity: entity, Block: bm})
}

// Get returns the block stored under entity.
func (fm FileMapping) Get(entity string) (BlockMapping, bool) {
	for _, eb := range fm {
		if eb.Entity == entity {
			return eb.Block, true
		}
	}
	return BlockMapping{}, false
}

// Tree → mapping

// Mapping converts the document to its JSON-shaped form.
func (d *Document) Mapping(opts Options) Mapping {
	m := make(Mapping, 0, len(d.Files))
	for _, f := range d.Files {
		m = append(m, f.Mapping(opts))
	}
	return m
}

// Mapping converts the file to its JSON-shaped form.
func (f *File) Mapping(opts Options) FileMapping {
	fm := make(FileMapping, 0, len(f.Blocks))
	for _, b := range f.Blocks {
		fm = fm.set(b.Entity, b.Mapping(opts))
	}
	return fm
}

// Mapping converts the block to its JSON-shaped form.
func (b *Block) Mapping(opts Options) BlockMapping {
	bm := BlockMapping{
		Status:      b.Status.String(),
		Definitions: make([]DefinitionMapping, 0, len(b.Definitions)),
		Data:        make([]map[string]any, 0, len(b.Rows)),
	}
	for _, d := range b.Definitions {
		bm.Definitions = append(bm.Definitions, DefinitionMapping{
			ItemNumber:    d.item,
			FieldSize:     d.size,
			DecimalDigits: d.decimals,
		})
	}
	for _, row := range b.Rows {
		m := make(map[string]any, len(row))
		for _, v := range row {
			m[v.Item] = v.Any(opts.KeepPadding)
		}
		bm.Data = append(bm.Data, m)
	}
	return bm
}

// Mapping → tree

// FromMapping rebuilds a Document from its JSON-shaped form.
func FromMapping(m Mapping) (*Document, error) {
	d := &Document{Files: make([]*File, 0, len(m))}
	for i, fm := range m {
		f, err := fm.File()
		if err != nil {
			return nil, fmt.Errorf("file %d: %w", i+1, err)
		}
		d.Files = append(d.Files, f)
	}
	return d, nil
}

// File rebuilds a logical file.
func (fm FileMapping) File() (*File, error) {
	var merged FileMapping
	for _, eb := range fm {
		merged = merged.set(eb.Entity, eb.Block)
	}

	f := &File{Blocks: make([]*Block, 0, len(merged))}
	for _, eb := range merged {
		b, err := eb.Block.Block(eb.Entity)
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", eb.Entity, err)
		}
		f.Blocks = append(f.Blocks, b)
	}
	return f, nil
}

// Block rebuilds a block. Definitions and Data must be set; a nil slice
// counts as missing. Row entries for items the block does not define are
// ignored.
func (bm BlockMapping) Block(entity string) (*Block, error) {
	switch {
	case bm.Definitions == nil:
		return nil, fmt.Errorf("%w: %q", ErrMissingBlockField, "definitions")
	case bm.Data == nil:
		return nil, fmt.Errorf("%w: %q", ErrMissingBlockField, "data")
	}

	sr := []rune(bm.Status)
	if len(sr) != 1 {
		return nil, fmt.Errorf("%w: status must be one char, got %q", ErrUnknownStatus, bm.Status)
	}
	status, err := ParseStatus(sr[0])
	if err != nil {
		return nil, err
	}

	defs := make([]FieldDefinition, 0, len(bm.Definitions))
	for i, dm := range bm.Definitions {
		d, err := NewFieldDefinition(dm.ItemNumber, dm.FieldSize, dm.DecimalDigits)
		if err != nil {
			return nil, fmt.Errorf("definition %d: %w", i+1, err)
		}
		defs = append(defs, d)
	}

	rows := make([]Row, 0, len(bm.Data))
	for i, data := range bm.Data {
		if data == nil {
			return nil, fmt.Errorf("%w: row %d is not a mapping", ErrInvalidDataRow, i+1)
		}
		row := make(Row, 0, len(defs))
		for _, d := range defs {
			raw, ok := data[d.item]
			if !ok {
				continue
			}
			v, err := valueOf(d.item, raw)
			if err != nil {
				return nil, fmt.Errorf("row %d: %w", i+1, err)
			}
			row = append(row, v)
		}
		rows = append(rows, row)
	}

	return NewBlock(entity, status, defs, rows)
}

// JSON encoding

// MarshalJSON writes the file as an object with keys in block order.
func (fm FileMapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, eb := range fm {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(eb.Entity)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		block, err := eb.Block.MarshalJSON()
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", eb.Entity, err)
		}
		buf.Write(block)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// MarshalJSON writes status, definitions and data in that order, with row
// keys in definition order. Keys no definition names follow, sorted.
func (bm BlockMapping) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer

	status, err := json.Marshal(bm.Status)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`{"status":`)
	buf.Write(status)

	defs := bm.Definitions
	if defs == nil {
		defs = []DefinitionMapping{}
	}
	dj, err := json.Marshal(defs)
	if err != nil {
		return nil, err
	}
	buf.WriteString(`,"definitions":`)
	buf.Write(dj)

	buf.WriteString(`,"data":[`)
	for i, row := range bm.Data {
		if i > 0 {
			buf.WriteByte(',')
		}
		if err := writeRow(&buf, row, bm.Definitions); err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
	}
	buf.WriteString(`]}`)
	return buf.Bytes(), nil
}

func writeRow(buf *bytes.Buffer, row map[string]any, defs []DefinitionMapping) error {
	keys := make([]string, 0, len(row))
	seen := make(map[string]bool, len(defs))
	for _, d := range defs {
		if _, ok := row[d.ItemNumber]; ok && !seen[d.ItemNumber] {
			keys = append(keys, d.ItemNumber)
			seen[d.ItemNumber] = true
		}
	}
	for _, k := range slices.Sorted(maps.Keys(row)) {
		if !seen[k] {
			keys = append(keys, k)
		}
	}

	buf.WriteByte('{')
	for i, k := range keys {
		if i > 0 {
			buf.WriteByte(',')
		}
		kj, err := json.Marshal(k)
		if err != nil {
			return err
		}
		vj, err := json.Marshal(row[k])
		if err != nil {
			return fmt.Errorf("item %s: %w", k, err)
		}
		buf.Write(kj)
		buf.WriteByte(':')
		buf.Write(vj)
	}
	buf.WriteByte('}')
	return nil
}

// JSON returns the document's mapping as compact JSON.
func (d *Document) JSON(opts Options) ([]byte, error) {
	return json.Marshal(d.Mapping(opts))
}

// JSON decoding

// ParseJSON rebuilds a Document from its JSON form.
func ParseJSON(data []byte) (*Document, error) {
	m, err := DecodeMapping(data)
	if err != nil {
		return nil, err
	}
	return FromMapping(m)
}

// DecodeMapping parses JSON into a Mapping, checking the document shape:
// the root must be a list of objects, and every block must carry status,
// definitions and data.
func DecodeMapping(data []byte) (Mapping, error) {
	data = bytes.TrimSpace(data)
	if !json.Valid(data) {
		var probe any
		err := json.Unmarshal(data, &probe)
		return nil, fmt.Errorf("json: %w", err)
	}
	if kind(data) != "list" {
		return nil, fmt.Errorf("%w: got %s", ErrRootNotAList, kind(data))
	}

	var entries []json.RawMessage
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("json: %w", err)
	}

	m := make(Mapping, 0, len(entries))
	for i, e := range entries {
		fm, err := decodeFile(e)
		if err != nil {
			return nil, fmt.Errorf("file %d: %w", i+1, err)
		}
		m = append(m, fm)
	}
	return m, nil
}

func decodeFile(raw json.RawMessage) (FileMapping, error) {
	raw = bytes.TrimSpace(raw)
	if kind(raw) != "mapping" {
		return nil, fmt.Errorf("%w: got %s", ErrEntryNotAMapping, kind(raw))
	}

	keys, values, err := orderedObject(raw)
	if err != nil {
		return nil, err
	}

	fm := make(FileMapping, 0, len(keys))
	for i, entity := range keys {
		bm, err := decodeBlock(values[i])
		if err != nil {
			return nil, fmt.Errorf("entity %s: %w", entity, err)
		}
		fm = fm.set(entity, bm)
	}
	return fm, nil
}

// orderedObject returns the keys of a JSON object in document order along
// with their raw values.
func orderedObject(raw []byte) ([]string, []json.RawMessage, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil { // '{'
		return nil, nil, fmt.Errorf("json: %w", err)
	}

	var keys []string
	var values []json.RawMessage
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("json: %w", err)
		}
		key, ok := tok.(string)
		if !ok {
			return nil, nil, fmt.Errorf("json: object key %v is not a string", tok)
		}
		var v json.RawMessage
		if err := dec.Decode(&v); err != nil {
			return nil, nil, fmt.Errorf("json: key %s: %w", key, err)
		}
		keys = append(keys, key)
		values = append(values, v)
	}
	return keys, values, nil
}

func decodeBlock(raw json.RawMessage) (BlockMapping, error) {
	raw = bytes.TrimSpace(raw)
	if kind(raw) != "mapping" {
		return BlockMapping{}, fmt.Errorf("%w: block is %s", ErrEntryNotAMapping, kind(raw))
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return BlockMapping{}, fmt.Errorf("json: %w", err)
	}
	for _, key := range []string{"status", "definitions", "data"} {
		if _, ok := fields[key]; !ok {
			return BlockMapping{}, fmt.Errorf("%w: %q", ErrMissingBlockField, key)
		}
	}

	var bm BlockMapping
	if err := json.Unmarshal(fields["status"], &bm.Status); err != nil {
		return BlockMapping{}, fmt.Errorf("%w: status is %s, not a string", ErrUnknownStatus, kind(bytes.TrimSpace(fields["status"])))
	}

	defs, err := rawList(fields["definitions"])
	if err != nil {
		return BlockMapping{}, fmt.Errorf("%w: definitions: %w", ErrInvalidDefinition, err)
	}
	bm.Definitions = make([]DefinitionMapping, 0, len(defs))
	for i, rd := range defs {
		if kind(rd) != "mapping" {
			return BlockMapping{}, fmt.Errorf("definition %d: %w: got %s", i+1, ErrEntryNotAMapping, kind(rd))
		}
		var dm DefinitionMapping
		if err := json.Unmarshal(rd, &dm); err != nil {
			return BlockMapping{}, fmt.Errorf("definition %d: %w: %w", i+1, ErrInvalidDefinition, err)
		}
		bm.Definitions = append(bm.Definitions, dm)
	}

	rows, err := rawList(fields["data"])
	if err != nil {
		return BlockMapping{}, fmt.Errorf("%w: data: %w", ErrInvalidDataRow, err)
	}
	bm.Data = make([]map[string]any, 0, len(rows))
	for i, rr := range rows {
		if kind(rr) != "mapping" {
			return BlockMapping{}, fmt.Errorf("%w: row %d is %s, not a mapping", ErrInvalidDataRow, i+1, kind(rr))
		}
		row := map[string]any{}
		if err := json.Unmarshal(rr, &row); err != nil {
			return BlockMapping{}, fmt.Errorf("%w: row %d: %w", ErrInvalidDataRow, i+1, err)
		}
		bm.Data = append(bm.Data, row)
	}
	return bm, nil
}

// rawList splits a JSON list into its trimmed raw elements.
func rawList(raw json.RawMessage) ([]json.RawMessage, error) {
	raw = bytes.TrimSpace(raw)
	if kind(raw) != "list" {
		return nil, fmt.Errorf("expected a list, got %s", kind(raw))
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, err
	}
	for i := range items {
		items[i] = bytes.TrimSpace(items[i])
	}
	return items, nil
}

// kind names the JSON type of a trimmed raw value by its first byte.
func kind(raw []byte) string {
	if len(raw) == 0 {
		return "nothing"
	}
	switch raw[0] {
	case '[':
		return "list"
	case '{':
		return "mapping"
	case '"':
		return "string"
	case 't', 'f':
		return "bool"
	case 'n':
		return "null"
	default:
		return "number"
	}
}
