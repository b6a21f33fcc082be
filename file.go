// Logical files: the blocks between two file delimiters.
//
// A new block starts at every definition line; value and comment lines
// attach to the most recent one. Comment lines before the first definition
// are dropped. A value line before the first definition has no layout to
// decode against and is an error.
package adis

import (
	"fmt"
	"strings"
)

// File is one logical file.
type File struct {
	Blocks []*Block
}

func (f *File) String() string {
	return fmt.Sprintf("file with %d blocks", len(f.Blocks))
}

// Block returns the first block with the given entity number.
func (f *File) Block(entity string) (*Block, bool) {
	for _, b := range f.Blocks {
		if b.Entity == entity {
			return b, true
		}
	}
	return nil, false
}

// splitBlocks partitions lines at every definition line. Lines before the
// first definition are returned separately as leading.
func splitBlocks(lines []Line) (leading []Line, groups [][]Line) {
	for _, l := range lines {
		if _, ok := l.(*DefinitionLine); ok {
			groups = append(groups, []Line{l})
			continue
		}
		if len(groups) == 0 {
			leading = append(leading, l)
			continue
		}
		last := len(groups) - 1
		groups[last] = append(groups[last], l)
	}
	return leading, groups
}

// AssembleFile groups classified lines into blocks. lines must not contain
// file delimiters.
func AssembleFile(lines []Line) (*File, error) {
	leading, groups := splitBlocks(lines)
	for _, l := range leading {
		if v, ok := l.(*ValueLine); ok {
			return nil, fmt.Errorf("%w: entity %s", ErrValueBeforeDefinition, v.Entity)
		}
	}

	f := &File{Blocks: make([]*Block, 0, len(groups))}
	for i, g := range groups {
		b, err := AssembleBlock(g)
		if err != nil {
			return nil, fmt.Errorf("block %d: %w", i+1, err)
		}
		f.Blocks = append(f.Blocks, b)
	}
	return f, nil
}

func (f *File) dump(w *strings.Builder) error {
	for _, b := range f.Blocks {
		if err := b.dump(w); err != nil {
			return err
		}
	}
	return nil
}

// Dump returns the file's blocks as ADIS text, without delimiters.
func (f *File) Dump() (string, error) {
	var sb strings.Builder
	if err := f.dump(&sb); err != nil {
		return "", err
	}
	return sb.String(), nil
}
