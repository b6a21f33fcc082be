// Package adis reads and writes ADIS, the fixed-width line-oriented format
// used to exchange agricultural data. Raw text is classified line by line,
// grouped into blocks (one definition line plus its value lines), blocks
// into logical files, and files into a Document. The same tree converts to
// and from a JSON mapping and dumps back to byte-exact ADIS text.
//
// Every value in a block sits in a fixed-width slot described by the
// block's field definitions. Slots filled with '|' are undefined and do not
// appear in the decoded row; slots filled with '?' are explicit nulls.
package adis

import "errors"

// Sentinel errors for programmatic handling. All are returned wrapped with
// positional context, so callers compare with errors.Is.
var (
	ErrInvalidDefinition       = errors.New("invalid field definition")
	ErrUnknownLineType         = errors.New("unknown line type")
	ErrUnknownStatus           = errors.New("unknown status")
	ErrStatusNotAllowed        = errors.New("status not allowed for line type")
	ErrMalformedDefinition     = errors.New("malformed definition block")
	ErrInvalidEntityNumber     = errors.New("invalid entity number")
	ErrValueLineLengthMismatch = errors.New("value line length mismatch")
	ErrMissingDefinition       = errors.New("definition is missing")
	ErrValueBeforeDefinition   = errors.New("value line before definition line")
	ErrUnexpectedDefinition    = errors.New("more than one definition line in block")
	ErrFieldLengthMismatch     = errors.New("field length mismatch")
	ErrInvalidNumber           = errors.New("invalid number")
	ErrValueTooLong            = errors.New("value too long for field")
	ErrValueTooLarge           = errors.New("number too large for field")
	ErrMissingBlockField       = errors.New("block field missing")
	ErrInvalidDataRow          = errors.New("invalid data row")
	ErrRootNotAList            = errors.New("root element is not a list")
	ErrEntryNotAMapping        = errors.New("entry is not a mapping")
	ErrUnknownAlgorithm        = errors.New("unknown hash algorithm")
	ErrDecompress              = errors.New("decompression failed")
)
