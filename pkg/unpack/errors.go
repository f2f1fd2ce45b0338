// pkg/unpack/errors.go
package unpack

import (
	"errors"

	"github.com/kelvane/go-datpack/internal/binio"
)

var (
	// ErrFileNotFound is returned when the metadata record at the requested
	// offset marks the slot empty.
	ErrFileNotFound = errors.New("no file stored at offset")

	// ErrUnsupportedKind is returned when the metadata record carries a
	// discriminant with no reconstruction strategy.
	ErrUnsupportedKind = errors.New("unsupported file kind")

	// ErrUnexpectedEOF is returned when the archive ends inside a record,
	// table, or block payload. Re-exported so callers never import binio.
	ErrUnexpectedEOF = binio.ErrUnexpectedEOF

	// ErrDecompression is returned when a block's compressed bytes are
	// malformed or inflate to a length other than the declared one.
	ErrDecompression = errors.New("block decompression failed")

	// ErrBlockCountOverflow is returned when a model's summed region block
	// counts exceed the file's declared block count, which would over-index
	// the compressed-size table.
	ErrBlockCountOverflow = errors.New("region block counts exceed declared block count")
)
