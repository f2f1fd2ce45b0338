// pkg/inspect/errors.go
package inspect

import "errors"

var (
	// ErrArchiveRequired is returned when the archive path is not specified
	ErrArchiveRequired = errors.New("archive path is required")

	// ErrNoOffsets is returned when no file offsets are specified
	ErrNoOffsets = errors.New("at least one file offset is required")
)
