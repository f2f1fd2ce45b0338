// pkg/extract/errors.go
package extract

import "errors"

var (
	// ErrArchiveRequired is returned when the archive path is not specified
	ErrArchiveRequired = errors.New("archive path is required")

	// ErrNoOffsets is returned when no file offsets are specified
	ErrNoOffsets = errors.New("at least one file offset is required")

	// ErrFileExists is returned when an output file exists and overwrite is false
	ErrFileExists = errors.New("file exists (use --overwrite to replace)")
)
