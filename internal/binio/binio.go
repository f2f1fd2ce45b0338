// internal/binio/binio.go
package binio

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrUnexpectedEOF is returned when the stream ends before a full record
// or byte run could be read. Short reads are never zero-padded.
var ErrUnexpectedEOF = errors.New("unexpected end of stream")

// Read decodes one fixed-layout little-endian value at the current position.
// v follows the rules of binary.Read: a pointer to a fixed-size value, or a
// slice of fixed-size values which is filled completely.
// The cursor is left just past the decoded bytes.
func Read(r io.Reader, v any) error {
	if err := binary.Read(r, binary.LittleEndian, v); err != nil {
		return mapEOF(err)
	}
	return nil
}

// ReadAt seeks to off and decodes one fixed-layout value there.
func ReadAt(r io.ReadSeeker, off int64, v any) error {
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return fmt.Errorf("seek to %#x: %w", off, err)
	}
	return Read(r, v)
}

// ReadBytes reads exactly n bytes from the current position.
func ReadBytes(r io.Reader, n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, mapEOF(err)
	}
	return buf, nil
}

// ReadBytesAt seeks to off and reads exactly n bytes there.
func ReadBytesAt(r io.ReadSeeker, off int64, n int) ([]byte, error) {
	if _, err := r.Seek(off, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seek to %#x: %w", off, err)
	}
	return ReadBytes(r, n)
}

// Position returns the current cursor position.
func Position(r io.ReadSeeker) (int64, error) {
	pos, err := r.Seek(0, io.SeekCurrent)
	if err != nil {
		return 0, fmt.Errorf("get current position: %w", err)
	}
	return pos, nil
}

// PreservePosition records the cursor position, runs fn, and restores the
// cursor on every exit path, whether fn succeeded or not. A failure from fn
// takes precedence over a failure to restore.
func PreservePosition(r io.ReadSeeker, fn func() error) error {
	pos, err := Position(r)
	if err != nil {
		return err
	}
	fnErr := fn()
	if _, err := r.Seek(pos, io.SeekStart); err != nil {
		if fnErr != nil {
			return fnErr
		}
		return fmt.Errorf("restore position: %w", err)
	}
	return fnErr
}

// mapEOF folds the two stdlib end-of-stream errors into ErrUnexpectedEOF so
// callers match one sentinel regardless of where the stream ran dry.
func mapEOF(err error) error {
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		return ErrUnexpectedEOF
	}
	return err
}
