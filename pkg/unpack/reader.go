// pkg/unpack/reader.go
package unpack

import (
	"fmt"
	"io"

	"github.com/kelvane/go-datpack/pkg/store"
)

// Logf receives non-fatal diagnostics.
type Logf func(format string, args ...any)

// Option configures a Reader.
type Option func(*Reader)

// WithLogf routes non-fatal diagnostics, such as a reconstructed size
// disagreeing with the declared one, to logf. The default reader is silent.
func WithLogf(logf Logf) Option {
	return func(r *Reader) { r.logf = logf }
}

// Reader reconstructs files out of a single archive stream. It holds no
// state beyond the stream handle; the stream cursor is the only shared
// mutable resource, so a Reader must not be used from multiple goroutines.
// Callers wanting parallel reads open one stream per goroutine.
type Reader struct {
	rs   io.ReadSeeker
	logf Logf
}

// NewReader wraps an archive stream. The cursor may be anywhere; every
// read anchors itself by absolute offset.
func NewReader(rs io.ReadSeeker, opts ...Option) *Reader {
	r := &Reader{rs: rs, logf: func(string, ...any) {}}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// File is one reconstructed file.
type File struct {
	Offset int64              // archive offset of the metadata record
	Meta   store.FileMetadata // base record as stored; Meta.RawSize is declared, len(Data) is real
	Data   []byte

	// Model holds the synthesized header for model files, nil otherwise.
	Model *store.ModelHeader
}

// ReadFile reconstructs the file whose metadata record sits at off. Empty
// slots fail with ErrFileNotFound and unknown discriminants with
// ErrUnsupportedKind, both before any block data is read. The returned
// buffer is owned by the caller. The cursor position afterwards is
// unspecified.
func (r *Reader) ReadFile(off int64) (*File, error) {
	meta, err := store.ReadFileMetadata(r.rs, off)
	if err != nil {
		return nil, err
	}

	f := &File{Offset: off, Meta: meta}

	switch meta.Kind {
	case store.KindEmpty:
		return nil, fmt.Errorf("file at %#x: %w", off, ErrFileNotFound)
	case store.KindStandard:
		f.Data, err = r.readStandard(off, meta)
	case store.KindTexture:
		f.Data, err = r.readTexture(off, meta)
	case store.KindModel:
		f.Data, f.Model, err = r.readModel(off)
	default:
		return nil, fmt.Errorf("file at %#x: kind %d: %w", off, uint32(meta.Kind), ErrUnsupportedKind)
	}
	if err != nil {
		return nil, fmt.Errorf("file at %#x: %w", off, err)
	}

	// Some archives round or pad the declared size, so a mismatch is a
	// diagnostic, not corruption.
	if uint32(len(f.Data)) != meta.RawSize {
		r.logf("file at %#x: reconstructed %d bytes, metadata declared %d", off, len(f.Data), meta.RawSize)
	}
	return f, nil
}
