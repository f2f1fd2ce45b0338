// pkg/store/read.go
package store

import (
	"fmt"
	"io"

	"github.com/kelvane/go-datpack/internal/binio"
)

// ReadArchiveHeader reads the archive header at the start of r and leaves
// the cursor just past it.
func ReadArchiveHeader(r io.ReadSeeker) (ArchiveHeader, error) {
	var h ArchiveHeader
	if err := binio.ReadAt(r, 0, &h); err != nil {
		return ArchiveHeader{}, fmt.Errorf("read archive header: %w", err)
	}
	return h, nil
}

// ReadFileMetadata reads the file metadata record at off.
func ReadFileMetadata(r io.ReadSeeker, off int64) (FileMetadata, error) {
	var m FileMetadata
	if err := binio.ReadAt(r, off, &m); err != nil {
		return FileMetadata{}, fmt.Errorf("read file metadata at %#x: %w", off, err)
	}
	return m, nil
}

// ReadModelMetadata reads the extended model metadata record at off. The
// record starts with the common file metadata prefix; callers should have
// already established Kind == KindModel before asking for the suffix.
func ReadModelMetadata(r io.ReadSeeker, off int64) (ModelMetadata, error) {
	var m ModelMetadata
	if err := binio.ReadAt(r, off, &m); err != nil {
		return ModelMetadata{}, fmt.Errorf("read model metadata at %#x: %w", off, err)
	}
	return m, nil
}

// ReadStandardBlocks reads the n-entry standard block table from the
// current cursor.
func ReadStandardBlocks(r io.Reader, n int) ([]StandardBlock, error) {
	blocks := make([]StandardBlock, n)
	if err := binio.Read(r, blocks); err != nil {
		return nil, fmt.Errorf("read standard block table: %w", err)
	}
	return blocks, nil
}

// ReadTextureBlocks reads the n-entry texture lod table from the current
// cursor.
func ReadTextureBlocks(r io.Reader, n int) ([]TextureBlock, error) {
	blocks := make([]TextureBlock, n)
	if err := binio.Read(r, blocks); err != nil {
		return nil, fmt.Errorf("read texture lod table: %w", err)
	}
	return blocks, nil
}

// ReadBlockSizes reads the n-entry compressed block size table that
// follows a model metadata record.
func ReadBlockSizes(r io.Reader, n int) ([]uint16, error) {
	sizes := make([]uint16, n)
	if err := binio.Read(r, sizes); err != nil {
		return nil, fmt.Errorf("read block size table: %w", err)
	}
	return sizes, nil
}

// ReadBlockHeader reads a single block header from the current cursor.
func ReadBlockHeader(r io.Reader) (BlockHeader, error) {
	var h BlockHeader
	if err := binio.Read(r, &h); err != nil {
		return BlockHeader{}, fmt.Errorf("read block header: %w", err)
	}
	return h, nil
}
