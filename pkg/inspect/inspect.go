// pkg/inspect/inspect.go

// Package inspect probes archive metadata records without decoding any
// block data, so looking inside a multi-gigabyte archive stays cheap.
package inspect

import (
	"fmt"
	"os"

	"github.com/kelvane/go-datpack/pkg/store"
)

// Inspect reads the archive header and the metadata record at each
// requested offset. Model files get their extended record, region table
// included. A record that cannot be read marks its own entry and probing
// continues with the next offset.
func Inspect(opts *Options) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	result := &Result{
		ArchivePath: opts.ArchivePath,
	}

	// Open archive file
	archiveFile, err := os.Open(opts.ArchivePath)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}
	defer archiveFile.Close()

	// Get archive size
	stat, err := archiveFile.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat archive: %w", err)
	}
	result.ArchiveSize = uint64(stat.Size())

	// The header is read once; per-file records only need it for anchoring
	header, err := store.ReadArchiveHeader(archiveFile)
	if err != nil {
		result.Errors = append(result.Errors, err)
		return result, err
	}
	result.Header = header

	for _, off := range opts.Offsets {
		result.Entries = append(result.Entries, probe(archiveFile, off))
	}

	return result, nil
}

// probe reads the record at off, following up with the extended record
// when the discriminant says the file is a model
func probe(f *os.File, off int64) Entry {
	entry := Entry{Offset: off}

	meta, err := store.ReadFileMetadata(f, off)
	if err != nil {
		entry.Err = err
		return entry
	}
	entry.Meta = meta

	if meta.Kind == store.KindModel {
		model, err := store.ReadModelMetadata(f, off)
		if err != nil {
			entry.Err = err
			return entry
		}
		entry.Model = &model
	}

	return entry
}
