// pkg/inspect/result.go
package inspect

import (
	"fmt"

	"github.com/kelvane/go-datpack/pkg/store"
)

// Result contains everything the archive declares about the probed files
type Result struct {
	// Archive metadata
	ArchivePath string              // Path to the probed archive
	ArchiveSize uint64              // Total archive file size in bytes
	Header      store.ArchiveHeader // Record at offset 0, reported as stored

	// Entries holds one record per requested offset, in request order
	Entries []Entry

	// Errors encountered while probing (archive-level, not per-entry)
	Errors []error
}

// Entry is the probe of a single metadata record
type Entry struct {
	Offset int64                // Archive offset the record was read from
	Meta   store.FileMetadata   // Base metadata record
	Model  *store.ModelMetadata // Extended record, model files only
	Err    error                // Error if the record could not be read
}

// Readable returns the number of entries whose records were read cleanly
func (r *Result) Readable() int {
	n := 0
	for _, e := range r.Entries {
		if e.Err == nil {
			n++
		}
	}
	return n
}

// DeclaredRawSize returns the sum of the raw sizes the readable records
// declare. Empty slots and unreadable records contribute nothing.
func (r *Result) DeclaredRawSize() uint64 {
	var total uint64
	for _, e := range r.Entries {
		if e.Err == nil {
			total += uint64(e.Meta.RawSize)
		}
	}
	return total
}

// Success returns true if every requested record was read cleanly
func (r *Result) Success() bool {
	if len(r.Errors) > 0 {
		return false
	}
	return r.Readable() == len(r.Entries)
}

// Summary returns a human-readable report of the probe
func (r *Result) Summary() string {
	status := "OK"
	if !r.Success() {
		status = "ERRORS"
	}

	s := fmt.Sprintf("Archive: %s [%s]\n", r.ArchivePath, status)
	s += fmt.Sprintf("Size:    %s\n", formatSize(r.ArchiveSize))
	s += fmt.Sprintf("Header:  length %d, version %d, content kind %d\n",
		r.Header.HeaderLength, r.Header.Version, r.Header.ContentKind)
	s += fmt.Sprintf("Entries: %d probed, %d readable, %s declared raw\n",
		len(r.Entries), r.Readable(), formatSize(r.DeclaredRawSize()))

	for i := range r.Entries {
		s += "\n" + r.Entries[i].describe()
	}

	if len(r.Errors) > 0 {
		s += fmt.Sprintf("\nErrors (%d):\n", len(r.Errors))
		for i, err := range r.Errors {
			if i >= 10 {
				s += fmt.Sprintf("  - ... and %d more errors\n", len(r.Errors)-10)
				break
			}
			s += fmt.Sprintf("  - %v\n", err)
		}
	}

	return s
}

// describe renders one entry as an offset-tagged paragraph
func (e *Entry) describe() string {
	if e.Err != nil {
		return fmt.Sprintf("0x%08X  error: %v\n", e.Offset, e.Err)
	}

	s := fmt.Sprintf("0x%08X  %s\n", e.Offset, e.Meta.Kind)
	if e.Meta.Kind == store.KindEmpty {
		return s
	}

	s += fmt.Sprintf("  raw size:    %s\n", formatSize(uint64(e.Meta.RawSize)))
	s += fmt.Sprintf("  header size: %d B\n", e.Meta.HeaderSize)
	s += fmt.Sprintf("  blocks:      %d\n", e.Meta.BlockCount)

	if e.Model != nil {
		s += fmt.Sprintf("  version:     %#x\n", e.Model.Version)
		s += fmt.Sprintf("  geometry:    %d vertex declarations, %d materials, %d LODs\n",
			e.Model.VertexDeclCount, e.Model.MaterialCount, e.Model.LODCount)
		if e.Model.IndexStreaming {
			s += "  index streaming enabled\n"
		}
		if e.Model.EdgeGeometry {
			s += "  edge geometry present\n"
		}
		s += "  regions:\n"
		for _, reg := range e.Model.Regions() {
			if reg.BlockCount == 0 {
				continue
			}
			s += fmt.Sprintf("    %-10s %3d blocks at +0x%X\n",
				regionLabel(reg), reg.BlockCount, reg.Offset)
		}
	}

	return s
}

// regionLabel names a region, with the buffer-set slot for the classes
// that have one
func regionLabel(reg store.ModelRegion) string {
	switch reg.Class {
	case store.RegionVertex, store.RegionEdge, store.RegionIndex:
		return fmt.Sprintf("%s[%d]", reg.Class, reg.Slot)
	default:
		return reg.Class.String()
	}
}

// formatSize formats bytes to human-readable string
func formatSize(bytes uint64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := uint64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.2f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
