// pkg/extract/result.go
package extract

// Result contains statistics about the extraction operation
type Result struct {
	// Total number of files queued for extraction
	FilesTotal int

	// Number of files successfully extracted
	FilesProcessed int

	// Total decoded size in bytes
	DecodedBytes uint64

	// Total bytes written to disk (differs from DecodedBytes when
	// outputs are recompressed)
	WrittenBytes uint64

	// Digests maps archive offsets to hex BLAKE3 digests of the decoded
	// content (only populated when Options.Digest is set)
	Digests map[int64]string

	// Warnings carries non-fatal diagnostics, such as a reconstructed
	// size disagreeing with the declared one
	Warnings []string

	// List of errors encountered (non-fatal)
	Errors []error
}

// Success returns true if all files were extracted without errors
func (r *Result) Success() bool {
	return len(r.Errors) == 0 && r.FilesProcessed == r.FilesTotal
}

// GetFilesTotal returns total files (interface method)
func (r *Result) GetFilesTotal() int {
	return r.FilesTotal
}

// GetFilesProcessed returns processed files (interface method)
func (r *Result) GetFilesProcessed() int {
	return r.FilesProcessed
}

// GetErrors returns the error list (interface method)
func (r *Result) GetErrors() []error {
	return r.Errors
}

// GetDecodedBytes returns decoded size (interface method)
func (r *Result) GetDecodedBytes() uint64 {
	return r.DecodedBytes
}

// GetWrittenBytes returns written size (interface method)
func (r *Result) GetWrittenBytes() uint64 {
	return r.WrittenBytes
}
