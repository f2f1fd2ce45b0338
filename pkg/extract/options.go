// pkg/extract/options.go
package extract

import "runtime"

// Options configures the extraction behavior
type Options struct {
	// ArchivePath is the archive file to extract from (required)
	ArchivePath string

	// Offsets are the archive offsets of the files to extract
	// (at least one required)
	Offsets []int64

	// OutputDir is the directory extracted files are written into
	// Default: "."
	OutputDir string

	// Workers is the maximum number of concurrent extraction workers.
	// Each worker holds its own handle on the archive.
	// Default: runtime.NumCPU()
	Workers int

	// Digest records a BLAKE3 digest of every decoded file in the result
	Digest bool

	// Compress writes each output as an xz stream instead of a plain file
	Compress bool

	// Overwrite existing files without prompting
	Overwrite bool

	// Verbose enables detailed logging
	Verbose bool

	// Quiet suppresses all output except errors
	Quiet bool
}

// DefaultOptions returns options with sensible defaults
func DefaultOptions() *Options {
	return &Options{
		OutputDir: ".",
		Workers:   runtime.NumCPU(),
	}
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.ArchivePath == "" {
		return ErrArchiveRequired
	}
	if len(o.Offsets) == 0 {
		return ErrNoOffsets
	}
	if o.OutputDir == "" {
		o.OutputDir = "."
	}
	if o.Workers <= 0 {
		o.Workers = runtime.NumCPU()
	}
	if o.Quiet {
		o.Verbose = false
	}
	return nil
}
