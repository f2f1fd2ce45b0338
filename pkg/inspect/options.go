// pkg/inspect/options.go
package inspect

// Options configures the inspect operation
type Options struct {
	// ArchivePath is the archive file to probe (required)
	ArchivePath string

	// Offsets are the archive offsets of the metadata records to probe
	// (at least one required)
	Offsets []int64
}

// Validate checks if options are valid
func (o *Options) Validate() error {
	if o.ArchivePath == "" {
		return ErrArchiveRequired
	}
	if len(o.Offsets) == 0 {
		return ErrNoOffsets
	}
	return nil
}
