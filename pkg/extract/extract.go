// pkg/extract/extract.go
package extract

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/ulikunitz/xz"
	"github.com/zeebo/blake3"
	"golang.org/x/sync/errgroup"

	"github.com/kelvane/go-datpack/pkg/datpack"
	"github.com/kelvane/go-datpack/pkg/store"
	"github.com/kelvane/go-datpack/pkg/unpack"
)

// ProgressCallback is called for various progress events
type ProgressCallback func(event ProgressEvent)

// ProgressEvent contains progress information
type ProgressEvent struct {
	Type    EventType
	Name    string
	Offset  int64
	Current int64
	Total   int64
}

// EventType indicates the type of progress event
type EventType int

const (
	EventStart EventType = iota
	EventFileStart
	EventFileProgress
	EventFileComplete
	EventComplete
	EventError
)

// OutputName returns the conventional output file name for the file at
// off: the offset in hex plus the extension its kind implies, with .xz
// appended when the output is recompressed.
func OutputName(off int64, kind store.FileKind, compressed bool) string {
	name := fmt.Sprintf("file_%s%s", datpack.FormatOffset(off), kind.Ext())
	if compressed {
		name += ".xz"
	}
	return name
}

// Extract reconstructs the files at the requested offsets and writes each
// one into OutputDir, named by OutputName. A file that cannot be read or
// written is recorded in the result and extraction continues with the
// next offset. Workers share nothing but the result; every worker holds
// its own handle on the archive.
func Extract(opts *Options, progressCb ProgressCallback) (*Result, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// Fail before creating anything if the archive is not there
	if _, err := os.Stat(opts.ArchivePath); err != nil {
		return nil, fmt.Errorf("stat archive: %w", err)
	}

	// Drop duplicate offsets; two workers must never race on one output
	tracker := datpack.NewPathTracker()
	offsets := make([]int64, 0, len(opts.Offsets))
	for _, off := range opts.Offsets {
		if tracker.CheckDuplicate(datpack.FormatOffset(off)) {
			continue
		}
		offsets = append(offsets, off)
	}

	result := &Result{FilesTotal: len(offsets)}
	if opts.Digest {
		result.Digests = make(map[int64]string, len(offsets))
	}
	if dropped := len(opts.Offsets) - len(offsets); dropped > 0 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%d duplicate offsets dropped", dropped))
	}

	// Create output directory
	if err := os.MkdirAll(opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:  EventStart,
			Total: int64(len(offsets)),
		})
	}

	jobs := make(chan int64, len(offsets))
	for _, off := range offsets {
		jobs <- off
	}
	close(jobs)

	workers := opts.Workers
	if workers > len(offsets) {
		workers = len(offsets)
	}

	ex := &extractor{opts: opts, result: result, progressCb: progressCb}

	var eg errgroup.Group
	for i := 0; i < workers; i++ {
		eg.Go(func() error {
			archiveFile, err := os.Open(opts.ArchivePath)
			if err != nil {
				return fmt.Errorf("open archive: %w", err)
			}
			defer archiveFile.Close()

			reader := unpack.NewReader(archiveFile, unpack.WithLogf(ex.warnf))
			for off := range jobs {
				ex.extractOne(reader, off)
			}
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return result, err
	}

	if progressCb != nil {
		progressCb(ProgressEvent{
			Type:    EventComplete,
			Current: int64(result.FilesProcessed),
			Total:   int64(len(offsets)),
		})
	}

	return result, nil
}

// extractor owns the mutable state shared by the workers of one run
type extractor struct {
	opts       *Options
	result     *Result
	progressCb ProgressCallback

	mu sync.Mutex // guards result
}

func (ex *extractor) warnf(format string, args ...any) {
	ex.mu.Lock()
	ex.result.Warnings = append(ex.result.Warnings, fmt.Sprintf(format, args...))
	ex.mu.Unlock()
}

func (ex *extractor) fail(off int64, name string, err error) {
	ex.mu.Lock()
	ex.result.Errors = append(ex.result.Errors, err)
	ex.mu.Unlock()

	if ex.progressCb != nil {
		ex.progressCb(ProgressEvent{
			Type:   EventError,
			Name:   name,
			Offset: off,
		})
	}
}

// extractOne reconstructs a single file and writes it out
func (ex *extractor) extractOne(reader *unpack.Reader, off int64) {
	file, err := reader.ReadFile(off)
	if err != nil {
		ex.fail(off, datpack.FormatOffset(off), err)
		return
	}

	name := OutputName(off, file.Meta.Kind, ex.opts.Compress)
	outPath := filepath.Join(ex.opts.OutputDir, name)
	total := int64(len(file.Data))

	if ex.progressCb != nil {
		ex.progressCb(ProgressEvent{
			Type:   EventFileStart,
			Name:   name,
			Offset: off,
			Total:  total,
		})
	}

	// Progress counts decoded bytes handed to the output, not the
	// recompressed bytes reaching disk
	var onWrite func(n int)
	if ex.progressCb != nil {
		var current int64
		onWrite = func(n int) {
			current += int64(n)
			ex.progressCb(ProgressEvent{
				Type:    EventFileProgress,
				Name:    name,
				Offset:  off,
				Current: current,
				Total:   total,
			})
		}
	}

	written, err := ex.writeOutput(outPath, file.Data, onWrite)
	if err != nil {
		ex.fail(off, name, fmt.Errorf("%s: %w", name, err))
		return
	}

	var digest string
	if ex.opts.Digest {
		sum := blake3.Sum256(file.Data)
		digest = fmt.Sprintf("%x", sum)
	}

	ex.mu.Lock()
	ex.result.FilesProcessed++
	ex.result.DecodedBytes += uint64(len(file.Data))
	ex.result.WrittenBytes += written
	if ex.opts.Digest {
		ex.result.Digests[off] = digest
	}
	ex.mu.Unlock()

	if ex.progressCb != nil {
		ex.progressCb(ProgressEvent{
			Type:    EventFileComplete,
			Name:    name,
			Offset:  off,
			Current: total,
			Total:   total,
		})
	}
}

// writeOutput writes data to path, optionally as an xz stream, and
// returns the byte count that reached disk
func (ex *extractor) writeOutput(path string, data []byte, onWrite func(n int)) (uint64, error) {
	if !ex.opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return 0, ErrFileExists
		}
	}

	outFile, err := os.Create(path)
	if err != nil {
		return 0, fmt.Errorf("create output file: %w", err)
	}

	counting := &datpack.CountingWriter{Writer: outFile}
	var w io.Writer = counting
	var xzWriter *xz.Writer
	if ex.opts.Compress {
		xzWriter, err = xz.NewWriter(counting)
		if err != nil {
			outFile.Close()
			os.Remove(path)
			return 0, fmt.Errorf("create xz writer: %w", err)
		}
		w = xzWriter
	}

	progress := &datpack.ProgressWriter{Writer: w, OnWrite: onWrite}
	_, err = progress.Write(data)
	if err == nil && xzWriter != nil {
		err = xzWriter.Close()
	}
	if closeErr := outFile.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(path)
		return 0, fmt.Errorf("write output: %w", err)
	}

	return uint64(counting.Count), nil
}
