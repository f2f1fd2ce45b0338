// pkg/datpack/helpers.go
package datpack

import (
	"fmt"
	"strconv"
	"strings"
	"sync"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

// ProgressEvent is a generic progress event shared by the operation packages
type ProgressEvent struct {
	Type    EventType
	Name    string // output name of the file being worked on
	Offset  int64  // archive offset of the file being worked on
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

// Result is a generic interface over operation results
type Result interface {
	GetFilesTotal() int
	GetFilesProcessed() int
	GetErrors() []error
	GetDecodedBytes() uint64
	GetWrittenBytes() uint64
	Success() bool
}

// ProgressBarCallback creates a progress callback that displays multi-progress bars
// Returns the callback function and the progress container (call Wait() after the operation)
func ProgressBarCallback() (func(ProgressEvent), *mpb.Progress) {
	progress := mpb.New(
		mpb.WithWidth(60),
		mpb.WithRefreshRate(100),
	)

	var overallBar *mpb.Bar
	var fileBars sync.Map // map[string]*mpb.Bar

	callback := func(event ProgressEvent) {
		switch event.Type {
		case EventStart:
			// Create overall progress bar (at bottom via priority)
			overallBar = progress.AddBar(event.Total,
				mpb.PrependDecorators(
					decor.Name("Total", decor.WC{C: decor.DindentRight | decor.DextraSpace}),
					decor.CountersNoUnit("%d / %d", decor.WCSyncWidth),
				),
				mpb.AppendDecorators(
					decor.Percentage(decor.WC{W: 5}),
				),
				mpb.BarPriority(1000), // High priority = bottom
			)

		case EventFileStart:
			// Skip creating bars for empty files (Total=0) - they complete instantly
			if event.Total == 0 {
				return
			}
			// Create a bar for this file
			shortName := TruncateLeft(event.Name, 30)
			bar := progress.AddBar(event.Total,
				mpb.PrependDecorators(
					decor.Name(shortName, decor.WC{C: decor.DindentRight | decor.DextraSpace, W: 32}),
				),
				mpb.AppendDecorators(
					decor.CountersKibiByte("% .1f / % .1f", decor.WC{W: 18}),
					decor.Percentage(decor.WC{W: 5}),
				),
				mpb.BarRemoveOnComplete(),
			)
			fileBars.Store(event.Name, bar)

		case EventFileProgress:
			if bar, ok := fileBars.Load(event.Name); ok {
				bar.(*mpb.Bar).SetCurrent(event.Current)
			}

		case EventFileComplete:
			if bar, ok := fileBars.Load(event.Name); ok {
				b := bar.(*mpb.Bar)
				// Ensure bar completes - SetTotal then SetCurrent for proper completion
				if event.Total > 0 {
					b.SetCurrent(event.Total)
				} else {
					// For zero-size files, abort to remove the bar
					b.Abort(true)
				}
				fileBars.Delete(event.Name)
			}
			if overallBar != nil {
				overallBar.Increment()
			}

		case EventError:
			if bar, ok := fileBars.Load(event.Name); ok {
				bar.(*mpb.Bar).Abort(true)
				fileBars.Delete(event.Name)
			}
			if overallBar != nil {
				overallBar.Increment()
			}
		}
	}

	return callback, progress
}

// FormatSummary formats a result into a human-readable summary string
func FormatSummary(result Result) string {
	var sb strings.Builder

	errors := result.GetErrors()
	if len(errors) > 0 {
		fmt.Fprintf(&sb, "Completed with %d errors:\n", len(errors))
		for _, e := range errors {
			fmt.Fprintf(&sb, "  - %v\n", e)
		}
		sb.WriteString("\n")
	}

	sb.WriteString("Summary:\n")
	fmt.Fprintf(&sb, "  Files extracted: %d / %d\n", result.GetFilesProcessed(), result.GetFilesTotal())
	fmt.Fprintf(&sb, "  Decoded size:    %.2f MiB\n", float64(result.GetDecodedBytes())/1024/1024)
	fmt.Fprintf(&sb, "  Written size:    %.2f MiB\n", float64(result.GetWrittenBytes())/1024/1024)
	if result.GetDecodedBytes() > 0 && result.GetWrittenBytes() != result.GetDecodedBytes() {
		ratio := float64(result.GetWrittenBytes()) / float64(result.GetDecodedBytes()) * 100
		fmt.Fprintf(&sb, "  Ratio:           %.1f%%\n", ratio)
	}

	return sb.String()
}

// FormatSize formats bytes into human-readable string
func FormatSize(bytes uint64) string {
	const (
		KB = 1024
		MB = 1024 * KB
		GB = 1024 * MB
		TB = 1024 * GB
	)

	switch {
	case bytes >= TB:
		return fmt.Sprintf("%.2f TB", float64(bytes)/float64(TB))
	case bytes >= GB:
		return fmt.Sprintf("%.2f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.2f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.2f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}

// FormatOffset formats an archive offset in the conventional 8-digit hex form
func FormatOffset(off int64) string {
	return fmt.Sprintf("0x%08X", off)
}

// ParseOffset parses an archive offset in decimal or 0x-prefixed hex form.
// Leading zeros never switch the base, so zero-padded decimal stays decimal.
func ParseOffset(arg string) (int64, error) {
	s, base := arg, 10
	if strings.HasPrefix(s, "0x") || strings.HasPrefix(s, "0X") {
		s, base = s[2:], 16
	}
	off, err := strconv.ParseInt(s, base, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid offset %q", arg)
	}
	if off < 0 {
		return 0, fmt.Errorf("invalid offset %q: must not be negative", arg)
	}
	return off, nil
}

// TruncateLeft truncates a name from the left to fit maxLen, preserving the tail
func TruncateLeft(name string, maxLen int) string {
	if len(name) <= maxLen {
		return name
	}
	return "..." + name[len(name)-(maxLen-3):]
}
