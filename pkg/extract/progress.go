// pkg/extract/progress.go
package extract

import (
	"github.com/kelvane/go-datpack/pkg/datpack"
	"github.com/vbauerster/mpb/v8"
)

// ProgressBarCallback creates a progress callback that displays multi-progress bars
// Returns the callback function and the progress container (call Wait() after extraction)
func ProgressBarCallback() (ProgressCallback, *mpb.Progress) {
	genericCb, progress := datpack.ProgressBarCallback()

	// Wrap the generic callback to adapt extract.ProgressEvent to datpack.ProgressEvent
	callback := func(event ProgressEvent) {
		genericCb(datpack.ProgressEvent{
			Type:    datpack.EventType(event.Type),
			Name:    event.Name,
			Offset:  event.Offset,
			Current: event.Current,
			Total:   event.Total,
		})
	}

	return callback, progress
}

// FormatSummary formats an extraction result into a human-readable summary string
func FormatSummary(result *Result) string {
	return datpack.FormatSummary(result)
}

// FormatSize formats bytes into human-readable string
func FormatSize(bytes uint64) string {
	return datpack.FormatSize(bytes)
}
