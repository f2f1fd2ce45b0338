// pkg/datpack/io.go
package datpack

import "io"

// ProgressWriter wraps an io.Writer with progress tracking
type ProgressWriter struct {
	Writer  io.Writer
	OnWrite func(n int)
}

func (pw *ProgressWriter) Write(p []byte) (n int, err error) {
	n, err = pw.Writer.Write(p)
	if n > 0 && pw.OnWrite != nil {
		pw.OnWrite(n)
	}
	return n, err
}

// CountingWriter wraps an io.Writer and counts bytes written
type CountingWriter struct {
	Writer io.Writer
	Count  int64
}

func (cw *CountingWriter) Write(p []byte) (n int, err error) {
	n, err = cw.Writer.Write(p)
	cw.Count += int64(n)
	return n, err
}

// PathTracker tracks seen paths and detects duplicates
type PathTracker struct {
	seen map[string]bool
}

// NewPathTracker creates a new PathTracker
func NewPathTracker() *PathTracker {
	return &PathTracker{
		seen: make(map[string]bool),
	}
}

// CheckDuplicate returns true if the path was already seen, otherwise marks it as seen
func (pt *PathTracker) CheckDuplicate(path string) bool {
	if pt.seen[path] {
		return true
	}
	pt.seen[path] = true
	return false
}
