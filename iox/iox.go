// Package iox provides small I/O helpers: byte accounting and resource
// cleanup.
package iox

import "io"

// CountingWriter wraps an io.Writer and tracks the number of bytes
// successfully written through it. Not safe for concurrent use.
type CountingWriter struct {
	w io.Writer
	n int64
}

// NewCountingWriter wraps w.
func NewCountingWriter(w io.Writer) *CountingWriter {
	return &CountingWriter{w: w}
}

// Write forwards to the wrapped writer and accounts the bytes it
// reported written, even on short writes.
func (cw *CountingWriter) Write(p []byte) (int, error) {
	n, err := cw.w.Write(p)
	cw.n += int64(n)
	return n, err
}

// Count returns the number of bytes written so far.
func (cw *CountingWriter) Count() int64 { return cw.n }

// DiscardClose closes c and discards the error.
// Use in defer statements where close errors are unactionable:
//
//	defer iox.DiscardClose(f)
func DiscardClose(c io.Closer) { _ = c.Close() }

// CloseFunc returns a cleanup function that closes c.
// Designed for t.Cleanup registration:
//
//	t.Cleanup(iox.CloseFunc(f))
func CloseFunc(c io.Closer) func() {
	return func() { _ = c.Close() }
}
