package convert

import (
	"io"

	"github.com/pithecene-io/bgc/iox"
)

// lineWriter appends rendered text to the output sink. The first write
// failure is wrapped as ErrWrite; bytes already flushed stay in the sink
// (no rollback), so callers discard the output on any conversion error.
type lineWriter struct {
	cw *iox.CountingWriter
}

func newLineWriter(w io.Writer) *lineWriter {
	return &lineWriter{cw: iox.NewCountingWriter(w)}
}

// writeString appends s, including any embedded or trailing newlines,
// verbatim.
func (lw *lineWriter) writeString(s string) error {
	if _, err := io.WriteString(lw.cw, s); err != nil {
		return &Error{Kind: ErrWrite, Op: "append output", Err: err}
	}
	return nil
}

// bytesWritten returns the byte count flushed so far, short writes
// included.
func (lw *lineWriter) bytesWritten() int64 {
	return lw.cw.Count()
}
