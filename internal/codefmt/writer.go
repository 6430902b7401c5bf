package codefmt

import (
	"io"
)

// Writer is a writer for generated code. Its Printf understands the extra
// verbs of [Fprintf].
type Writer struct {
	w io.Writer
}

// NewWriter creates a new [Writer].
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Write implements io.Writer.
func (w *Writer) Write(p []byte) (int, error) {
	return w.w.Write(p)
}

// Printf writes a formatted string to the underlying writer using
// [Fprintf].
func (w *Writer) Printf(format string, args ...any) (int, error) {
	return Fprintf(w.w, format, args...)
}
