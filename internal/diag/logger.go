package diag

import (
	"fmt"
	"io"
)

// Logger is the external collaborator every pipeline stage depends on
// (spec.md §1: "the logging sink... treated as an external collaborator").
// It is deliberately a single-method dispatch contract.
type Logger interface {
	Log(m Message)
}

// WriterLogger is the default Logger, writing one tagged line per entry to
// an io.Writer. Grounded on the plain fmt.Fprintf-to-stderr style the
// teacher's cmd/dwscript/cmd/run.go uses for its own diagnostics — no
// logging library is introduced (see DESIGN.md).
type WriterLogger struct {
	Out io.Writer
}

// NewWriterLogger builds a WriterLogger over w.
func NewWriterLogger(w io.Writer) *WriterLogger {
	return &WriterLogger{Out: w}
}

// Log writes m to the underlying writer. Print entries are written bare
// (their text is the program's stdout); every other severity is tagged
// with its origin and severity, per spec.md §7.
func (l *WriterLogger) Log(m Message) {
	if m.Severity == Print {
		fmt.Fprintln(l.Out, m.Text())
		return
	}
	fmt.Fprintln(l.Out, m.Tagged())
}

// CollectingLogger buffers every entry in order; used by the Linker (which
// collects rather than aborts on error, per spec.md §4.6) and by the test
// harness (which replays the buffer against ///> / ///< directives).
type CollectingLogger struct {
	Entries []Message
}

// Log appends m to Entries.
func (l *CollectingLogger) Log(m Message) {
	l.Entries = append(l.Entries, m)
}

// HasErrors reports whether any buffered entry is Error severity.
func (l *CollectingLogger) HasErrors() bool {
	for _, m := range l.Entries {
		if m.Severity == Error {
			return true
		}
	}
	return false
}

// TeeLogger forwards every entry to each of Loggers, in order.
type TeeLogger struct {
	Loggers []Logger
}

// Log forwards m to every wrapped Logger.
func (l *TeeLogger) Log(m Message) {
	for _, sub := range l.Loggers {
		sub.Log(m)
	}
}
