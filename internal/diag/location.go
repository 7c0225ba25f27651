// Package diag implements the structured diagnostics (Message, Location)
// and the Logger contract consumed by every stage of the pipeline.
//
// Formatting follows spec.md §6/§7 exactly: "source(line,col): message",
// collapsing to a range form when start and end differ, and degrading
// gracefully when line/column are unknown (0).
package diag

import "fmt"

// Location is a half-open source span. Line0/Column0 == 0 means unknown,
// matching spec.md §3.
type Location struct {
	Source  string
	Line0   int
	Column0 int
	Line1   int
	Column1 int
}

// NewLocation builds a zero-width location at a single position.
func NewLocation(source string, line, column int) Location {
	return Location{Source: source, Line0: line, Column0: column, Line1: line, Column1: column}
}

// Unknown reports whether the location carries no position information.
func (l Location) Unknown() bool {
	return l.Line0 == 0 && l.Column0 == 0
}

// Span returns the location that covers both l and other. Both must share
// the same Source; if either is Unknown, the other is returned unchanged.
func (l Location) Span(other Location) Location {
	if l.Unknown() {
		return other
	}
	if other.Unknown() {
		return l
	}
	out := l
	if other.Line0 < out.Line0 || (other.Line0 == out.Line0 && other.Column0 < out.Column0) {
		out.Line0, out.Column0 = other.Line0, other.Column0
	}
	if other.Line1 > out.Line1 || (other.Line1 == out.Line1 && other.Column1 > out.Column1) {
		out.Line1, out.Column1 = other.Line1, other.Column1
	}
	return out
}

// String renders the location per spec.md §7's diagnostic format, minus
// the trailing ": message" (that's added by Message.String).
func (l Location) String() string {
	if l.Line0 == 0 {
		return l.Source
	}
	if l.Column0 == 0 {
		if l.Line1 != l.Line0 {
			return fmt.Sprintf("%s(%d-%d)", l.Source, l.Line0, l.Line1)
		}
		return fmt.Sprintf("%s(%d)", l.Source, l.Line0)
	}
	if l.Line1 != l.Line0 || l.Column1 != l.Column0 {
		if l.Line1 != l.Line0 {
			return fmt.Sprintf("%s(%d-%d,%d-%d)", l.Source, l.Line0, l.Line1, l.Column0, l.Column1)
		}
		return fmt.Sprintf("%s(%d,%d-%d)", l.Source, l.Line0, l.Column0, l.Column1)
	}
	return fmt.Sprintf("%s(%d,%d)", l.Source, l.Line0, l.Column0)
}
