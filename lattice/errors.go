// ABOUTME: Error types for the lattice parsing pipeline: line-numbered format errors
// ABOUTME: and topologically malformed state errors, distinct from wrapped I/O errors.
package lattice

import "fmt"

// UnknownLine is the line number used when a format error is constructed
// outside of an active file-reading context.
const UnknownLine = -1

// ParseError reports a lattice format violation: a line that matches neither
// the edge nor the terminal pattern, or a numeric field that fails to parse.
// Line is 1-based; UnknownLine means no reader context was available.
type ParseError struct {
	Line int
	Msg  string
}

// Error renders the message with the originating line number appended.
func (e *ParseError) Error() string {
	return fmt.Sprintf("%s (on line: %d)", e.Msg, e.Line)
}

// newParseError builds a ParseError with no line context; the file reader
// stamps the real line number before surfacing it.
func newParseError(format string, args ...any) *ParseError {
	return &ParseError{Line: UnknownLine, Msg: fmt.Sprintf(format, args...)}
}

// MalformedStateError reports a state that has incoming edges but no outgoing
// edges while a non-word set is configured. Such a state cannot be classified.
type MalformedStateError struct {
	State int
}

func (e *MalformedStateError) Error() string {
	return fmt.Sprintf("state %d has incoming edges but no outgoing edges", e.State)
}
