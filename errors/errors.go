package errors

import (
	"errors"
	"io/fs"
	"strings"
)

// Kind categorizes a resolution failure.
type Kind string

const (
	KindProtocol     Kind = "protocol"      // wrong read-callback capability tag
	KindAccessDenied Kind = "access_denied" // target outside the allow-list
	KindNotFound     Kind = "not_found"     // target does not exist
	KindInvalidFile  Kind = "invalid_file"  // target is not a regular file
	KindIO           Kind = "io"            // underlying OS-level fault
)

// Error is the structured error type used at the resolution boundary.
type Error struct {
	Cause  error
	Kind   Kind
	Path   string // resolved target, when one was determined
	Detail string
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	b.WriteByte('[')
	b.WriteString(string(e.Kind))
	b.WriteByte(']')

	if e.Path != "" {
		b.WriteByte(' ')
		b.WriteString(e.Path)
	}

	if e.Detail != "" {
		b.WriteString(": ")
		b.WriteString(e.Detail)
	}

	if e.Cause != nil {
		b.WriteString(" (caused by: ")
		b.WriteString(e.Cause.Error())
		b.WriteByte(')')
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target matches this error by Kind.
func (e *Error) Is(target error) bool {
	if t, ok := target.(*Error); ok {
		return e.Kind == t.Kind
	}
	return false
}

// Message returns the human-readable diagnostic surfaced through a failed
// read result. The strings are stable; tooling downstream of the compiler
// displays them verbatim.
func (e *Error) Message() string {
	switch e.Kind {
	case KindProtocol:
		return "ReadFile callback used as callback kind " + e.Detail
	case KindAccessDenied:
		return "File outside of allowed directories."
	case KindNotFound:
		return "File not found."
	case KindInvalidFile:
		return "Not a valid file."
	default:
		msg := "I/O error in read callback"
		if e.Detail != "" {
			return msg + ": " + e.Detail
		}
		if e.Cause != nil {
			return msg + ": " + e.Cause.Error()
		}
		return msg + "."
	}
}

// Convenience constructors for the five kinds.

// Protocol creates a caller contract violation error for an unrecognized
// callback kind.
func Protocol(kind string) *Error {
	return &Error{Kind: KindProtocol, Detail: kind}
}

// AccessDenied creates an error for a target outside the allow-list.
func AccessDenied(path string) *Error {
	return &Error{Kind: KindAccessDenied, Path: path}
}

// NotFound creates an error for a target that does not exist.
func NotFound(path string) *Error {
	return &Error{Kind: KindNotFound, Path: path}
}

// InvalidFile creates an error for a target that is not a regular file.
func InvalidFile(path string) *Error {
	return &Error{Kind: KindInvalidFile, Path: path}
}

// IO wraps an underlying OS-level fault.
func IO(path string, cause error) *Error {
	return &Error{Kind: KindIO, Path: path, Cause: cause}
}

// FromOS is the single translation point converting an underlying
// filesystem fault into one of the taxonomy's kinds. Non-existence maps to
// KindNotFound; everything else, including permission faults hit during
// the actual read, maps to KindIO. The sandbox verdict belongs to the
// prefix guard, not the kernel.
func FromOS(path string, err error) *Error {
	if errors.Is(err, fs.ErrNotExist) {
		return NotFound(path)
	}
	return IO(path, err)
}
