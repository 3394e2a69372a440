// Package skillerr defines the error kinds reported by the skill tools.
//
// Every failure is rendered to the caller as {"error": "<message>"}; the kind
// exists so format layers and commands can tell failures apart internally.
package skillerr

import (
	"errors"
	"fmt"
)

// Kind classifies a failure.
type Kind int

const (
	// KindUnknown is any error that did not originate from this package.
	KindUnknown Kind = iota
	// KindFileNotFound means the target file does not exist.
	KindFileNotFound
	// KindInvalidReference means a sheet, cell, range or table reference is wrong.
	KindInvalidReference
	// KindMalformedInput means an argument or flag value could not be parsed.
	KindMalformedInput
	// KindIOFailure means the file could not be opened, parsed or saved.
	KindIOFailure
)

func (k Kind) String() string {
	switch k {
	case KindFileNotFound:
		return "file_not_found"
	case KindInvalidReference:
		return "invalid_reference"
	case KindMalformedInput:
		return "malformed_input"
	case KindIOFailure:
		return "io_failure"
	default:
		return "unknown"
	}
}

// Error is a classified failure. Msg is what the caller sees.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// FileNotFound reports a missing file by its resolved path.
func FileNotFound(path string) *Error {
	return &Error{Kind: KindFileNotFound, Msg: "File not found: " + path}
}

// InvalidReference reports a bad sheet/cell/range/table reference.
func InvalidReference(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidReference, Msg: fmt.Sprintf(format, args...)}
}

// MalformedInput reports an unparseable argument.
func MalformedInput(format string, args ...any) *Error {
	return &Error{Kind: KindMalformedInput, Msg: fmt.Sprintf(format, args...)}
}

// IOFailure wraps an error raised while opening, parsing or saving a file.
// The wrapped error's text is kept as the message.
func IOFailure(err error) *Error {
	return &Error{Kind: KindIOFailure, Msg: err.Error(), Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
