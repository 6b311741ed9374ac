// Package errors defines the coded errors shared by the engine, the scanner,
// the CLI and the HTTP API.
//
// An [Error] pairs a [Code] with a message for users. The code decides how a
// front end reacts: the server maps it to an HTTP status, the terminal UI
// shows the message as a transient status line, the CLI prints both.
//
// The viewer engine only ever returns [ErrCodeNotFound]: a referenced node is
// missing from the complete graph (reveal) or from the visible set (expand,
// reposition).
//
//	err := errors.New(errors.ErrCodeNotFound, "node %q is not visible", id)
//	if errors.IsNotFound(err) {
//	    // show a transient message, keep rendering
//	}
//
//	err = errors.Wrap(errors.ErrCodeInvalidFormat, cause, "decode %s", path)
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category. HTTP handlers map it to a
// status and the CLI prints it as a prefix.
type Code string

const (
	// Malformed input: request bodies, flags, documents, config files.
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidFormat Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig Code = "INVALID_CONFIG"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeInvalidNodeID Code = "INVALID_NODE_ID"

	// A node is not in the graph (or not visible), or a file is missing.
	ErrCodeNotFound     Code = "NOT_FOUND"
	ErrCodeFileNotFound Code = "FILE_NOT_FOUND"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error carries a Code, a message meant for users and an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause == nil {
		return string(e.Code) + ": " + e.Message
	}
	return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an error with code and a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap is New with a cause, which stays reachable through errors.Is and errors.As.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// NotFound is New(ErrCodeNotFound, ...).
func NotFound(format string, args ...any) *Error {
	return New(ErrCodeNotFound, format, args...)
}

// Is reports whether any *Error in err's chain has code. A FILE_NOT_FOUND
// wrapped as INVALID_CONFIG therefore matches both codes.
func Is(err error, code Code) bool {
	for err != nil {
		var e *Error
		if !errors.As(err, &e) {
			return false
		}
		if e.Code == code {
			return true
		}
		err = e.Cause
	}
	return false
}

// IsNotFound reports whether err carries [ErrCodeNotFound].
func IsNotFound(err error) bool {
	return Is(err, ErrCodeNotFound)
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without code or
// cause, or err.Error() for other errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
