// Package errors defines the coded errors returned by radialflow's outer
// layers: input decoding, configuration, layout engines and the CLI.
//
// The geometric core (geom, route, radial, highlight) never returns errors for
// well-formed input. Everything around it reports failures as [*Error] values
// so the CLI can map them to exit messages and tests can match on [Code]
// instead of on message text.
//
// # Codes
//
// Codes are upper-case and grouped by prefix:
//   - INVALID_*: rejected input, flags or configuration
//   - *_NOT_FOUND: missing files or entities
//   - LAYOUT_ENGINE: failures inside an external layout engine
//   - INTERNAL_ERROR: everything unexpected
//
// # Usage
//
//	if len(records) == 0 {
//	    return errors.New(errors.ErrCodeInvalidInput, "no records in %s", path)
//	}
//
//	data, err := os.ReadFile(path)
//	if err != nil {
//	    return errors.Wrap(errors.ErrCodeFileNotFound, err, "read %s", path)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error category.
type Code string

const (
	// Rejected input
	ErrCodeInvalidInput     Code = "INVALID_INPUT"
	ErrCodeInvalidConfig    Code = "INVALID_CONFIG"
	ErrCodeInvalidFormat    Code = "INVALID_FORMAT"
	ErrCodeInvalidAlgorithm Code = "INVALID_ALGORITHM"
	ErrCodeInvalidViewport  Code = "INVALID_VIEWPORT"
	ErrCodeInvalidPath      Code = "INVALID_PATH"

	// Missing resources
	ErrCodeFileNotFound   Code = "FILE_NOT_FOUND"
	ErrCodeEntityNotFound Code = "ENTITY_NOT_FOUND"

	// Collaborators
	ErrCodeLayoutEngine Code = "LAYOUT_ENGINE"
	ErrCodeCache        Code = "CACHE_ERROR"

	ErrCodeInternal    Code = "INTERNAL_ERROR"
	ErrCodeUnsupported Code = "UNSUPPORTED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause to errors.Is and errors.As.
func (e *Error) Unwrap() error { return e.Cause }

// New returns an *Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an *Error that carries cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), Cause: cause}
}

// Is reports whether the outermost *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the outermost *Error in err's chain, or "".
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// UserMessage returns the message of the outermost *Error without its code
// prefix, or err.Error() for foreign errors.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}
