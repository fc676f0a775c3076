// Package errors provides standardized error handling for declutter.
// It defines the error kinds the interactive loop distinguishes between,
// along with helpers for consistent creation, wrapping, and matching.
package errors

import (
	"errors"
	"fmt"
)

// Standard errors package functions re-exported for convenience
var (
	// Unwrap unwraps an error to access the underlying error
	Unwrap = errors.Unwrap
	// Is reports whether any error in err's chain matches target
	Is = errors.Is
	// As finds the first error in err's chain that matches target
	As = errors.As
)

// Kind represents the kind of error
type Kind int

// Error kinds
const (
	Unknown Kind = iota
	// Shortcut input kinds
	ReservedKey
	InvalidKeyLength
	MalformedInput
	NotADirectory
	PermissionDenied
	// Filesystem operation kinds
	SourceMissing
	MoveFailed
	DeleteFailed
	// History kinds
	HistoryCorrupt
	HistoryWriteFailed
)

// ApplicationError is the base error type for all declutter errors
type ApplicationError struct {
	msg  string
	err  error
	kind Kind
}

// Error returns the error message
func (e *ApplicationError) Error() string {
	if e.err != nil {
		return fmt.Sprintf("%s: %v", e.msg, e.err)
	}
	return e.msg
}

// Unwrap returns the wrapped error
func (e *ApplicationError) Unwrap() error {
	return e.err
}

// Kind returns the kind of error
func (e *ApplicationError) Kind() Kind {
	return e.kind
}

// InputError represents a rejected shortcut-dialog entry. The kind tells the
// dialog which category-matched message to show before re-prompting.
type InputError struct {
	ApplicationError
	entry string
}

// NewInputError creates a new input validation error
func NewInputError(msg string, entry string, kind Kind) *InputError {
	return &InputError{
		ApplicationError: ApplicationError{
			msg:  msg,
			kind: kind,
		},
		entry: entry,
	}
}

// Error returns the input error message
func (e *InputError) Error() string {
	if e.entry != "" {
		return fmt.Sprintf("%s: %q", e.msg, e.entry)
	}
	return e.ApplicationError.Error()
}

// Entry returns the rejected input associated with the error
func (e *InputError) Entry() string {
	return e.entry
}

// FileError represents errors from filesystem operations (move, delete,
// history I/O)
type FileError struct {
	ApplicationError
	path string
}

// NewFileError creates a new file error
func NewFileError(msg string, path string, kind Kind, err error) *FileError {
	return &FileError{
		ApplicationError: ApplicationError{
			msg:  msg,
			err:  err,
			kind: kind,
		},
		path: path,
	}
}

// Error returns the file error message
func (e *FileError) Error() string {
	if e.path != "" {
		if e.err != nil {
			return fmt.Sprintf("%s: %s: %v", e.msg, e.path, e.err)
		}
		return fmt.Sprintf("%s: %s", e.msg, e.path)
	}
	return e.ApplicationError.Error()
}

// Path returns the file path associated with the error
func (e *FileError) Path() string {
	return e.path
}

// New creates a new error with a message
func New(msg string) error {
	return &ApplicationError{
		msg:  msg,
		kind: Unknown,
	}
}

// Newf creates a new error with a formatted message
func Newf(format string, args ...interface{}) error {
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		kind: Unknown,
	}
}

// Wrap wraps an existing error with additional context
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  msg,
		err:  err,
		kind: Unknown,
	}
}

// Wrapf wraps an existing error with additional formatted context
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &ApplicationError{
		msg:  fmt.Sprintf(format, args...),
		err:  err,
		kind: Unknown,
	}
}

// KindOf returns the kind carried by err, or Unknown if err carries none.
func KindOf(err error) Kind {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		return inputErr.Kind()
	}
	var fileErr *FileError
	if errors.As(err, &fileErr) {
		return fileErr.Kind()
	}
	var appErr *ApplicationError
	if errors.As(err, &appErr) {
		return appErr.Kind()
	}
	return Unknown
}

// IsReservedKey checks if the error rejects a reserved shortcut key
func IsReservedKey(err error) bool {
	return KindOf(err) == ReservedKey
}

// IsInvalidKeyLength checks if the error rejects a multi-character key
func IsInvalidKeyLength(err error) bool {
	return KindOf(err) == InvalidKeyLength
}

// IsMalformedInput checks if the error rejects a badly formed dialog line
func IsMalformedInput(err error) bool {
	return KindOf(err) == MalformedInput
}

// IsNotADirectory checks if the error rejects a missing or non-directory path
func IsNotADirectory(err error) bool {
	return KindOf(err) == NotADirectory
}

// IsPermissionDenied checks if the error indicates insufficient permissions
func IsPermissionDenied(err error) bool {
	return KindOf(err) == PermissionDenied
}

// IsSourceMissing checks if the error indicates a vanished source file
func IsSourceMissing(err error) bool {
	return KindOf(err) == SourceMissing
}
