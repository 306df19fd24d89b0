// Package errors defines the failure kinds raised by file operations and the
// dispatcher. Expected negative outcomes (an existing folder, a file already
// present at a move destination) are not errors; they travel inside results.
package errors

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is matched by every argument or catalog lookup failure
var ErrInvalidArgument = errors.New("invalid argument")

// Kind names used for metrics labels and status mapping
const (
	KindNotFound         = "not_found"
	KindScan             = "scan"
	KindIO               = "io"
	KindInvalidArgument  = "invalid_argument"
	KindUnknownOperation = "unknown_operation"
	KindInternal         = "internal"
)

// NotFoundError reports a required directory that does not exist.
type NotFoundError struct {
	// Role describes the directory, e.g. "Directory" or "Source directory"
	Role string
	Path string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	role := e.Role
	if role == "" {
		role = "Directory"
	}
	return fmt.Sprintf("%s does not exist: %s", role, e.Path)
}

// ScanError reports a traversal that failed at its root.
type ScanError struct {
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *ScanError) Error() string {
	return fmt.Sprintf("scan %s: %v", e.Path, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *ScanError) Unwrap() error {
	return e.Cause
}

// IOError reports an OS failure while creating or moving.
type IOError struct {
	Op    string
	Path  string
	Cause error
}

// Error implements the error interface.
func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Cause)
}

// Unwrap returns the underlying cause for errors.Is/As support.
func (e *IOError) Unwrap() error {
	return e.Cause
}

// InvalidArgumentError reports an argument that is missing or cannot be coerced.
type InvalidArgumentError struct {
	Param   string
	Message string
}

// Error implements the error interface.
func (e *InvalidArgumentError) Error() string {
	if e.Param != "" {
		return fmt.Sprintf("invalid argument %s: %s", e.Param, e.Message)
	}
	return fmt.Sprintf("invalid argument: %s", e.Message)
}

// Is makes errors.Is(err, ErrInvalidArgument) hold.
func (e *InvalidArgumentError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// UnknownOperationError reports an operation name missing from the catalog.
type UnknownOperationError struct {
	Name string
}

// Error implements the error interface.
func (e *UnknownOperationError) Error() string {
	return fmt.Sprintf("Unknown action: %s", e.Name)
}

// Is makes errors.Is(err, ErrInvalidArgument) hold.
func (e *UnknownOperationError) Is(target error) bool {
	return target == ErrInvalidArgument
}

// InvalidArgument is a shorthand constructor
func InvalidArgument(param, format string, args ...interface{}) error {
	return &InvalidArgumentError{Param: param, Message: fmt.Sprintf(format, args...)}
}

// Kind classifies err into one of the Kind* names.
func Kind(err error) string {
	if err == nil {
		return ""
	}

	var (
		notFound *NotFoundError
		scan     *ScanError
		ioErr    *IOError
		unknown  *UnknownOperationError
	)

	switch {
	case errors.As(err, &unknown):
		return KindUnknownOperation
	case errors.Is(err, ErrInvalidArgument):
		return KindInvalidArgument
	case errors.As(err, &notFound):
		return KindNotFound
	case errors.As(err, &scan):
		return KindScan
	case errors.As(err, &ioErr):
		return KindIO
	default:
		return KindInternal
	}
}

// IsClientError reports whether err was caused by the caller's input.
func IsClientError(err error) bool {
	return errors.Is(err, ErrInvalidArgument)
}
