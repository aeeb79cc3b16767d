// Copyright (c) 2025 The fuseki-manager Authors
// Licensed under the MIT License. See LICENSE file in the project root for details.

package fuseki

import (
	"errors"
	"fmt"
)

// Kind is a machine-readable error category.
type Kind string

const (
	// KindConnection indicates the server could not be reached (DNS, refused, timeout).
	KindConnection Kind = "connection"
	// KindResponse indicates an unexpected status code with no more specific mapping.
	KindResponse Kind = "response"
	// KindDatasetNotFound indicates a 404 on a dataset-scoped operation.
	KindDatasetNotFound Kind = "dataset_not_found"
	// KindTaskNotFound indicates a 404 on a task lookup.
	KindTaskNotFound Kind = "task_not_found"
	// KindDatasetExists indicates a 409 on dataset creation.
	KindDatasetExists Kind = "dataset_already_exists"
	// KindInvalidFile indicates an upload source that cannot be read.
	KindInvalidFile Kind = "invalid_file"
	// KindEmptyResult indicates a query returned no rows where at least one was required.
	KindEmptyResult Kind = "empty_result"
	// KindNotUnique indicates a query returned several rows where at most one was allowed.
	KindNotUnique Kind = "not_unique"
	// KindArgument indicates a local precondition violation.
	KindArgument Kind = "invalid_argument"
)

// Error is the single error type returned by this package.
// StatusCode is set when the error was produced from an HTTP response.
type Error struct {
	Kind       Kind
	Message    string
	StatusCode int
	Err        error
}

func (e *Error) Error() string {
	msg := string(e.Kind)
	if msg == "" {
		msg = "fuseki client error"
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil && (e.Message == "" || e.Message != e.Err.Error()) {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches sentinel errors of the same kind. ErrClient matches every *Error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok || t.Message != "" || t.Err != nil {
		return false
	}
	return t.Kind == "" || t.Kind == e.Kind
}

// Sentinels for use with errors.Is.
var (
	ErrClient          = &Error{}
	ErrConnection      = &Error{Kind: KindConnection}
	ErrResponse        = &Error{Kind: KindResponse}
	ErrDatasetNotFound = &Error{Kind: KindDatasetNotFound}
	ErrTaskNotFound    = &Error{Kind: KindTaskNotFound}
	ErrDatasetExists   = &Error{Kind: KindDatasetExists}
	ErrInvalidFile     = &Error{Kind: KindInvalidFile}
	ErrEmptyResult     = &Error{Kind: KindEmptyResult}
	ErrNotUnique       = &Error{Kind: KindNotUnique}
	ErrInvalidArgument = &Error{Kind: KindArgument}
)

// KindOf returns the kind of the first *Error in err's chain, or "" if there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

func newError(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func wrapError(kind Kind, err error) *Error {
	return &Error{Kind: kind, Message: err.Error(), Err: err}
}
