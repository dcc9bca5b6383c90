// Otto - Vehicle Comparison and Recommendation Engine
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/otto

package vehicle

import (
	"errors"
)

// Kind classifies an Error.
type Kind int

const (
	// KindUnknown is returned by KindOf for errors that are not *Error.
	KindUnknown Kind = iota
	// KindInvalidArgument marks a request the caller must fix.
	KindInvalidArgument
	// KindNotFound marks ids that could not be resolved.
	KindNotFound
	// KindDependencyFailure marks a failing external collaborator.
	KindDependencyFailure
)

// String returns the kind name used in logs and API error codes.
func (k Kind) String() string {
	switch k {
	case KindInvalidArgument:
		return "invalid_argument"
	case KindNotFound:
		return "not_found"
	case KindDependencyFailure:
		return "dependency_failure"
	default:
		return "unknown"
	}
}

// Error is the typed failure returned by the comparison and recommendation engines.
type Error struct {
	Kind    Kind
	Op      string
	Message string
	Err     error
}

// Error returns the message verbatim.
func (e *Error) Error() string {
	if e.Message == "" && e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// InvalidArgument creates an Error of kind KindInvalidArgument.
func InvalidArgument(op, message string) *Error {
	return &Error{Kind: KindInvalidArgument, Op: op, Message: message}
}

// NotFound creates an Error of kind KindNotFound.
func NotFound(op, message string) *Error {
	return &Error{Kind: KindNotFound, Op: op, Message: message}
}

// DependencyFailure wraps a collaborator error.
func DependencyFailure(op string, err error) *Error {
	msg := "dependency failure"
	if err != nil {
		msg = "dependency failure: " + err.Error()
	}
	return &Error{Kind: KindDependencyFailure, Op: op, Message: msg, Err: err}
}

// KindOf returns the Kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}

// IsInvalidArgument reports whether err is an InvalidArgument failure.
func IsInvalidArgument(err error) bool {
	return KindOf(err) == KindInvalidArgument
}

// IsNotFound reports whether err is a NotFound failure.
func IsNotFound(err error) bool {
	return KindOf(err) == KindNotFound
}

// IsDependencyFailure reports whether err is a DependencyFailure.
func IsDependencyFailure(err error) bool {
	return KindOf(err) == KindDependencyFailure
}
