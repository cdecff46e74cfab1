package domain

import (
	"errors"
	"fmt"
)

// ErrorKind classifies an error so callers (and the HTTP layer) can
// distinguish failures without string matching.
type ErrorKind string

const (
	ErrKindNotFound         ErrorKind = "not_found"
	ErrKindUnauthorized     ErrorKind = "unauthorized"
	ErrKindInvalid          ErrorKind = "invalid"
	ErrKindConflict         ErrorKind = "conflict"
	ErrKindAlreadyProcessed ErrorKind = "already_processed"
	ErrKindInternal         ErrorKind = "internal"
)

// Error is the domain error type carried across service boundaries.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func NotFoundError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindNotFound, Message: fmt.Sprintf(format, args...)}
}

func UnauthorizedError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindUnauthorized, Message: fmt.Sprintf(format, args...)}
}

func ValidationError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindInvalid, Message: fmt.Sprintf(format, args...)}
}

func ConflictError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindConflict, Message: fmt.Sprintf(format, args...)}
}

func AlreadyProcessedError(format string, args ...any) *Error {
	return &Error{Kind: ErrKindAlreadyProcessed, Message: fmt.Sprintf(format, args...)}
}

// WrapInternal attaches an underlying error while keeping the message
// presentable to API clients.
func WrapInternal(err error, format string, args ...any) *Error {
	return &Error{Kind: ErrKindInternal, Message: fmt.Sprintf(format, args...), Err: err}
}

// KindOf extracts the ErrorKind from err, defaulting to internal.
func KindOf(err error) ErrorKind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ErrKindInternal
}
