// Package util provides utility functions and common error types.
package util

import (
	"errors"
	"fmt"
)

// Sentinel errors classifying upstream provider failures
var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("authentication failed")
	ErrTransient    = errors.New("transient upstream failure")
	ErrParse        = errors.New("malformed resource data")
)

// RequestError wraps an upstream failure with the operation and resource
// it was scoped to, so callers can decide whether to degrade or abort.
type RequestError struct {
	Operation string
	Resource  string
	Kind      error // one of the sentinel errors above
	Cause     error
}

func (e *RequestError) Error() string {
	msg := fmt.Sprintf("%s failed for %s: %v", e.Operation, e.Resource, e.Kind)
	if e.Cause != nil {
		msg += " (" + e.Cause.Error() + ")"
	}
	return msg
}

func (e *RequestError) Unwrap() error {
	return e.Kind
}

// NewRequestError creates a request error with a failure kind
func NewRequestError(operation, resource string, kind, cause error) *RequestError {
	return &RequestError{
		Operation: operation,
		Resource:  resource,
		Kind:      kind,
		Cause:     cause,
	}
}

// IsFatal reports whether an error must abort the whole operation rather
// than degrade to fallback data. Only authentication failures qualify.
func IsFatal(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsRecoverable reports whether an error is scoped to one resource and may
// be substituted with defaults or skipped.
func IsRecoverable(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrTransient) || errors.Is(err, ErrParse)
}
