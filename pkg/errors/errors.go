package errors

import (
	"fmt"
)

// ErrNotFound is returned when a resource is not found
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized is returned when authentication fails. Cause, when set,
// is the underlying token or key error and is not shown to clients.
type ErrUnauthorized struct {
	Message string
	Cause   error
}

func (e *ErrUnauthorized) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "unauthorized"
}

func (e *ErrUnauthorized) Unwrap() error {
	return e.Cause
}

// ErrValidation is returned when validation fails
type ErrValidation struct {
	Message string
	Fields  map[string]string
}

func (e *ErrValidation) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "validation failed"
}

// ErrUpstream is returned when the products backend answers with a non-success status.
// Detail carries the backend's "detail" message when it sent one.
type ErrUpstream struct {
	StatusCode int
	Detail     string
}

func (e *ErrUpstream) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("products backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("products backend returned %d", e.StatusCode)
}

// ErrUnavailable is returned when an optional dependency is not configured
type ErrUnavailable struct {
	Service string
}

func (e *ErrUnavailable) Error() string {
	return fmt.Sprintf("%s is not configured", e.Service)
}
