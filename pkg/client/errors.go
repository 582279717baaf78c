package client

import (
	"fmt"
	"strings"
)

// FieldError ties a validation failure to one request field
type FieldError struct {
	Field   string `json:"field"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ValidationError reports field-level problems, detected locally or by the
// server. Callers re-render these next to the offending inputs rather than
// surfacing a generic failure.
type ValidationError struct {
	Code        string
	Message     string
	FieldErrors []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.FieldErrors) == 0 {
		return "validation failed: " + e.Message
	}
	fields := make([]string, len(e.FieldErrors))
	for i, fe := range e.FieldErrors {
		fields[i] = fe.Field
	}
	return fmt.Sprintf("validation failed on %s: %s", strings.Join(fields, ", "), e.Message)
}

// FieldError returns the error for the named field, if any
func (e *ValidationError) FieldError(field string) *FieldError {
	for i := range e.FieldErrors {
		if e.FieldErrors[i].Field == field {
			return &e.FieldErrors[i]
		}
	}
	return nil
}

// AuthError reports a missing or expired credential
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	return "authentication failed: " + e.Message
}

// NetworkError reports a transport-level failure. During upload it
// triggers the fallback transport before reaching the caller.
type NetworkError struct {
	Err error
}

func (e *NetworkError) Error() string {
	return "network error: " + e.Err.Error()
}

func (e *NetworkError) Unwrap() error { return e.Err }

// ServerError reports a 5xx response
type ServerError struct {
	StatusCode int
	Code       string
	Message    string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.StatusCode, e.Message)
}

// NotFoundError reports a stale or unknown id reference
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string {
	return "not found: " + e.Message
}

// ConflictError reports a duplicate, e.g. attaching a document twice
type ConflictError struct {
	Code    string
	Message string
}

func (e *ConflictError) Error() string {
	return "conflict: " + e.Message
}

// TimeoutError reports that an upload attempt or an analysis wait
// exceeded its bound
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	return "timeout: " + e.Message
}
