package contact

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
)

// ErrSubmissionInFlight is returned by Submit while a submission is sending
var ErrSubmissionInFlight = errors.New("a submission is already in flight")

// ErrorKind classifies submission failures
type ErrorKind string

const (
	// ErrKindNetwork indicates the request never got a response
	ErrKindNetwork ErrorKind = "network"

	// ErrKindTimeout indicates the submission deadline passed
	ErrKindTimeout ErrorKind = "timeout"

	// ErrKindRejected indicates the backend answered with a failure status
	ErrKindRejected ErrorKind = "rejected"

	// ErrKindCanceled indicates the submission was abandoned
	ErrKindCanceled ErrorKind = "canceled"

	// ErrKindInternal indicates a local encoding or programming failure
	ErrKindInternal ErrorKind = "internal"
)

// SubmitError describes why a submission ended in the error state
type SubmitError struct {
	// Kind categorizes the error
	Kind ErrorKind `json:"kind"`

	// Message provides human-readable error description
	Message string `json:"message"`

	// StatusCode for rejected submissions
	StatusCode int `json:"status_code,omitempty"`

	// Underlying error that caused this error
	Cause error `json:"-"`
}

// Error implements the error interface
func (e *SubmitError) Error() string {
	parts := []string{fmt.Sprintf("kind=%s", e.Kind)}
	if e.StatusCode > 0 {
		parts = append(parts, fmt.Sprintf("status=%d", e.StatusCode))
	}
	parts = append(parts, e.Message)
	if e.Cause != nil {
		parts = append(parts, fmt.Sprintf("cause=%s", e.Cause.Error()))
	}
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying error
func (e *SubmitError) Unwrap() error {
	return e.Cause
}

// Is matches another *SubmitError of the same kind
func (e *SubmitError) Is(target error) bool {
	if se, ok := target.(*SubmitError); ok {
		return e.Kind == se.Kind
	}
	return false
}

// IsRetryable reports whether resubmitting the same form may succeed
func (e *SubmitError) IsRetryable() bool {
	switch e.Kind {
	case ErrKindNetwork, ErrKindTimeout:
		return true
	case ErrKindRejected:
		return e.StatusCode >= 500 || e.StatusCode == 429
	default:
		return false
	}
}

// NewRejectedError creates an error for a failure response
func NewRejectedError(statusCode int, message string) *SubmitError {
	return &SubmitError{Kind: ErrKindRejected, StatusCode: statusCode, Message: message}
}

// classifyTransportError maps a transport failure onto a SubmitError
func classifyTransportError(err error) *SubmitError {
	var se *SubmitError
	if errors.As(err, &se) {
		return se
	}
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &SubmitError{Kind: ErrKindTimeout, Message: "submission timed out", Cause: err}
	case errors.Is(err, context.Canceled):
		return &SubmitError{Kind: ErrKindCanceled, Message: "submission canceled", Cause: err}
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return &SubmitError{Kind: ErrKindTimeout, Message: "submission timed out", Cause: err}
	}
	return &SubmitError{Kind: ErrKindNetwork, Message: "could not reach contact endpoint", Cause: err}
}

// ValidationError lists the form fields that failed validation
type ValidationError struct {
	Fields map[Field]string `json:"fields"`
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, field := range []Field{FieldName, FieldEmail, FieldMessage, FieldConsent} {
		if reason, ok := e.Fields[field]; ok {
			parts = append(parts, fmt.Sprintf("%s: %s", field, reason))
		}
	}
	return "validation failed: " + strings.Join(parts, ", ")
}
