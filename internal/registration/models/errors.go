package models

import (
	"errors"
	"fmt"
	"strings"
)

// ValidationKind names a field rule that failed.
type ValidationKind string

const (
	InvalidEmail         ValidationKind = "invalid_email"
	WeakPassword         ValidationKind = "weak_password"
	ConfirmationMismatch ValidationKind = "confirmation_mismatch"
)

// Message returns the inline text shown next to the failing field.
func (k ValidationKind) Message() string {
	switch k {
	case InvalidEmail:
		return MessageInvalidEmail
	case WeakPassword:
		return MessageWeakPassword
	case ConfirmationMismatch:
		return MessageConfirmationMismatch
	default:
		return string(k)
	}
}

// ValidationError lists every field rule the current values break. It is
// resolved locally and never reaches the network layer.
type ValidationError struct {
	Kinds []ValidationKind
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Kinds))
	for _, k := range e.Kinds {
		parts = append(parts, string(k))
	}
	return "registration form invalid: " + strings.Join(parts, ", ")
}

// Has reports whether kind is among the failures.
func (e *ValidationError) Has(kind ValidationKind) bool {
	for _, k := range e.Kinds {
		if k == kind {
			return true
		}
	}
	return false
}

// SubmissionKind classifies the outcome of a registration request.
type SubmissionKind string

const (
	KindNone       SubmissionKind = ""
	Conflict       SubmissionKind = "conflict"
	ServerFault    SubmissionKind = "server_fault"
	NetworkFailure SubmissionKind = "network_failure"
)

// Message returns the user-facing text for the kind.
func (k SubmissionKind) Message() string {
	switch k {
	case Conflict:
		return MessageConflict
	case NetworkFailure:
		return MessageNetworkFailure
	case KindNone:
		return MessageSuccess
	default:
		return MessageServerFault
	}
}

// SubmissionError wraps a failed registration request with its class.
type SubmissionError struct {
	Kind       SubmissionKind
	StatusCode int // zero when no response was received
	Mensagem   string
	Underlying error
}

func (e *SubmissionError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("registration [%s]: status %d", e.Kind, e.StatusCode)
	}
	if e.Underlying != nil {
		return fmt.Sprintf("registration [%s]: %v", e.Kind, e.Underlying)
	}
	return fmt.Sprintf("registration [%s]", e.Kind)
}

func (e *SubmissionError) Unwrap() error {
	return e.Underlying
}

// NewSubmissionError builds a classified error.
func NewSubmissionError(kind SubmissionKind, status int, underlying error) *SubmissionError {
	return &SubmissionError{Kind: kind, StatusCode: status, Underlying: underlying}
}

// KindOf extracts the submission class from err. Unclassified errors count
// as server faults so no raw technical message reaches the user.
func KindOf(err error) SubmissionKind {
	if err == nil {
		return KindNone
	}
	var se *SubmissionError
	if errors.As(err, &se) {
		return se.Kind
	}
	return ServerFault
}

// ClassifyStatus maps an HTTP status to a submission class.
func ClassifyStatus(status int) SubmissionKind {
	switch {
	case status >= 200 && status < 300:
		return KindNone
	case status == 409:
		return Conflict
	default:
		return ServerFault
	}
}
