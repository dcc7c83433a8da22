package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates resource not found
	ErrNotFound = errors.New("resource not found")
	// ErrEmptyMessage indicates an empty or whitespace-only message
	ErrEmptyMessage = errors.New("message text is required")
	// ErrBusy indicates a turn is already in flight for the session
	ErrBusy = errors.New("a message is already being processed")
	// ErrInvalidMode indicates an unknown conversation mode
	ErrInvalidMode = errors.New("invalid mode")
	// ErrMissingFields indicates required request fields are absent
	ErrMissingFields = errors.New("missing required fields")
	// ErrEmailTaken indicates a duplicate sign-up email
	ErrEmailTaken = errors.New("user with this email already exists")
	// ErrInvalidCredentials indicates a failed sign-in
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrUnsupportedFile indicates an upload with an unsupported media type
	ErrUnsupportedFile = errors.New("unsupported file type")
	// ErrExtraction indicates text extraction failed on a supported file
	ErrExtraction = errors.New("failed to process file")
)

// ErrorKind tags a collaborator failure so callers never have to inspect
// untyped response shapes.
type ErrorKind int

const (
	// KindConnection is a network-level failure: the collaborator was
	// never reached or the connection broke before a response.
	KindConnection ErrorKind = iota + 1
	// KindApplication is a structured error reported by the collaborator
	// itself (non-2xx with an error body).
	KindApplication
)

// CallError is the tagged result of a failed collaborator call.
type CallError struct {
	Kind    ErrorKind
	Message string
	Details string
}

func (e *CallError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

// ConnectionError builds a KindConnection CallError.
func ConnectionError(message string) *CallError {
	return &CallError{Kind: KindConnection, Message: message}
}

// ApplicationError builds a KindApplication CallError.
func ApplicationError(message, details string) *CallError {
	return &CallError{Kind: KindApplication, Message: message, Details: details}
}
