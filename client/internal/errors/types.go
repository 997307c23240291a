// Package errors provides error classification for the client SDK.
// Every failed request is reported as a *ClassifiedError whose Error() is the
// human-readable message shown to users; the category drives the opt-in retry.
package errors

import "fmt"

// ErrorCategory determines how errors should be handled by retry logic.
type ErrorCategory int

const (
	// Recoverable errors may be retried with exponential backoff.
	// Examples: 503 Service Unavailable, connection refused.
	Recoverable ErrorCategory = iota

	// Irrecoverable errors fail immediately without retry.
	// Examples: 400 Bad Request, 401 Unauthorized, malformed JSON.
	Irrecoverable
)

// String returns a human-readable representation of the error category.
func (c ErrorCategory) String() string {
	switch c {
	case Recoverable:
		return "Recoverable"
	case Irrecoverable:
		return "Irrecoverable"
	default:
		return fmt.Sprintf("Unknown(%d)", int(c))
	}
}

// Kind identifies which stage of a request failed.
type Kind int

const (
	// KindTransport is a network or transport failure; no response was read.
	KindTransport Kind = iota
	// KindStatus is a response with a non-2xx status code.
	KindStatus
	// KindDecode is a 2xx response whose body is not the expected JSON.
	KindDecode
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// ClassifiedError wraps an error with categorization metadata.
type ClassifiedError struct {
	Kind       Kind
	Category   ErrorCategory
	Operation  string // endpoint-level operation name, e.g. "validate"
	StatusCode int    // HTTP status code (0 for transport errors)
	Body       string // raw response body
	Message    string // text surfaced to the user
	Underlying error
}

// Error returns the user-facing message.
func (e *ClassifiedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Underlying != nil {
		return e.Underlying.Error()
	}
	return fmt.Sprintf("%s failed", e.Operation)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *ClassifiedError) Unwrap() error {
	return e.Underlying
}

// Detail renders the error with its classification, for logs.
func (e *ClassifiedError) Detail() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("[%s/%s] %s: HTTP %d: %s", e.Category, e.Kind, e.Operation, e.StatusCode, e.Error())
	}
	return fmt.Sprintf("[%s/%s] %s: %s", e.Category, e.Kind, e.Operation, e.Error())
}

// IsIrrecoverable returns true if the error should not be retried.
func IsIrrecoverable(err error) bool {
	if classified, ok := err.(*ClassifiedError); ok {
		return classified.Category == Irrecoverable
	}
	return false
}
