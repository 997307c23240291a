package errors

import (
	"fmt"
	"net/http"
	"strings"
)

// ClassifyHTTPError determines whether an HTTP error should be retried:
// - 4xx client errors (except 408 and 429) are irrecoverable
// - 5xx server errors are recoverable
func ClassifyHTTPError(statusCode int) ErrorCategory {
	switch {
	case statusCode >= 400 && statusCode < 500:
		switch statusCode {
		case http.StatusRequestTimeout, http.StatusTooManyRequests:
			return Recoverable
		default:
			return Irrecoverable
		}
	case statusCode >= 500 && statusCode < 600:
		return Recoverable
	default:
		// 1xx/3xx that reached us are protocol surprises; retrying won't help.
		return Irrecoverable
	}
}

// StatusMessage is the message surfaced for a non-2xx response: the raw body
// when it has content, otherwise a generic status message.
func StatusMessage(statusCode int, body string) string {
	if msg := strings.TrimSpace(body); msg != "" {
		return msg
	}
	return fmt.Sprintf("HTTP error! status: %d", statusCode)
}

// NewHTTPError creates a classified error for a non-2xx response.
func NewHTTPError(statusCode int, body string, operation string) *ClassifiedError {
	return &ClassifiedError{
		Kind:       KindStatus,
		Category:   ClassifyHTTPError(statusCode),
		Operation:  operation,
		StatusCode: statusCode,
		Body:       body,
		Message:    StatusMessage(statusCode, body),
		Underlying: fmt.Errorf("%s failed: HTTP %d", operation, statusCode),
	}
}

// NewNetworkError creates a classified error for network-level failures.
// Network errors are recoverable as they may be transient.
func NewNetworkError(operation string, err error) *ClassifiedError {
	return &ClassifiedError{
		Kind:       KindTransport,
		Category:   Recoverable,
		Operation:  operation,
		Message:    err.Error(),
		Underlying: fmt.Errorf("%s network error: %w", operation, err),
	}
}

// NewDecodeError creates a classified error for a 2xx body that failed to parse.
func NewDecodeError(operation string, statusCode int, body string, err error) *ClassifiedError {
	return &ClassifiedError{
		Kind:       KindDecode,
		Category:   Irrecoverable,
		Operation:  operation,
		StatusCode: statusCode,
		Body:       body,
		Message:    fmt.Sprintf("invalid JSON response: %v", err),
		Underlying: fmt.Errorf("%s decode: %w", operation, err),
	}
}
