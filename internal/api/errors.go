package api

import (
	"errors"
	"fmt"
)

// TransportError represents a request that never completed: connection
// failures, timeouts, cancellations, and response bodies that could not be
// parsed. The service was not necessarily reached.
type TransportError struct {
	Op    string
	URL   string
	Cause error
}

func (e *TransportError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: request to %s failed: %v", e.Op, e.URL, e.Cause)
	}
	return fmt.Sprintf("%s: request to %s failed", e.Op, e.URL)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// ServiceError represents a request the service completed but answered with
// a failure payload. Message carries the service-provided error string.
type ServiceError struct {
	Op         string
	StatusCode int
	Message    string
}

func (e *ServiceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s: service reported failure (HTTP %d)", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("%s: %s", e.Op, e.Message)
}

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// IsService reports whether err is a ServiceError.
func IsService(err error) bool {
	var se *ServiceError
	return errors.As(err, &se)
}

// ServiceMessage returns the service-provided error string when err is a
// ServiceError, and "" otherwise.
func ServiceMessage(err error) string {
	var se *ServiceError
	if errors.As(err, &se) {
		return se.Message
	}
	return ""
}
