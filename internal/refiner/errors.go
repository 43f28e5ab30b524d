package refiner

import (
	"errors"
	"fmt"
)

// Sentinel errors for the refine flow.
var (
	ErrEmptyDraft      = errors.New("draft message is empty")
	ErrBusy            = errors.New("a refinement is already in progress")
	ErrNothingToCopy   = errors.New("no refined message to copy")
	ErrInvalidResponse = errors.New("invalid response format")
	ErrNoContent       = errors.New("no refined message in response")
	ErrNotConfigured   = errors.New("refine endpoint is not configured")
	ErrClosed          = errors.New("refiner session is closed")
)

// APIError is a non-2xx answer from the refine endpoint.
type APIError struct {
	StatusCode int
	Endpoint   string
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("API error [%d] at %s", e.StatusCode, e.Endpoint)
	}
	return fmt.Sprintf("API error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
}

// NewAPIError creates a new APIError.
func NewAPIError(statusCode int, endpoint, message string) *APIError {
	return &APIError{
		StatusCode: statusCode,
		Endpoint:   endpoint,
		Message:    message,
	}
}
