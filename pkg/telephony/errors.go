package telephony

import (
	"errors"
	"fmt"
)

// Sentinel errors for common error conditions.
var (
	// ErrNoAPIKey is returned when the API key is missing.
	ErrNoAPIKey = errors.New("telephony: API key required")

	// ErrNoPhoneNumberID is returned when outbound dialing is attempted
	// without a configured caller ID.
	ErrNoPhoneNumberID = errors.New("telephony: phone number ID required")

	// ErrNoConference is returned when the provider does not return a
	// conference ID for the first outbound leg.
	ErrNoConference = errors.New("telephony: no conference ID on first leg")
)

// APIError represents an error response from the call control API.
type APIError struct {
	// StatusCode is the HTTP status code.
	StatusCode int

	// Message is the error message from the API.
	Message string
}

// Error implements the error interface.
func (e *APIError) Error() string {
	return fmt.Sprintf("telephony: API error %d: %s", e.StatusCode, e.Message)
}

// IsRateLimited returns true if this is a rate limit error (HTTP 429).
func (e *APIError) IsRateLimited() bool {
	return e.StatusCode == 429
}

// IsUnauthorized returns true if this is an authentication error (HTTP 401).
func (e *APIError) IsUnauthorized() bool {
	return e.StatusCode == 401
}

// IsServerError returns true if this is a server-side error (HTTP 5xx).
func (e *APIError) IsServerError() bool {
	return e.StatusCode >= 500 && e.StatusCode < 600
}
