// Package errors provides the error type for D&D 5e API calls.
//
// Every failure talking to the upstream API (transport errors, HTTP errors,
// undecodable bodies, rejected arguments) surfaces as a single *APIError.
package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"unicode/utf8"
)

// APIError indicates a call to the D&D 5e API failed.
type APIError struct {
	Operation  string // client method, e.g. "GetAbilityScore"
	StatusCode int    // HTTP status; 0 when no response was received
	Reason     string // HTTP status text or a short description
	Body       string // response body, truncated
	Err        error  // underlying cause, if any
}

func (e *APIError) Error() string {
	msg := fmt.Sprintf("dnd5e api %s failed", e.Operation)
	if e.StatusCode != 0 {
		msg += fmt.Sprintf(": status %d", e.StatusCode)
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// NewStatusError creates an APIError for a non-successful HTTP response.
func NewStatusError(operation string, statusCode int, body string) *APIError {
	return &APIError{
		Operation:  operation,
		StatusCode: statusCode,
		Reason:     http.StatusText(statusCode),
		Body:       truncate(body, 200),
	}
}

// Wrap creates an APIError around a failure that produced no usable response.
func Wrap(operation, reason string, err error) *APIError {
	return &APIError{
		Operation: operation,
		Reason:    reason,
		Err:       err,
	}
}

// IsAPIError returns true if err is or wraps an APIError.
func IsAPIError(err error) bool {
	var apiErr *APIError
	return stderrors.As(err, &apiErr)
}

// IsNotFound returns true if err is an APIError for a 404 response.
func IsNotFound(err error) bool {
	var apiErr *APIError
	if !stderrors.As(err, &apiErr) {
		return false
	}
	return apiErr.StatusCode == http.StatusNotFound
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	// Never split a multi-byte rune
	cut := maxLen
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut] + "..."
}
