package errors

import (
	"fmt"
	"strings"
)

// ErrorCode represents a unique error identifier
type ErrorCode string

// Error categories
const (
	// API errors (API-001 to API-099)
	ErrCodeAPIRequest      ErrorCode = "API-001"
	ErrCodeAPIResponse     ErrorCode = "API-002"
	ErrCodeAPIRejected     ErrorCode = "API-003"
	ErrCodeAPIUnauthorized ErrorCode = "API-004"
	ErrCodeAPIForbidden    ErrorCode = "API-005"
	ErrCodeAPINotFound     ErrorCode = "API-006"
	ErrCodeAPIValidation   ErrorCode = "API-007"
	ErrCodeAPIServer       ErrorCode = "API-008"
	ErrCodeAPIStatus       ErrorCode = "API-009"
	ErrCodeAPINetwork      ErrorCode = "API-010"

	// Session errors (AUTH-001 to AUTH-099)
	ErrCodeAuthRequired       ErrorCode = "AUTH-001"
	ErrCodeAuthAdminRequired  ErrorCode = "AUTH-002"
	ErrCodeAuthSessionExpired ErrorCode = "AUTH-003"
	ErrCodeAuthRefreshFailed  ErrorCode = "AUTH-004"

	// Cart errors (CART-001 to CART-099)
	ErrCodeCartItemNotFound ErrorCode = "CART-001"
	ErrCodeCartEmpty        ErrorCode = "CART-002"
	ErrCodeCartQuantity     ErrorCode = "CART-003"

	// State storage errors (STATE-001 to STATE-099)
	ErrCodeStateOpenFailed  ErrorCode = "STATE-001"
	ErrCodeStateKeyNotFound ErrorCode = "STATE-002"
	ErrCodeStateReadFailed  ErrorCode = "STATE-003"
	ErrCodeStateWriteFailed ErrorCode = "STATE-004"

	// Configuration errors (CONFIG-001 to CONFIG-099)
	ErrCodeConfigRead  ErrorCode = "CONFIG-001"
	ErrCodeConfigParse ErrorCode = "CONFIG-002"

	// File I/O errors (IO-001 to IO-099)
	ErrCodeFileNotFound    ErrorCode = "IO-001"
	ErrCodeFileReadFailed  ErrorCode = "IO-002"
	ErrCodeFileWriteFailed ErrorCode = "IO-003"
)

// KopiError represents an enhanced error with code, suggestions, and a cause chain
type KopiError struct {
	Code        ErrorCode
	Message     string
	Suggestions []string
	Cause       error
}

// Error implements the error interface
func (e *KopiError) Error() string {
	var b strings.Builder

	// Error code and message
	b.WriteString(fmt.Sprintf("[%s] %s", e.Code, e.Message))

	// Add cause if present
	if e.Cause != nil {
		b.WriteString(fmt.Sprintf(": %v", e.Cause))
	}

	// Add suggestions
	if len(e.Suggestions) > 0 {
		b.WriteString("\n\nSuggestions:")
		for _, suggestion := range e.Suggestions {
			b.WriteString(fmt.Sprintf("\n  • %s", suggestion))
		}
	}

	return b.String()
}

// Unwrap implements error unwrapping for errors.Is and errors.As
func (e *KopiError) Unwrap() error {
	return e.Cause
}

// New creates a new KopiError
func New(code ErrorCode, message string) *KopiError {
	return &KopiError{
		Code:    code,
		Message: message,
	}
}

// Wrap creates a new KopiError wrapping an existing error
func Wrap(code ErrorCode, message string, cause error) *KopiError {
	return &KopiError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// WithSuggestion adds a suggestion to the error
func (e *KopiError) WithSuggestion(suggestion string) *KopiError {
	e.Suggestions = append(e.Suggestions, suggestion)
	return e
}

// WithSuggestions adds multiple suggestions to the error
func (e *KopiError) WithSuggestions(suggestions ...string) *KopiError {
	e.Suggestions = append(e.Suggestions, suggestions...)
	return e
}

// Code extracts the ErrorCode from an error, or "" if it is not a KopiError
func Code(err error) ErrorCode {
	if kerr, ok := err.(*KopiError); ok {
		return kerr.Code
	}
	return ""
}

// Common error constructors for frequently used errors

// NewConnectivityError creates a network connectivity error
func NewConnectivityError(cause error) *KopiError {
	return Wrap(ErrCodeAPINetwork, "could not reach the coffee service", cause).
		WithSuggestion("Check your network connection").
		WithSuggestion("Verify the API base URL with 'kopi config show'")
}

// NewSessionExpiredError creates a session expiry error
func NewSessionExpiredError() *KopiError {
	return New(ErrCodeAuthSessionExpired, "session has expired").
		WithSuggestion("Run 'kopi auth login' to sign in again")
}

// NewAuthRequiredError creates a login-required error
func NewAuthRequiredError() *KopiError {
	return New(ErrCodeAuthRequired, "not signed in").
		WithSuggestion("Run 'kopi auth login' to sign in").
		WithSuggestion("Run 'kopi auth register' to create an account")
}

// NewAdminRequiredError creates an admin-privilege error
func NewAdminRequiredError() *KopiError {
	return New(ErrCodeAuthAdminRequired, "administrator privileges required").
		WithSuggestion("Run 'kopi admin login' with an administrator account")
}

// NewEmptyCartError creates an empty-cart error
func NewEmptyCartError() *KopiError {
	return New(ErrCodeCartEmpty, "the cart is empty").
		WithSuggestion("Browse the menu with 'kopi menu'").
		WithSuggestion("Add an item with 'kopi cart add <id>'")
}

// NewConfigParseError creates a config parse error
func NewConfigParseError(path string, cause error) *KopiError {
	return Wrap(ErrCodeConfigParse, fmt.Sprintf("failed to parse config file: %s", path), cause).
		WithSuggestion("Check the YAML syntax of the config file")
}
