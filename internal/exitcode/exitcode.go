package exitcode

import (
	"os"
	"strings"

	"github.com/felixgeelhaar/kopi/internal/errors"
)

// Exit codes for consistent error handling across the CLI
const (
	// Success indicates successful execution
	Success = 0

	// GeneralError indicates a general error condition
	GeneralError = 1

	// UsageError indicates invalid command usage (bad flags, missing args, etc.)
	UsageError = 2

	// ValidationError indicates the backend rejected the request data
	ValidationError = 3

	// AuthError indicates an authentication failure or missing session
	AuthError = 4

	// PermissionError indicates the session lacks the required role
	PermissionError = 5

	// NetworkError indicates a network connectivity issue
	NetworkError = 6

	// Interrupted indicates the run was cancelled by the user
	Interrupted = 130
)

// Exit terminates the program with the given exit code
func Exit(code int) {
	os.Exit(code)
}

// ExitWithError exits with an appropriate code based on error type
func ExitWithError(err error) {
	if err == nil {
		Exit(Success)
		return
	}

	Exit(DetermineExitCode(err))
}

// DetermineExitCode analyzes an error and returns the appropriate exit code.
// Coded errors map directly; anything else falls back to message sniffing.
func DetermineExitCode(err error) int {
	if err == nil {
		return Success
	}

	switch errors.Code(err) {
	case errors.ErrCodeAuthRequired, errors.ErrCodeAuthSessionExpired,
		errors.ErrCodeAuthRefreshFailed, errors.ErrCodeAPIUnauthorized:
		return AuthError
	case errors.ErrCodeAuthAdminRequired, errors.ErrCodeAPIForbidden:
		return PermissionError
	case errors.ErrCodeAPIValidation, errors.ErrCodeCartEmpty, errors.ErrCodeCartQuantity:
		return ValidationError
	case errors.ErrCodeAPINetwork:
		return NetworkError
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, "unauthorized") || strings.Contains(errMsg, "not signed in") {
		return AuthError
	}
	if strings.Contains(errMsg, "network") || strings.Contains(errMsg, "connection") ||
		strings.Contains(errMsg, "timeout") || strings.Contains(errMsg, "unreachable") {
		return NetworkError
	}
	if strings.Contains(errMsg, "invalid flag") || strings.Contains(errMsg, "unknown command") ||
		strings.Contains(errMsg, "required flag") || strings.Contains(errMsg, "missing argument") {
		return UsageError
	}

	return GeneralError
}

// GetExitCodeDescription returns a human-readable description of an exit code
func GetExitCodeDescription(code int) string {
	switch code {
	case Success:
		return "Success"
	case GeneralError:
		return "General error"
	case UsageError:
		return "Usage error (invalid flags or arguments)"
	case ValidationError:
		return "Validation error"
	case AuthError:
		return "Authentication error"
	case PermissionError:
		return "Permission denied"
	case NetworkError:
		return "Network error"
	case Interrupted:
		return "Interrupted"
	default:
		return "Unknown error"
	}
}
