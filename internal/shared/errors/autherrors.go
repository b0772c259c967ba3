package errors

import (
	"net/http"
	"time"
)

// Authentication result codes.
const (
	CodeAuthRequired      = "AUTH_REQUIRED"
	CodeAuthIPBlocked     = "AUTH_IP_BLOCKED"
	CodeInvalidCredential = "INVALID_PIN"
)

// NewAuthRequiredError is returned when no valid session accompanies a
// request. It deliberately says nothing about why the session is invalid.
func NewAuthRequiredError() *AppError {
	return newAppError(ErrorTypeAuthentication, http.StatusUnauthorized,
		CodeAuthRequired, "Please log in with your PIN to continue.")
}

// NewIPBlockedError reports an active lockout window for the caller.
func NewIPBlockedError(blockedUntil time.Time) *AppError {
	until := blockedUntil.UTC().Format(time.RFC3339Nano)
	return newAppError(ErrorTypeAuthentication, http.StatusTooManyRequests,
		CodeAuthIPBlocked, "Too many failed attempts. Try again after "+until+".").
		WithDetail("blockedUntil", until)
}

// NewInvalidCredentialError reports a wrong PIN and how many attempts remain.
func NewInvalidCredentialError(remainingAttempts int) *AppError {
	return newAppError(ErrorTypeAuthentication, http.StatusUnauthorized,
		CodeInvalidCredential, "PIN is incorrect.").
		WithDetail("remainingAttempts", remainingAttempts)
}
