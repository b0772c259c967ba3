// Package errors provides application-level error types and utilities.
// Expected outcomes (authentication failures, missing backups, invalid
// artifacts) are AppErrors carrying a stable result code; anything else is
// an unexpected failure reported generically.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorType is the taxonomy bucket of an error.
type ErrorType string

const (
	ErrorTypeAuthentication ErrorType = "authentication"
	ErrorTypeValidation     ErrorType = "validation_error"
	ErrorTypeNotFound       ErrorType = "not_found"
	ErrorTypeConflict       ErrorType = "conflict"
	ErrorTypeIntegrity      ErrorType = "integrity"
	ErrorTypeIO             ErrorType = "io"
	ErrorTypeForbidden      ErrorType = "forbidden"
	ErrorTypeRateLimited    ErrorType = "rate_limited"
	ErrorTypeInternal       ErrorType = "internal_error"
)

// Result codes surfaced to clients.
const (
	CodeValidation   = "VALIDATION_ERROR"
	CodeNotFound     = "NOT_FOUND"
	CodeInternal     = "INTERNAL_SERVER_ERROR"
	CodeForbidden    = "ORIGIN_NOT_ALLOWED"
	CodeRateLimited  = "RATE_LIMITED"
	CodeLastSection  = "LAST_SECTION_PROTECTED"
	CodeInvalidInput = "INVALID_INPUT"
)

// AppError represents an application error with additional context.
type AppError struct {
	Type    ErrorType      `json:"type"`
	Code    string         `json:"code"`
	Message string         `json:"message"`
	Status  int            `json:"-"`
	Details map[string]any `json:"details,omitempty"`
	cause   error
}

func (e *AppError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.cause
}

// WithDetail returns e with key set in its details.
func (e *AppError) WithDetail(key string, value any) *AppError {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause records the underlying error. It is logged, never sent.
func (e *AppError) WithCause(err error) *AppError {
	e.cause = err
	return e
}

func newAppError(t ErrorType, status int, code, message string) *AppError {
	return &AppError{Type: t, Status: status, Code: code, Message: message}
}

func NewValidationError(code, message string) *AppError {
	return newAppError(ErrorTypeValidation, http.StatusBadRequest, code, message)
}

func NewNotFoundError(code, message string) *AppError {
	return newAppError(ErrorTypeNotFound, http.StatusNotFound, code, message)
}

func NewConflictError(code, message string) *AppError {
	return newAppError(ErrorTypeConflict, http.StatusConflict, code, message)
}

// NewIntegrityError reports data that failed schema or content checks.
func NewIntegrityError(code, message string) *AppError {
	return newAppError(ErrorTypeIntegrity, http.StatusBadRequest, code, message)
}

// NewIOError reports a failed read, write or delete on durable storage.
func NewIOError(code, message string) *AppError {
	return newAppError(ErrorTypeIO, http.StatusInternalServerError, code, message)
}

func NewForbiddenError(code, message string) *AppError {
	return newAppError(ErrorTypeForbidden, http.StatusForbidden, code, message)
}

func NewRateLimitedError(message string) *AppError {
	return newAppError(ErrorTypeRateLimited, http.StatusTooManyRequests, CodeRateLimited, message)
}

func NewInternalError(message string) *AppError {
	return newAppError(ErrorTypeInternal, http.StatusInternalServerError, CodeInternal, message)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	return GetAppError(err) != nil
}

// HasCode reports whether err is an AppError with the given result code.
func HasCode(err error, code string) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Code == code
}

func IsNotFoundError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeNotFound
}

func IsIntegrityError(err error) bool {
	appErr := GetAppError(err)
	return appErr != nil && appErr.Type == ErrorTypeIntegrity
}

// IsDuplicateError checks if the error is a database duplicate key error
func IsDuplicateError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	// MySQL duplicate entry error
	if strings.Contains(errStr, "Duplicate entry") || strings.Contains(errStr, "duplicate key") {
		return true
	}
	// SQLite unique violation
	return strings.Contains(errStr, "UNIQUE constraint failed")
}
