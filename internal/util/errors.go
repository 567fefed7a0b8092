package util

import (
	"errors"
	"net/http"
)

// AppError represents an application error with HTTP status code
type AppError struct {
	StatusCode int         `json:"-"`
	Code       string      `json:"code"`
	Message    string      `json:"message"`
	Details    interface{} `json:"details,omitempty"`
	Err        error       `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap exposes the underlying cause to errors.Is / errors.As
func (e *AppError) Unwrap() error {
	return e.Err
}

// Common error codes
const (
	ErrCodeInternal           = "INTERNAL_ERROR"
	ErrCodeBadRequest         = "BAD_REQUEST"
	ErrCodeUnauthorized       = "UNAUTHORIZED"
	ErrCodeNotFound           = "NOT_FOUND"
	ErrCodeAlreadyExists      = "ALREADY_EXISTS"
	ErrCodeValidation         = "VALIDATION_ERROR"
	ErrCodeInvalidState       = "INVALID_STATE"
	ErrCodeRateLimit          = "RATE_LIMIT_EXCEEDED"
	ErrCodeInvalidCredentials = "INVALID_CREDENTIALS"
	ErrCodeTokenInvalid       = "TOKEN_INVALID"
	ErrCodeBotNotFound        = "BOT_NOT_FOUND"
	ErrCodeWalletNotFound     = "WALLET_NOT_FOUND"
	ErrCodeAlertNotFound      = "ALERT_NOT_FOUND"
	ErrCodeUserNotFound       = "USER_NOT_FOUND"
	ErrCodeAIUnavailable      = "AI_UNAVAILABLE"
)

// NewAppError creates a new application error
func NewAppError(statusCode int, code, message string) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
	}
}

// NewAppErrorWithDetails creates a new application error with details
func NewAppErrorWithDetails(statusCode int, code, message string, details interface{}) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Details:    details,
	}
}

// WrapError wraps an existing error
func WrapError(statusCode int, code, message string, err error) *AppError {
	return &AppError{
		StatusCode: statusCode,
		Code:       code,
		Message:    message,
		Err:        err,
	}
}

// Common error constructors

func ErrBadRequest(message string) *AppError {
	return NewAppError(http.StatusBadRequest, ErrCodeBadRequest, message)
}

func ErrUnauthorized(message string) *AppError {
	return NewAppError(http.StatusUnauthorized, ErrCodeUnauthorized, message)
}

func ErrNotFound(message string) *AppError {
	return NewAppError(http.StatusNotFound, ErrCodeNotFound, message)
}

func ErrAlreadyExists(message string) *AppError {
	return NewAppError(http.StatusBadRequest, ErrCodeAlreadyExists, message)
}

func ErrValidation(message string) *AppError {
	return NewAppError(http.StatusBadRequest, ErrCodeValidation, message)
}

// ErrInvalidState reports an action that is not allowed in the entity's current state
func ErrInvalidState(message string) *AppError {
	return NewAppError(http.StatusBadRequest, ErrCodeInvalidState, message)
}

func ErrInternalServer(message string, err error) *AppError {
	return WrapError(http.StatusInternalServerError, ErrCodeInternal, message, err)
}

func ErrRateLimit(message string) *AppError {
	return NewAppError(http.StatusTooManyRequests, ErrCodeRateLimit, message)
}

func ErrServiceUnavailable(code, message string, err error) *AppError {
	return WrapError(http.StatusServiceUnavailable, code, message, err)
}

// Entity scoped not-found errors. The message never hints whether the row belongs to someone else.

func ErrBotNotFound() *AppError {
	return NewAppError(http.StatusNotFound, ErrCodeBotNotFound, "Bot not found")
}

func ErrWalletNotFound() *AppError {
	return NewAppError(http.StatusNotFound, ErrCodeWalletNotFound, "Wallet not found")
}

func ErrAlertNotFound() *AppError {
	return NewAppError(http.StatusNotFound, ErrCodeAlertNotFound, "Alert not found")
}

func ErrUserNotFound() *AppError {
	return NewAppError(http.StatusNotFound, ErrCodeUserNotFound, "User not found")
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// GetAppError extracts AppError from error
func GetAppError(err error) *AppError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr
	}
	return nil
}
