package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	ErrorTypeConfiguration    ErrorType = "CONFIGURATION_ERROR"
	ErrorTypeValidation       ErrorType = "VALIDATION_ERROR"
	ErrorTypeRecipeGeneration ErrorType = "RECIPE_GENERATION_ERROR"
	ErrorTypeTranslation      ErrorType = "TRANSLATION_ERROR"
	ErrorTypeConflict         ErrorType = "CONFLICT_ERROR"
	ErrorTypeUnauthorized     ErrorType = "UNAUTHORIZED_ERROR"
	ErrorTypeInternal         ErrorType = "INTERNAL_ERROR"
)

// AppError represents a structured error for the application.
// Message is safe to show to the user; Err carries the detail for logs.
type AppError struct {
	Type          ErrorType `json:"type"`
	Message       string    `json:"message"`
	StatusCode    int       `json:"statusCode"`
	ErrorCode     string    `json:"errorCode"`
	IsOperational bool      `json:"isOperational"`
	Recovery      string    `json:"recoverySuggestion,omitempty"`
	Err           error     `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Code returns the application-specific error code
func (e *AppError) Code() string {
	return e.ErrorCode
}

// RecoverySuggestion returns the suggestion on how to recover from the error
func (e *AppError) RecoverySuggestion() string {
	return e.Recovery
}

// As extracts an *AppError from err's chain.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsType reports whether err's chain holds an AppError of type t.
func IsType(err error, t ErrorType) bool {
	appErr, ok := As(err)
	return ok && appErr.Type == t
}

// NewConfigurationError creates a configuration error (503).
// Reported once at startup and on every trigger until the process restarts.
func NewConfigurationError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeConfiguration,
		Message:       message,
		StatusCode:    http.StatusServiceUnavailable,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Set the API key in the environment or .env file and restart the server.",
		Err:           err,
	}
}

// NewValidationError creates a new validation error (400)
func NewValidationError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeValidation,
		Message:       message,
		StatusCode:    http.StatusBadRequest,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewRecipeGenerationError creates a new recipe generation error (502)
func NewRecipeGenerationError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeRecipeGeneration,
		Message:       message,
		StatusCode:    http.StatusBadGateway,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Try again in a moment.",
		Err:           err,
	}
}

// NewTranslationError creates a translation error. It is logged, never returned to a user.
func NewTranslationError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeTranslation,
		Message:       message,
		StatusCode:    http.StatusBadGateway,
		ErrorCode:     errorCode,
		IsOperational: true,
		Err:           err,
	}
}

// NewConflictError creates a conflict error (409)
func NewConflictError(message string, errorCode string, suggestion string) *AppError {
	return &AppError{
		Type:          ErrorTypeConflict,
		Message:       message,
		StatusCode:    http.StatusConflict,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      suggestion,
	}
}

// NewUnauthorizedError creates an unauthorized error (401)
func NewUnauthorizedError(message string, errorCode string) *AppError {
	return &AppError{
		Type:          ErrorTypeUnauthorized,
		Message:       message,
		StatusCode:    http.StatusUnauthorized,
		ErrorCode:     errorCode,
		IsOperational: true,
	}
}

// NewInternalError creates an internal error (500)
func NewInternalError(message string, err error) *AppError {
	return &AppError{
		Type:       ErrorTypeInternal,
		Message:    message,
		StatusCode: http.StatusInternalServerError,
		ErrorCode:  "INTERNAL",
		Err:        err,
	}
}
