package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorType defines the category of the error
type ErrorType string

const (
	ErrorTypeEmptyInput         ErrorType = "EMPTY_INPUT_ERROR"
	ErrorTypeUpstream           ErrorType = "UPSTREAM_ERROR"
	ErrorTypeMalformedResponse  ErrorType = "MALFORMED_RESPONSE_ERROR"
	ErrorTypeInvalidRecipeShape ErrorType = "INVALID_RECIPE_SHAPE_ERROR"
	ErrorTypeNotFound           ErrorType = "NOT_FOUND_ERROR"
	ErrorTypeConflict           ErrorType = "CONFLICT_ERROR"
	ErrorTypeRateLimit          ErrorType = "RATE_LIMIT_ERROR"
	ErrorTypeInternal           ErrorType = "INTERNAL_ERROR"
)

// AppError represents a structured error for the application
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

// Unwrap exposes the underlying cause for errors.Is/As chains
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

// IsRetryable determines if the operation that caused the error is worth
// resubmitting. All generation failures are terminal for a given submit,
// so only upstream 5xx and rate limiting qualify.
func (e *AppError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeRateLimit:
		return true
	case ErrorTypeUpstream:
		return e.StatusCode >= 500
	default:
		return false
	}
}

// TypeOf returns the ErrorType of err if it is an AppError, or
// ErrorTypeInternal otherwise.
func TypeOf(err error) ErrorType {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Type
	}
	return ErrorTypeInternal
}

// NewEmptyInputError creates a new empty-input error (400). This is a local
// precondition failure and never reaches the network.
func NewEmptyInputError(message string) *AppError {
	return &AppError{
		Type:          ErrorTypeEmptyInput,
		Message:       message,
		StatusCode:    http.StatusBadRequest,
		ErrorCode:     "EMPTY_INPUT",
		IsOperational: true,
		Recovery:      "Enter ingredients or a recipe request before submitting.",
	}
}

// NewUpstreamError creates a new upstream error (502) carrying the
// transport or service failure from the generative model.
func NewUpstreamError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeUpstream,
		Message:       message,
		StatusCode:    http.StatusBadGateway,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "The recipe service is temporarily unavailable. Try again shortly.",
		Err:           err,
	}
}

// NewMalformedResponseError creates a new malformed-response error (502)
// for replies that cannot be parsed as structured data.
func NewMalformedResponseError(message string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeMalformedResponse,
		Message:       message,
		StatusCode:    http.StatusBadGateway,
		ErrorCode:     "MALFORMED_RESPONSE",
		IsOperational: true,
		Recovery:      "The model produced an unreadable reply. Resubmit to generate a fresh one.",
		Err:           err,
	}
}

// NewInvalidRecipeShapeError creates a new invalid-recipe-shape error (422)
// naming the first field that failed validation.
func NewInvalidRecipeShapeError(field string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeInvalidRecipeShape,
		Message:       fmt.Sprintf("recipe response failed validation: %s", field),
		StatusCode:    http.StatusUnprocessableEntity,
		ErrorCode:     "INVALID_RECIPE_SHAPE",
		IsOperational: true,
		Recovery:      "Resubmit your request; the model occasionally returns an incomplete recipe.",
		Err:           err,
	}
}

// NewNotFoundError creates a new not found error (404)
func NewNotFoundError(message string, errorCode string) *AppError {
	return &AppError{
		Type:          ErrorTypeNotFound,
		Message:       message,
		StatusCode:    http.StatusNotFound,
		ErrorCode:     errorCode,
		IsOperational: true,
	}
}

// NewConflictError creates a new conflict error (409). Used when a submit
// arrives while a generation is already in flight for the session.
func NewConflictError(message string, errorCode string) *AppError {
	return &AppError{
		Type:          ErrorTypeConflict,
		Message:       message,
		StatusCode:    http.StatusConflict,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Wait for the current generation to finish before submitting again.",
	}
}

// NewInternalError creates a new internal error (500) for failures outside
// the operational taxonomy
func NewInternalError(message string, errorCode string, err error) *AppError {
	return &AppError{
		Type:          ErrorTypeInternal,
		Message:       message,
		StatusCode:    http.StatusInternalServerError,
		ErrorCode:     errorCode,
		IsOperational: false,
		Err:           err,
	}
}

// NewRateLimitError creates a new rate limit error (429)
func NewRateLimitError(message string, errorCode string) *AppError {
	return &AppError{
		Type:          ErrorTypeRateLimit,
		Message:       message,
		StatusCode:    http.StatusTooManyRequests,
		ErrorCode:     errorCode,
		IsOperational: true,
		Recovery:      "Slow down and retry in a few seconds.",
	}
}
