package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	t.Run("Without cause", func(t *testing.T) {
		err := NewEmptyInputError("input is empty")
		if err.Error() != "input is empty" {
			t.Errorf("Error() = %q, want %q", err.Error(), "input is empty")
		}
	})

	t.Run("With cause", func(t *testing.T) {
		cause := errors.New("connection refused")
		err := NewUpstreamError("model request failed", "UPSTREAM_FAILURE", cause)
		expected := "model request failed: connection refused"
		if err.Error() != expected {
			t.Errorf("Error() = %q, want %q", err.Error(), expected)
		}
	})
}

func TestAppError_Unwrap(t *testing.T) {
	cause := errors.New("EOF")
	err := NewMalformedResponseError("reply is not valid JSON", cause)

	if !errors.Is(err, cause) {
		t.Error("expected errors.Is to match the wrapped cause")
	}

	var appErr *AppError
	wrapped := fmt.Errorf("generate: %w", err)
	if !errors.As(wrapped, &appErr) {
		t.Fatal("expected errors.As to find AppError through wrapping")
	}
	if appErr.Type != ErrorTypeMalformedResponse {
		t.Errorf("Type = %s, want %s", appErr.Type, ErrorTypeMalformedResponse)
	}
}

func TestStatusCodes(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected int
	}{
		{"Empty input", NewEmptyInputError("empty"), http.StatusBadRequest},
		{"Upstream", NewUpstreamError("down", "UPSTREAM_FAILURE", nil), http.StatusBadGateway},
		{"Malformed response", NewMalformedResponseError("bad json", nil), http.StatusBadGateway},
		{"Invalid recipe shape", NewInvalidRecipeShapeError("recipe.steps", nil), http.StatusUnprocessableEntity},
		{"Not found", NewNotFoundError("no session", "SESSION_NOT_FOUND"), http.StatusNotFound},
		{"Conflict", NewConflictError("busy", "GENERATION_IN_FLIGHT"), http.StatusConflict},
		{"Rate limit", NewRateLimitError("slow down", "RATE_LIMITED"), http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.StatusCode != tt.expected {
				t.Errorf("StatusCode = %d, want %d", tt.err.StatusCode, tt.expected)
			}
			if !tt.err.IsOperational {
				t.Error("expected IsOperational to be true")
			}
		})
	}
}

func TestIsRetryable(t *testing.T) {
	tests := []struct {
		name     string
		err      *AppError
		expected bool
	}{
		{"Rate limit is retryable", NewRateLimitError("slow down", "RATE_LIMITED"), true},
		{"Upstream 502 is retryable", NewUpstreamError("down", "UPSTREAM_FAILURE", nil), true},
		{"Empty input is not", NewEmptyInputError("empty"), false},
		{"Invalid shape is not", NewInvalidRecipeShapeError("recipe.macros", nil), false},
		{"Malformed response is not", NewMalformedResponseError("bad json", nil), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.IsRetryable(); got != tt.expected {
				t.Errorf("IsRetryable() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestTypeOf(t *testing.T) {
	if got := TypeOf(NewEmptyInputError("empty")); got != ErrorTypeEmptyInput {
		t.Errorf("TypeOf(AppError) = %s, want %s", got, ErrorTypeEmptyInput)
	}
	if got := TypeOf(errors.New("plain")); got != ErrorTypeInternal {
		t.Errorf("TypeOf(plain error) = %s, want %s", got, ErrorTypeInternal)
	}
	wrapped := fmt.Errorf("outer: %w", NewConflictError("busy", "GENERATION_IN_FLIGHT"))
	if got := TypeOf(wrapped); got != ErrorTypeConflict {
		t.Errorf("TypeOf(wrapped AppError) = %s, want %s", got, ErrorTypeConflict)
	}
}
