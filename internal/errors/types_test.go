package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	err := &AppError{
		Message: "something went wrong",
	}
	if err.Error() != "something went wrong" {
		t.Errorf("expected 'something went wrong', got %v", err.Error())
	}

	wrappedErr := errors.New("underlying error")
	errWithWrap := &AppError{
		Message: "failed operation",
		Err:     wrappedErr,
	}
	expected := "failed operation: underlying error"
	if errWithWrap.Error() != expected {
		t.Errorf("expected %q, got %q", expected, errWithWrap.Error())
	}
	if !errors.Is(errWithWrap, wrappedErr) {
		t.Error("expected AppError to unwrap to the underlying error")
	}
}

func TestAppError_Code(t *testing.T) {
	err := &AppError{
		ErrorCode: "ERR_CODE_123",
	}
	if err.Code() != "ERR_CODE_123" {
		t.Errorf("expected ERR_CODE_123, got %v", err.Code())
	}
}

func TestAs(t *testing.T) {
	appErr := NewValidationError("bad", "BAD", "")
	wrapped := fmt.Errorf("handler: %w", appErr)

	got, ok := As(wrapped)
	if !ok {
		t.Fatal("expected As to find the AppError")
	}
	if got != appErr {
		t.Errorf("expected the same AppError pointer")
	}

	if _, ok := As(errors.New("plain")); ok {
		t.Error("expected As to fail for a plain error")
	}
}

func TestIsType(t *testing.T) {
	err := fmt.Errorf("flow: %w", NewConfigurationError("no key", "NO_KEY", nil))
	if !IsType(err, ErrorTypeConfiguration) {
		t.Error("expected configuration type")
	}
	if IsType(err, ErrorTypeValidation) {
		t.Error("did not expect validation type")
	}
	if IsType(nil, ErrorTypeValidation) {
		t.Error("nil error has no type")
	}
}

func TestConstructors(t *testing.T) {
	cause := errors.New("boom")
	tests := []struct {
		name       string
		err        *AppError
		wantType   ErrorType
		wantStatus int
	}{
		{"configuration", NewConfigurationError("m", "C", cause), ErrorTypeConfiguration, http.StatusServiceUnavailable},
		{"validation", NewValidationError("m", "C", "s"), ErrorTypeValidation, http.StatusBadRequest},
		{"generation", NewRecipeGenerationError("m", "C", cause), ErrorTypeRecipeGeneration, http.StatusBadGateway},
		{"translation", NewTranslationError("m", "C", cause), ErrorTypeTranslation, http.StatusBadGateway},
		{"conflict", NewConflictError("m", "C", "s"), ErrorTypeConflict, http.StatusConflict},
		{"unauthorized", NewUnauthorizedError("m", "C"), ErrorTypeUnauthorized, http.StatusUnauthorized},
		{"internal", NewInternalError("m", cause), ErrorTypeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Type != tt.wantType {
				t.Errorf("Type = %v, want %v", tt.err.Type, tt.wantType)
			}
			if tt.err.StatusCode != tt.wantStatus {
				t.Errorf("StatusCode = %d, want %d", tt.err.StatusCode, tt.wantStatus)
			}
			if tt.err.Message != "m" {
				t.Errorf("Message = %q, want %q", tt.err.Message, "m")
			}
		})
	}
}
