package shared

import (
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"
)

func TestNewAPIError(t *testing.T) {
	err := NewAPIError("test_code", "test message")
	if err.Code != "test_code" {
		t.Errorf("expected code 'test_code', got %s", err.Code)
	}
	if err.Message != "test message" {
		t.Errorf("expected message 'test message', got %s", err.Message)
	}
	if err.Details != nil {
		t.Error("details should be nil by default")
	}
}

func TestAPIError_WithDetails(t *testing.T) {
	details := map[string]string{"field": "value"}
	err := NewAPIError("code", "message").WithDetails(details)
	if err.Details == nil {
		t.Fatal("details should not be nil")
	}
}

func TestAPIError_WithSuggestion(t *testing.T) {
	err := NewAPIError("mic_denied", "microphone access denied").
		WithSuggestion("enable microphone access in settings")
	if err.Suggestion != "enable microphone access in settings" {
		t.Errorf("unexpected suggestion: %s", err.Suggestion)
	}
}

func TestAPIError_ToHTTP(t *testing.T) {
	httpErr := NewAPIError("code", "message").ToHTTP(http.StatusTeapot)
	if httpErr.Code != http.StatusTeapot {
		t.Errorf("expected status %d, got %d", http.StatusTeapot, httpErr.Code)
	}
}

func TestHTTPHelpers(t *testing.T) {
	tests := []struct {
		name   string
		fn     func(code, message string) *echo.HTTPError
		status int
	}{
		{"BadRequest", BadRequest, http.StatusBadRequest},
		{"Unauthorized", Unauthorized, http.StatusUnauthorized},
		{"Forbidden", Forbidden, http.StatusForbidden},
		{"NotFound", NotFound, http.StatusNotFound},
		{"Conflict", Conflict, http.StatusConflict},
		{"InternalError", InternalError, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := tt.fn("code", "message")
			if httpErr.Code != tt.status {
				t.Errorf("expected status %d, got %d", tt.status, httpErr.Code)
			}
			apiErr, ok := httpErr.Message.(*APIError)
			if !ok {
				t.Fatalf("expected *APIError message, got %T", httpErr.Message)
			}
			if apiErr.Code != "code" {
				t.Errorf("expected code 'code', got %s", apiErr.Code)
			}
		})
	}
}
