package errors

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"
)

func TestAppError_Error(t *testing.T) {
	tests := []struct {
		name     string
		appErr   *AppError
		expected string
	}{
		{
			name:     "without cause",
			appErr:   InvalidInput("bad selection"),
			expected: "INVALID_INPUT: bad selection",
		},
		{
			name:     "with cause",
			appErr:   Internal("render failed", errors.New("no catalog entry")),
			expected: "INTERNAL_ERROR: render failed (caused by: no catalog entry)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.appErr.Error(); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestConstructors(t *testing.T) {
	tests := []struct {
		name       string
		err        *AppError
		wantCode   string
		wantStatus int
	}{
		{"not found", NotFound("route"), CodeNotFound, http.StatusNotFound},
		{"validation", Validation("invalid", nil), CodeValidation, http.StatusUnprocessableEntity},
		{"invalid input", InvalidInput("bad"), CodeInvalidInput, http.StatusBadRequest},
		{"internal", Internal("oops", nil), CodeInternal, http.StatusInternalServerError},
		{"timeout", Timeout("Request timeout"), CodeTimeout, http.StatusServiceUnavailable},
		{"rate limited", RateLimited(), CodeRateLimited, http.StatusTooManyRequests},
		{"unsupported media type", UnsupportedMediaType("application/json"), CodeUnsupportedMediaType, http.StatusUnsupportedMediaType},
		{"payload too large", PayloadTooLarge(1024), CodePayloadTooLarge, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.wantCode {
				t.Errorf("code = %s, want %s", tt.err.Code, tt.wantCode)
			}
			if tt.err.StatusCode() != tt.wantStatus {
				t.Errorf("status = %d, want %d", tt.err.StatusCode(), tt.wantStatus)
			}
		})
	}
}

func TestAppError_WithDetails(t *testing.T) {
	err := Validation("invalid selection", nil).WithDetails(map[string]any{"region": "must be one of northern southern eastern western"})

	if err.Details["region"] == nil {
		t.Error("expected details to be set")
	}
}

func TestAsAppError(t *testing.T) {
	t.Run("app error passes through", func(t *testing.T) {
		original := InvalidInput("bad")
		if got := AsAppError(original); got != original {
			t.Errorf("expected same AppError")
		}
	})

	t.Run("wrapped app error is found", func(t *testing.T) {
		original := InvalidInput("bad")
		wrapped := fmt.Errorf("handler: %w", original)
		if got := AsAppError(wrapped); got != original {
			t.Errorf("expected wrapped AppError to be unwrapped")
		}
	})

	t.Run("plain error becomes internal", func(t *testing.T) {
		cause := errors.New("boom")
		got := AsAppError(cause)
		if got.Code != CodeInternal {
			t.Errorf("expected %s, got %s", CodeInternal, got.Code)
		}
		if !errors.Is(got, cause) {
			t.Error("internal error should keep the original cause")
		}
	})
}

func TestAppError_ToJSON(t *testing.T) {
	var body map[string]string
	if err := json.Unmarshal(RateLimited().ToJSON(), &body); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if body["error"] != "Rate limit exceeded" || body["code"] != CodeRateLimited {
		t.Errorf("unexpected body %v", body)
	}
}
