package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestNew(t *testing.T) {
	err := New(ErrCodeCartItemNotFound, "test error message")

	if err.Code != ErrCodeCartItemNotFound {
		t.Errorf("expected code %s, got %s", ErrCodeCartItemNotFound, err.Code)
	}

	if err.Message != "test error message" {
		t.Errorf("expected message 'test error message', got '%s'", err.Message)
	}

	if err.Cause != nil {
		t.Errorf("expected nil cause, got %v", err.Cause)
	}
}

func TestWrap(t *testing.T) {
	cause := fmt.Errorf("underlying error")
	err := Wrap(ErrCodeStateReadFailed, "failed to read state", cause)

	if err.Code != ErrCodeStateReadFailed {
		t.Errorf("expected code %s, got %s", ErrCodeStateReadFailed, err.Code)
	}

	if err.Cause != cause {
		t.Errorf("expected cause to be set")
	}

	// Test unwrapping
	if !errors.Is(err, cause) {
		t.Errorf("Wrap should support errors.Is")
	}
}

func TestErrorFormatting(t *testing.T) {
	tests := []struct {
		name     string
		err      *KopiError
		wantCode string
		wantMsg  string
	}{
		{
			name:     "simple error",
			err:      New(ErrCodeCartEmpty, "the cart is empty"),
			wantCode: "CART-002",
			wantMsg:  "the cart is empty",
		},
		{
			name:     "error with cause",
			err:      Wrap(ErrCodeStateReadFailed, "read failed", fmt.Errorf("permission denied")),
			wantCode: "STATE-003",
			wantMsg:  "read failed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			msg := tt.err.Error()
			if !strings.Contains(msg, tt.wantCode) {
				t.Errorf("expected error to contain code %s, got: %s", tt.wantCode, msg)
			}
			if !strings.Contains(msg, tt.wantMsg) {
				t.Errorf("expected error to contain message %q, got: %s", tt.wantMsg, msg)
			}
		})
	}
}

func TestWithSuggestions(t *testing.T) {
	err := New(ErrCodeAuthRequired, "not signed in").
		WithSuggestion("sign in first").
		WithSuggestions("or register", "or use guest checkout")

	if len(err.Suggestions) != 3 {
		t.Fatalf("expected 3 suggestions, got %d", len(err.Suggestions))
	}

	msg := err.Error()
	if !strings.Contains(msg, "Suggestions:") {
		t.Errorf("expected formatted error to contain suggestions section")
	}
	if !strings.Contains(msg, "sign in first") {
		t.Errorf("expected formatted error to contain first suggestion")
	}
}

func TestCode(t *testing.T) {
	if got := Code(NewEmptyCartError()); got != ErrCodeCartEmpty {
		t.Errorf("expected %s, got %s", ErrCodeCartEmpty, got)
	}

	if got := Code(fmt.Errorf("plain")); got != "" {
		t.Errorf("expected empty code for plain error, got %s", got)
	}
}

func TestCommonConstructors(t *testing.T) {
	tests := []struct {
		name string
		err  *KopiError
		code ErrorCode
	}{
		{"connectivity", NewConnectivityError(fmt.Errorf("dial tcp: refused")), ErrCodeAPINetwork},
		{"session expired", NewSessionExpiredError(), ErrCodeAuthSessionExpired},
		{"auth required", NewAuthRequiredError(), ErrCodeAuthRequired},
		{"admin required", NewAdminRequiredError(), ErrCodeAuthAdminRequired},
		{"empty cart", NewEmptyCartError(), ErrCodeCartEmpty},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.err.Code != tt.code {
				t.Errorf("expected code %s, got %s", tt.code, tt.err.Code)
			}
			if len(tt.err.Suggestions) == 0 {
				t.Errorf("expected at least one suggestion")
			}
		})
	}
}
