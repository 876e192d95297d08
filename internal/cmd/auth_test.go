package cmd

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestTokenExpiry(t *testing.T) {
	exp := time.Date(2026, 10, 1, 9, 30, 0, 0, time.Local)
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"sub": "1",
		"exp": exp.Unix(),
	})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	got := tokenExpiry(signed)
	want := exp.Format("2006-01-02 15:04:05")
	if got != want {
		t.Errorf("tokenExpiry() = %q, want %q", got, want)
	}
}

func TestTokenExpiryOpaqueToken(t *testing.T) {
	if got := tokenExpiry("fake-admin-token-12345"); got != "" {
		t.Errorf("tokenExpiry() = %q, want empty for an opaque token", got)
	}
}

func TestTokenExpiryNoClaim(t *testing.T) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "1"})
	signed, err := token.SignedString([]byte("test-secret"))
	if err != nil {
		t.Fatal(err)
	}

	if got := tokenExpiry(signed); got != "" {
		t.Errorf("tokenExpiry() = %q, want empty when no exp claim", got)
	}
}

func TestParseID(t *testing.T) {
	id, err := parseID("42")
	if err != nil {
		t.Fatalf("parseID(42) error = %v", err)
	}
	if id != 42 {
		t.Errorf("parseID() = %d, want 42", id)
	}

	if _, err := parseID("latte"); err == nil {
		t.Error("parseID(latte) expected an error")
	}
	if _, err := parseID("-1"); err == nil {
		t.Error("parseID(-1) expected an error")
	}
}
