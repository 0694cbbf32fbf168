package token

import (
	"strings"
	"testing"
)

func TestNewReviewTokenLengthAndCharset(t *testing.T) {
	tok, err := NewReviewToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 32 bytes base64url without padding is 43 characters.
	if len(tok) != 43 {
		t.Fatalf("unexpected token length %d", len(tok))
	}
	if strings.ContainsAny(tok, "+/=") {
		t.Fatalf("token %q is not URL-safe", tok)
	}
}

func TestNewReviewTokenUniqueness(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 100; i++ {
		tok, err := NewReviewToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if seen[tok] {
			t.Fatal("duplicate token generated")
		}
		seen[tok] = true
	}
}

func TestEqual(t *testing.T) {
	if !Equal("abc123", "abc123") {
		t.Error("expected equal tokens to match")
	}
	if Equal("abc123", "abc124") {
		t.Error("expected different tokens to mismatch")
	}
	if Equal("", "") {
		t.Error("empty stored token must never match")
	}
	if Equal("", "guess") {
		t.Error("empty stored token must never match")
	}
}
