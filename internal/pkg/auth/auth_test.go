package auth

import (
	"encoding/base64"
	"strings"
	"testing"
	"time"
)

func TestHMACStrategyRoundTrip(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})

	tok, err := strategy.IssueToken("operator")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	subject, err := strategy.ParseToken(tok)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if subject != "operator" {
		t.Fatalf("unexpected subject %q", subject)
	}
}

func TestHMACStrategyRejectsBadSubject(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	if _, err := strategy.IssueToken(""); err == nil {
		t.Fatal("expected error for empty subject")
	}
	if _, err := strategy.IssueToken("a:b"); err == nil {
		t.Fatal("expected error for subject with separator")
	}
}

func TestHMACStrategyRejectsTamperedToken(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	tok, err := strategy.IssueToken("operator")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	raw, _ := base64.StdEncoding.DecodeString(tok)
	forged := strings.Replace(string(raw), "operator", "intruder", 1)
	tampered := base64.StdEncoding.EncodeToString([]byte(forged))

	if _, err := strategy.ParseToken(tampered); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategyRejectsWrongSecret(t *testing.T) {
	tok, err := NewHMACStrategy("one", Options{}).IssueToken("operator")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := NewHMACStrategy("two", Options{}).ParseToken(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategyRejectsExpiredToken(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{TTL: -time.Minute})
	tok, err := strategy.IssueToken("operator")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := strategy.ParseToken(tok); err != ErrInvalidToken {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}
}

func TestHMACStrategyRejectsGarbage(t *testing.T) {
	strategy := NewHMACStrategy("secret", Options{})
	for _, tok := range []string{"", "not-base64!!", base64.StdEncoding.EncodeToString([]byte("a:b"))} {
		if _, err := strategy.ParseToken(tok); err != ErrInvalidToken {
			t.Fatalf("expected ErrInvalidToken for %q, got %v", tok, err)
		}
	}
}

func TestBcryptHasher(t *testing.T) {
	hasher := NewBcryptHasher(4)
	hash, err := hasher.Hash("s3cret")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := hasher.Compare(hash, "s3cret"); err != nil {
		t.Fatalf("expected matching password: %v", err)
	}
	if err := hasher.Compare(hash, "wrong"); err == nil {
		t.Fatal("expected mismatch error")
	}
}
