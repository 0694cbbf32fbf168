// Package token generates and compares the capability secrets that gate the
// client review surface.
package token

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
)

const reviewTokenBytes = 32

// NewReviewToken returns a URL-safe random secret. It is minted once per
// order and never rotated unless an operator explicitly reissues it.
func NewReviewToken() (string, error) {
	buf := make([]byte, reviewTokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generate review token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

// Equal compares a presented token against the stored one in constant time.
func Equal(stored, presented string) bool {
	if stored == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(presented)) == 1
}
