package model

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// NewSecureID creates a secure random ID with a prefix.
func NewSecureID(prefix string) string {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return fmt.Sprintf("%s%s", prefix, base64.RawURLEncoding.EncodeToString(b))
}

// NewSecureToken creates a secure random token string, used for OAuth state
// and password-reset tokens.
func NewSecureToken() string {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		panic(err)
	}
	return base64.RawURLEncoding.EncodeToString(b)
}
