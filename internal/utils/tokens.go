package utils

import (
	"crypto/rand"
	"encoding/hex"
)

// NewRefreshToken returns an opaque 64-char hex token.
func NewRefreshToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
