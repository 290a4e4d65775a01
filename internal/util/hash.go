package util

import (
	"crypto/sha256"
	"encoding/base64"
)

// Sha256Base64URL returns base64url (no padding) of sha256(plain).
func Sha256Base64URL(plain string) string {
	sum := sha256.Sum256([]byte(plain))
	return base64.RawURLEncoding.EncodeToString(sum[:])
}
