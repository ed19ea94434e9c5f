package utils

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
)

// HashRefreshToken hashes a raw refresh token for storage. SHA-256 is
// sufficient here: the token is already a high-entropy random string.
func HashRefreshToken(rawToken string) string {
	sum := sha256.Sum256([]byte(rawToken))
	return hex.EncodeToString(sum[:])
}

// CompareRefreshTokenHash compares a raw refresh token against a stored hash.
func CompareRefreshTokenHash(rawToken, storedHash string) bool {
	computed := HashRefreshToken(rawToken)
	return subtle.ConstantTimeCompare([]byte(computed), []byte(storedHash)) == 1
}
