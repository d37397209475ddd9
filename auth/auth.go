// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
)

var ErrBadCredentials = errors.New("invalid username or password")

// GenerateID creates a random hex ID of the specified byte length
func GenerateID(byteLen int) (string, error) {
	b := make([]byte, byteLen)
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate random ID: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// GenerateSessionToken creates a random secure token for a login session
func GenerateSessionToken() (string, error) {
	b := make([]byte, 24) // 24 bytes = 192 bits of entropy
	_, err := rand.Read(b)
	if err != nil {
		return "", fmt.Errorf("failed to generate session token: %w", err)
	}
	// URL-safe base64 without padding
	return strings.TrimRight(base64.URLEncoding.EncodeToString(b), "="), nil
}

// HashPassword creates a salted one-way hash of a password.
// The salt is a server-wide secret, so stored hashes are useless
// without the server configuration.
func HashPassword(password, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(password))
	sum := h.Sum(nil)
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}

// CheckPassword verifies a password against a stored hash in constant time
func CheckPassword(password, salt, storedHash string) error {
	expected := HashPassword(password, salt)
	if !hmac.Equal([]byte(storedHash), []byte(expected)) {
		return ErrBadCredentials
	}
	return nil
}
