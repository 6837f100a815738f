package krypto

import (
	"strings"

	"github.com/google/uuid"
)

// NewSessionID returns a random UUID v4 for the token id field.
func NewSessionID() string {
	return uuid.New().String()
}

// NewCompactSessionID returns 32 hex characters of UUID v4 randomness,
// without dashes.
func NewCompactSessionID() string {
	return strings.ReplaceAll(uuid.New().String(), "-", "")
}
