package krypto

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"golang.org/x/crypto/argon2"
)

const (
	memory      = 64 * 1024
	iterations  = 3
	parallelism = 4

	// DefaultKeyLength is the edge key size in bytes (64 hex characters).
	DefaultKeyLength = 32

	// MaxKeyLength is the largest key, in bytes, either helper produces.
	MaxKeyLength = 1024
)

// ErrInvalidKeyLength is returned for key lengths outside 1..MaxKeyLength bytes.
var ErrInvalidKeyLength = errors.New("invalid key length")

// GenerateHexKey returns length random bytes as a lowercase hex string,
// suitable as an edge authorization shared secret.
func GenerateHexKey(length int) (string, error) {
	if length <= 0 || length > MaxKeyLength {
		return "", fmt.Errorf("%w: %d", ErrInvalidKeyLength, length)
	}

	b := make([]byte, length)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// DeriveHexKey stretches a passphrase into a length-byte hex key with
// Argon2id. The same passphrase and salt always yield the same key, so both
// sides of a CDN deployment can derive it independently.
func DeriveHexKey(passphrase, salt string, length uint32) (string, error) {
	if length == 0 || length > MaxKeyLength {
		return "", fmt.Errorf("%w: %d", ErrInvalidKeyLength, length)
	}
	if salt == "" {
		return "", errors.New("salt required")
	}

	key := argon2.IDKey([]byte(passphrase), []byte(salt), iterations, memory, parallelism, length)
	return hex.EncodeToString(key), nil
}
