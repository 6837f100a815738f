package edgeauth

import (
	"crypto/hmac"
	"crypto/md5"  //nolint:gosec
	"crypto/sha1" //nolint:gosec
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"hash"
)

// Algorithm is the HMAC hash used to sign a token.
type Algorithm string

// Supported algorithms. The edge verifier must be configured with the same one.
const (
	SHA256 Algorithm = "sha256"
	SHA1   Algorithm = "sha1"
	MD5    Algorithm = "md5"
)

// DefaultAlgorithm is used when none is set.
const DefaultAlgorithm = SHA256

// ParseAlgorithm returns the Algorithm named by name. Names are matched
// exactly: "sha256", "sha1" or "md5".
func ParseAlgorithm(name string) (Algorithm, error) {
	switch a := Algorithm(name); a {
	case SHA256, SHA1, MD5:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidAlgorithm, name)
	}
}

func (a Algorithm) String() string {
	return string(a)
}

// SignatureLength is the number of hex characters in the hmac field.
func (a Algorithm) SignatureLength() int {
	switch a {
	case SHA1:
		return sha1.Size * 2
	case MD5:
		return md5.Size * 2
	default:
		return sha256.Size * 2
	}
}

func (a Algorithm) newHash() (func() hash.Hash, error) {
	switch a {
	case SHA256:
		return sha256.New, nil
	case SHA1:
		return sha1.New, nil
	case MD5:
		return md5.New, nil
	default:
		return nil, fmt.Errorf("%w: unsupported algorithm %q", ErrSigning, string(a))
	}
}

// sign returns the lowercase hex HMAC of msg keyed by key.
func sign(a Algorithm, key []byte, msg string) (string, error) {
	newHash, err := a.newHash()
	if err != nil {
		return "", err
	}

	h := hmac.New(newHash, key)
	if _, err := h.Write([]byte(msg)); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSigning, err)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}
