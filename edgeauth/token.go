package edgeauth

import (
	"encoding/hex"
	"fmt"
	"time"
)

// SignedToken is the result of signing a TokenRequest.
type SignedToken struct {
	// Token is the wire value, e.g. "exp=1700000300~acl=/*~hmac=...".
	Token string

	Algorithm Algorithm
	StartTime time.Time
	Expires   time.Time
}

func (t *SignedToken) String() string {
	return t.Token
}

// GenerateToken signs the request and returns the token string.
func (r *TokenRequest) GenerateToken() (string, error) {
	signed, err := r.Sign()
	if err != nil {
		return "", err
	}
	return signed.Token, nil
}

// Sign signs the request. The start time is resolved from the clock unless
// an explicit one was set.
func (r *TokenRequest) Sign() (*SignedToken, error) {
	if r.key == "" {
		return nil, fmt.Errorf("%w: key not set", ErrInvalidKey)
	}

	keyBytes, err := hex.DecodeString(r.key)
	if err != nil {
		return nil, fmt.Errorf("%w: decode key: %v", ErrSigning, err)
	}

	start := r.effectiveStart()
	prefix, digest := r.canonicalize(start)

	signature, err := sign(r.algorithm, keyBytes, digest)
	if err != nil {
		return nil, err
	}

	return &SignedToken{
		Token:     prefix + "hmac=" + signature,
		Algorithm: r.algorithm,
		StartTime: time.Unix(start, 0),
		Expires:   time.Unix(start+r.window, 0),
	}, nil
}

func (r *TokenRequest) effectiveStart() int64 {
	if r.startMode == startFixed {
		return r.startTime
	}
	now := r.now
	if now == nil {
		now = time.Now
	}
	return now().Unix()
}
