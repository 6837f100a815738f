package edgeauth

import "errors"

// Validation errors returned by the TokenRequest setters. They are wrapped
// with the offending value; match them with errors.Is.
var (
	ErrInvalidAlgorithm        = errors.New("invalid algorithm, must be one of \"sha256\", \"sha1\" or \"md5\"")
	ErrInvalidIP               = errors.New("invalid IP, must be a valid IPv4 or IPv6 address")
	ErrInvalidStartTime        = errors.New("start time input invalid or out of range")
	ErrInvalidWindow           = errors.New("invalid window value, must be a positive number of seconds")
	ErrInvalidKey              = errors.New("key must be a hex string (a-f, 0-9 and even number of chars)")
	ErrMutuallyExclusiveFields = errors.New("cannot set both an ACL and a URL at the same time")
)

// ErrSigning reports a failure of the HMAC primitive or key decoding while
// producing a token. It is not retryable.
var ErrSigning = errors.New("token signing failed")

// Service errors
var (
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrNotInitialized = errors.New("service not initialized")
)

// errorReason maps an error to the metrics label used for it.
func errorReason(err error) string {
	switch {
	case errors.Is(err, ErrInvalidAlgorithm):
		return "invalid_algorithm"
	case errors.Is(err, ErrInvalidIP):
		return "invalid_ip"
	case errors.Is(err, ErrInvalidStartTime):
		return "invalid_start_time"
	case errors.Is(err, ErrInvalidWindow):
		return "invalid_window"
	case errors.Is(err, ErrInvalidKey):
		return "invalid_key"
	case errors.Is(err, ErrMutuallyExclusiveFields):
		return "mutually_exclusive_fields"
	case errors.Is(err, ErrSigning):
		return "signing"
	default:
		return "unknown"
	}
}
