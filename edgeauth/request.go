package edgeauth

import (
	"fmt"
	"net"
	"regexp"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultWindow is the token lifetime in seconds when none is set.
	DefaultWindow int64 = 300

	// DefaultFieldDelimiter separates token fields.
	DefaultFieldDelimiter = "~"

	// DefaultACL is used when neither an ACL nor a URL is set.
	DefaultACL = "/*"

	// maxStartTime is the exclusive upper bound for explicit start times.
	maxStartTime int64 = 4294967295
)

var hexKeyPattern = regexp.MustCompile(`^[a-fA-F0-9]+$`)

type startMode int

const (
	startUnset startMode = iota
	startNow
	startFixed
)

// TokenRequest holds the fields of a single edge authorization token.
//
// A request starts with the defaults from NewTokenRequest, is populated
// through the validating setters and is then signed with GenerateToken.
// Setters fail fast: an invalid value leaves the field unchanged.
//
// A TokenRequest must not be mutated while it is being signed. Distinct
// requests may be used from different goroutines freely.
type TokenRequest struct {
	algorithm        Algorithm
	ip               string
	startMode        startMode
	startTime        int64
	window           int64
	acl              string
	url              string
	sessionID        string
	data             string
	salt             string
	key              string
	fieldDelimiter   string
	earlyURLEncoding bool

	now func() time.Time
}

// NewTokenRequest returns a request with the default algorithm, window and
// field delimiter. A key must be set before signing.
func NewTokenRequest() *TokenRequest {
	return &TokenRequest{
		algorithm:      DefaultAlgorithm,
		window:         DefaultWindow,
		fieldDelimiter: DefaultFieldDelimiter,
		now:            time.Now,
	}
}

// Reset clears the per-token fields (ip, start time, acl, url, session id and
// data) so the request can be reused. Algorithm, key, window, salt, delimiter
// and encoding are kept.
func (r *TokenRequest) Reset() {
	r.ip = ""
	r.startMode = startUnset
	r.startTime = 0
	r.acl = ""
	r.url = ""
	r.sessionID = ""
	r.data = ""
}

// SetAlgorithm sets the HMAC algorithm: "sha256", "sha1" or "md5".
func (r *TokenRequest) SetAlgorithm(name string) error {
	a, err := ParseAlgorithm(name)
	if err != nil {
		return err
	}
	r.algorithm = a
	return nil
}

func (r *TokenRequest) Algorithm() Algorithm {
	return r.algorithm
}

// SetIP restricts the token to a client address. Both IPv4 and IPv6
// literals are accepted; zoned IPv6 addresses are not.
func (r *TokenRequest) SetIP(ip string) error {
	if net.ParseIP(ip) == nil {
		return fmt.Errorf("%w: %q", ErrInvalidIP, ip)
	}
	r.ip = ip
	return nil
}

func (r *TokenRequest) IP() string {
	return r.ip
}

// SetStartTime accepts "now" (any case), resolved when the token is signed,
// or a decimal number of epoch seconds in (0, 4294967295).
func (r *TokenRequest) SetStartTime(value string) error {
	v := strings.TrimSpace(value)
	if strings.EqualFold(v, "now") {
		r.SetStartTimeNow()
		return nil
	}

	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidStartTime, value)
	}
	return r.SetStartTimeUnix(n)
}

// SetStartTimeUnix sets an explicit start time in epoch seconds.
func (r *TokenRequest) SetStartTimeUnix(sec int64) error {
	if sec <= 0 || sec >= maxStartTime {
		return fmt.Errorf("%w: %d", ErrInvalidStartTime, sec)
	}
	r.startMode = startFixed
	r.startTime = sec
	return nil
}

// SetStartTimeNow emits an st field holding the signing time.
func (r *TokenRequest) SetStartTimeNow() {
	r.startMode = startNow
	r.startTime = 0
}

// StartTime returns the explicit start time and whether one is set. For
// "now" it reports (0, true) since the value is only known at signing.
func (r *TokenRequest) StartTime() (int64, bool) {
	return r.startTime, r.startMode != startUnset
}

// SetWindow sets the token lifetime in seconds.
func (r *TokenRequest) SetWindow(seconds int64) error {
	if seconds <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWindow, seconds)
	}
	r.window = seconds
	return nil
}

func (r *TokenRequest) Window() int64 {
	return r.window
}

// SetACL sets the access control list pattern, e.g. "/videos/*".
func (r *TokenRequest) SetACL(acl string) error {
	if r.url != "" {
		return ErrMutuallyExclusiveFields
	}
	r.acl = acl
	return nil
}

func (r *TokenRequest) ACL() string {
	return r.acl
}

// SetURL sets the single URL the token is valid for. The URL is signed but
// never emitted; the verifier takes it from the request it authorizes.
func (r *TokenRequest) SetURL(url string) error {
	if r.acl != "" {
		return ErrMutuallyExclusiveFields
	}
	r.url = url
	return nil
}

func (r *TokenRequest) URL() string {
	return r.url
}

// SetSessionID sets the id field. Any string is accepted and emitted as is;
// an empty id clears it.
func (r *TokenRequest) SetSessionID(id string) {
	r.sessionID = id
}

func (r *TokenRequest) SessionID() string {
	return r.sessionID
}

// SetData sets the opaque data field. It is emitted as is.
func (r *TokenRequest) SetData(data string) {
	r.data = data
}

func (r *TokenRequest) Data() string {
	return r.data
}

// SetSalt sets a value that is mixed into the signature but never emitted.
func (r *TokenRequest) SetSalt(salt string) {
	r.salt = salt
}

func (r *TokenRequest) Salt() string {
	return r.salt
}

// SetKey sets the shared secret as an even-length hex string.
func (r *TokenRequest) SetKey(key string) error {
	if !hexKeyPattern.MatchString(key) || len(key)%2 != 0 {
		return ErrInvalidKey
	}
	r.key = key
	return nil
}

func (r *TokenRequest) Key() string {
	return r.key
}

// SetFieldDelimiter replaces the "~" between fields.
func (r *TokenRequest) SetFieldDelimiter(delimiter string) {
	r.fieldDelimiter = delimiter
}

func (r *TokenRequest) FieldDelimiter() string {
	return r.fieldDelimiter
}

// SetEarlyURLEncoding percent-encodes the acl and url values before they are
// signed and emitted.
func (r *TokenRequest) SetEarlyURLEncoding(enabled bool) {
	r.earlyURLEncoding = enabled
}

func (r *TokenRequest) EarlyURLEncoding() bool {
	return r.earlyURLEncoding
}
