package edgeauth

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "0011223344556677889900112233445566"

func fixedClock(sec int64) func() time.Time {
	return func() time.Time { return time.Unix(sec, 0) }
}

// expectedHMAC signs msg independently of the package code.
func expectedHMAC(t *testing.T, newHash func() hash.Hash, hexKey, msg string) string {
	t.Helper()
	key, err := hex.DecodeString(hexKey)
	require.NoError(t, err)
	h := hmac.New(newHash, key)
	h.Write([]byte(msg))
	return hex.EncodeToString(h.Sum(nil))
}

func newTestRequest(t *testing.T, now int64) *TokenRequest {
	t.Helper()
	req := NewTokenRequest()
	require.NoError(t, req.SetKey(testKey))
	req.now = fixedClock(now)
	return req
}

func TestGenerateToken(t *testing.T) {
	tests := []struct {
		name       string
		now        int64
		setup      func(t *testing.T, r *TokenRequest)
		wantPrefix string
		wantDigest string
	}{
		{
			name:       "defaults use open acl",
			now:        1700000000,
			setup:      func(t *testing.T, r *TokenRequest) {},
			wantPrefix: "exp=1700000300~acl=/*~",
			wantDigest: "exp=1700000300~acl=/*",
		},
		{
			name: "default acl is encoded early",
			now:  1700000000,
			setup: func(t *testing.T, r *TokenRequest) {
				r.SetEarlyURLEncoding(true)
			},
			wantPrefix: "exp=1700000300~acl=%2F%2A~",
			wantDigest: "exp=1700000300~acl=%2F%2A",
		},
		{
			name: "all visible fields with salt",
			now:  1700000000,
			setup: func(t *testing.T, r *TokenRequest) {
				require.NoError(t, r.SetIP("203.0.113.7"))
				require.NoError(t, r.SetStartTimeUnix(1600000000))
				require.NoError(t, r.SetWindow(600))
				require.NoError(t, r.SetACL("/videos/*"))
				r.SetSessionID("sess-42")
				r.SetData("payload")
				r.SetSalt("pepper")
			},
			wantPrefix: "ip=203.0.113.7~st=1600000000~exp=1600000600~acl=/videos/*~id=sess-42~data=payload~",
			wantDigest: "ip=203.0.113.7~st=1600000000~exp=1600000600~acl=/videos/*~id=sess-42~data=payload~salt=pepper",
		},
		{
			name: "url is signed but not emitted",
			now:  1700000000,
			setup: func(t *testing.T, r *TokenRequest) {
				require.NoError(t, r.SetURL("/videos/intro.mp4"))
			},
			wantPrefix: "exp=1700000300~",
			wantDigest: "exp=1700000300~url=/videos/intro.mp4",
		},
		{
			name: "url and salt are encoded only where required",
			now:  1700000000,
			setup: func(t *testing.T, r *TokenRequest) {
				require.NoError(t, r.SetURL("/a b/c.mp4"))
				r.SetSessionID("a b")
				r.SetData("x y")
				r.SetSalt("s/t")
				r.SetEarlyURLEncoding(true)
			},
			wantPrefix: "exp=1700000300~id=a b~data=x y~",
			wantDigest: "exp=1700000300~id=a b~data=x y~url=%2Fa%20b%2Fc.mp4~salt=s/t",
		},
		{
			name: "start time now is resolved at signing",
			now:  1700000123,
			setup: func(t *testing.T, r *TokenRequest) {
				require.NoError(t, r.SetStartTime("NOW"))
			},
			wantPrefix: "st=1700000123~exp=1700000423~acl=/*~",
			wantDigest: "st=1700000123~exp=1700000423~acl=/*",
		},
		{
			name: "only one trailing delimiter is stripped",
			now:  1700000000,
			setup: func(t *testing.T, r *TokenRequest) {
				r.SetFieldDelimiter("!!")
				r.SetData("tail!!")
			},
			wantPrefix: "exp=1700000300!!acl=/*!!data=tail!!!!",
			wantDigest: "exp=1700000300!!acl=/*!!data=tail!!",
		},
		{
			name: "empty delimiter",
			now:  1700000000,
			setup: func(t *testing.T, r *TokenRequest) {
				r.SetFieldDelimiter("")
			},
			wantPrefix: "exp=1700000300acl=/*",
			wantDigest: "exp=1700000300acl=/*",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := newTestRequest(t, tt.now)
			tt.setup(t, req)

			start := req.effectiveStart()
			prefix, digest := req.canonicalize(start)
			assert.Equal(t, tt.wantPrefix, prefix)
			assert.Equal(t, tt.wantDigest, digest)

			token, err := req.GenerateToken()
			require.NoError(t, err)

			want := tt.wantPrefix + "hmac=" + expectedHMAC(t, sha256.New, testKey, tt.wantDigest)
			assert.Equal(t, want, token)
		})
	}
}

func TestGenerateTokenAlgorithms(t *testing.T) {
	tests := []struct {
		algorithm string
		newHash   func() hash.Hash
		length    int
	}{
		{"sha256", sha256.New, 64},
		{"sha1", sha1.New, 40},
		{"md5", md5.New, 32},
	}

	for _, tt := range tests {
		t.Run(tt.algorithm, func(t *testing.T) {
			req := newTestRequest(t, 1700000000)
			require.NoError(t, req.SetAlgorithm(tt.algorithm))
			require.NoError(t, req.SetACL("/live/*"))

			token, err := req.GenerateToken()
			require.NoError(t, err)

			idx := strings.LastIndex(token, "hmac=")
			require.GreaterOrEqual(t, idx, 0)
			sig := token[idx+len("hmac="):]
			assert.Len(t, sig, tt.length)
			assert.Equal(t, tt.length, req.Algorithm().SignatureLength())
			assert.Equal(t, expectedHMAC(t, tt.newHash, testKey, "exp=1700000300~acl=/live/*"), sig)
		})
	}
}

func TestGenerateTokenRoundTrip(t *testing.T) {
	req := newTestRequest(t, 1700000000)
	require.NoError(t, req.SetIP("2001:db8::1"))
	require.NoError(t, req.SetURL("/hls/master.m3u8"))
	req.SetSessionID("abc")
	req.SetSalt("s3cr3t")

	token, err := req.GenerateToken()
	require.NoError(t, err)

	idx := strings.LastIndex(token, "hmac=")
	require.GreaterOrEqual(t, idx, 0)
	visible, sig := token[:idx], token[idx+len("hmac="):]

	digest := visible + "url=" + req.URL() + req.FieldDelimiter() + "salt=" + req.Salt() + req.FieldDelimiter()
	digest = strings.TrimSuffix(digest, req.FieldDelimiter())

	assert.NotContains(t, token, "url=")
	assert.NotContains(t, token, "salt=")
	assert.Equal(t, expectedHMAC(t, sha256.New, testKey, digest), sig)
}

func TestGenerateTokenIdempotent(t *testing.T) {
	now := int64(1700000000)
	req := NewTokenRequest()
	require.NoError(t, req.SetKey(testKey))
	req.now = func() time.Time { return time.Unix(now, 0) }

	first, err := req.GenerateToken()
	require.NoError(t, err)
	second, err := req.GenerateToken()
	require.NoError(t, err)
	assert.Equal(t, first, second)

	now++
	third, err := req.GenerateToken()
	require.NoError(t, err)
	assert.NotEqual(t, first, third)
	assert.True(t, strings.HasPrefix(third, "exp=1700000301~acl=/*~hmac="))
}

func TestSignReportsTimes(t *testing.T) {
	req := newTestRequest(t, 1700000000)
	require.NoError(t, req.SetWindow(60))

	signed, err := req.Sign()
	require.NoError(t, err)

	assert.Equal(t, SHA256, signed.Algorithm)
	assert.Equal(t, int64(1700000000), signed.StartTime.Unix())
	assert.Equal(t, int64(1700000060), signed.Expires.Unix())
	assert.Equal(t, signed.Token, signed.String())
}

func TestGenerateTokenWithoutKey(t *testing.T) {
	req := NewTokenRequest()

	_, err := req.GenerateToken()
	assert.ErrorIs(t, err, ErrInvalidKey)
}

func TestRawURLEncode(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"/*", "%2F%2A"},
		{"abcXYZ019-_.~", "abcXYZ019-_.~"},
		{"a b+c", "a%20b%2Bc"},
		{"/p?q=1&r=2", "%2Fp%3Fq%3D1%26r%3D2"},
		{"é", "%C3%A9"},
		{"", ""},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, rawURLEncode(tt.in), "rawURLEncode(%q)", tt.in)
	}
}
