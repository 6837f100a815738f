package edgeauth

import (
	"strconv"
	"strings"
)

// field is one name=value pair of a token.
type field struct {
	name  string
	value string
}

// visibleFields returns the fields emitted in the token, in wire order:
// ip, st, exp, acl, id, data. start is the effective start time.
func (r *TokenRequest) visibleFields(start int64) []field {
	fields := make([]field, 0, 6)

	if r.ip != "" {
		fields = append(fields, field{"ip", r.ip})
	}
	if r.startMode != startUnset {
		fields = append(fields, field{"st", strconv.FormatInt(start, 10)})
	}
	fields = append(fields, field{"exp", strconv.FormatInt(start+r.window, 10)})

	switch {
	case r.acl != "":
		fields = append(fields, field{"acl", r.encode(r.acl)})
	case r.url == "":
		fields = append(fields, field{"acl", r.encode(DefaultACL)})
	}

	if r.sessionID != "" {
		fields = append(fields, field{"id", r.sessionID})
	}
	if r.data != "" {
		fields = append(fields, field{"data", r.data})
	}

	return fields
}

// digestFields returns visible followed by the signed-only fields url and salt.
func (r *TokenRequest) digestFields(visible []field) []field {
	fields := make([]field, len(visible), len(visible)+2)
	copy(fields, visible)

	if r.url != "" && r.acl == "" {
		fields = append(fields, field{"url", r.encode(r.url)})
	}
	if r.salt != "" {
		fields = append(fields, field{"salt", r.salt})
	}

	return fields
}

// joinFields renders every field as name=value followed by delimiter.
func joinFields(fields []field, delimiter string) string {
	var b strings.Builder
	for _, f := range fields {
		b.WriteString(f.name)
		b.WriteByte('=')
		b.WriteString(f.value)
		b.WriteString(delimiter)
	}
	return b.String()
}

// canonicalize returns the visible token prefix and the exact HMAC input for
// the given effective start time. The digest input loses one trailing
// delimiter; delimiters inside values are left alone.
func (r *TokenRequest) canonicalize(start int64) (prefix, digest string) {
	visible := r.visibleFields(start)
	prefix = joinFields(visible, r.fieldDelimiter)
	digest = strings.TrimSuffix(joinFields(r.digestFields(visible), r.fieldDelimiter), r.fieldDelimiter)
	return prefix, digest
}

func (r *TokenRequest) encode(value string) string {
	if r.earlyURLEncoding {
		return rawURLEncode(value)
	}
	return value
}

const upperHex = "0123456789ABCDEF"

// rawURLEncode percent-encodes every byte outside the RFC 3986 unreserved
// set (A-Z a-z 0-9 - _ . ~) with uppercase hex digits.
func rawURLEncode(s string) string {
	n := 0
	for i := 0; i < len(s); i++ {
		if !isUnreserved(s[i]) {
			n++
		}
	}
	if n == 0 {
		return s
	}

	var b strings.Builder
	b.Grow(len(s) + 2*n)
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperHex[c>>4])
		b.WriteByte(upperHex[c&15])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	switch {
	case 'a' <= c && c <= 'z', 'A' <= c && c <= 'Z', '0' <= c && c <= '9':
		return true
	case c == '-', c == '_', c == '.', c == '~':
		return true
	}
	return false
}
