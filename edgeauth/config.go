package edgeauth

// Config defines the signing defaults applied to every token a Generator
// produces.
type Config struct {
	// Key is the shared HMAC secret as an even-length hex string
	Key string `env:"EDGEAUTH_KEY,required,secret"`

	// Algorithm is the HMAC hash: sha256, sha1 or md5
	Algorithm string `env:"EDGEAUTH_ALGORITHM,default:sha256"`

	// Window is the token lifetime in seconds
	Window int64 `env:"EDGEAUTH_WINDOW,default:300"`

	// FieldDelimiter separates token fields
	FieldDelimiter string `env:"EDGEAUTH_FIELD_DELIMITER,default:~"`

	// EarlyURLEncoding percent-encodes acl and url values before signing
	EarlyURLEncoding bool `env:"EDGEAUTH_EARLY_URL_ENCODING,default:false"`

	// Salt is mixed into every signature but never emitted
	Salt string `env:"EDGEAUTH_SALT,secret"`
}

// withDefaults fills zero values with the package defaults.
func (c Config) withDefaults() Config {
	if c.Algorithm == "" {
		c.Algorithm = string(DefaultAlgorithm)
	}
	if c.Window == 0 {
		c.Window = DefaultWindow
	}
	if c.FieldDelimiter == "" {
		c.FieldDelimiter = DefaultFieldDelimiter
	}
	return c
}
