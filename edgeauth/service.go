package edgeauth

import (
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/gobeaver/edgeauth/config"
)

// Global instance management
var (
	defaultInstance *Generator
	defaultOnce     sync.Once
	defaultErr      error
)

// Generator signs tokens with a fixed set of defaults taken from Config.
// It is safe for concurrent use: every call works on its own TokenRequest.
type Generator struct {
	template TokenRequest
	logger   zerolog.Logger
	metrics  *Metrics
}

// Option configures a Generator.
type Option func(*Generator)

// WithLogger sets the logger used for debug output. Keys and salts are
// never logged.
func WithLogger(logger zerolog.Logger) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// WithMetrics records token counts on m.
func WithMetrics(m *Metrics) Option {
	return func(g *Generator) {
		g.metrics = m
	}
}

// WithClock replaces time.Now for start time resolution.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		if now != nil {
			g.template.now = now
		}
	}
}

// Builder loads configuration under a custom environment prefix
type Builder struct {
	prefix string
}

// WithPrefix creates a new Builder with the specified prefix
func WithPrefix(prefix string) *Builder {
	return &Builder{prefix: prefix}
}

// Init initializes the global instance using the builder's prefix
func (b *Builder) Init() error {
	cfg, err := GetConfig(config.LoadOptions{Prefix: b.prefix})
	if err != nil {
		return err
	}
	return Init(*cfg)
}

// New creates a new generator using the builder's prefix
func (b *Builder) New(opts ...Option) (*Generator, error) {
	cfg, err := GetConfig(config.LoadOptions{Prefix: b.prefix})
	if err != nil {
		return nil, err
	}
	return New(*cfg, opts...)
}

// GetConfig returns config loaded from environment
func GetConfig(opts ...config.LoadOptions) (*Config, error) {
	cfg := &Config{}
	if err := config.Load(cfg, opts...); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return cfg, nil
}

// Init initializes the global instance with optional config
func Init(configs ...Config) error {
	defaultOnce.Do(func() {
		var cfg *Config
		if len(configs) > 0 {
			cfg = &configs[0]
		} else {
			cfg, defaultErr = GetConfig()
			if defaultErr != nil {
				return
			}
		}

		defaultInstance, defaultErr = New(*cfg)
	})

	return defaultErr
}

// New creates a new generator with given config
func New(cfg Config, opts ...Option) (*Generator, error) {
	template, err := newTemplate(cfg.withDefaults())
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	g := &Generator{
		template: *template,
		logger:   zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g, nil
}

// newTemplate validates cfg by applying it to a fresh request.
func newTemplate(cfg Config) (*TokenRequest, error) {
	req := NewTokenRequest()

	if cfg.Key == "" {
		return nil, fmt.Errorf("key required")
	}
	if err := req.SetKey(cfg.Key); err != nil {
		return nil, err
	}
	if err := req.SetAlgorithm(cfg.Algorithm); err != nil {
		return nil, err
	}
	if err := req.SetWindow(cfg.Window); err != nil {
		return nil, err
	}
	req.SetFieldDelimiter(cfg.FieldDelimiter)
	req.SetEarlyURLEncoding(cfg.EarlyURLEncoding)
	req.SetSalt(cfg.Salt)

	return req, nil
}

// Reset clears the global instance (for testing)
func Reset() {
	defaultInstance = nil
	defaultOnce = sync.Once{}
	defaultErr = nil
}

// Service returns the global generator instance, initializing it from the
// environment on first use. It returns nil when initialization failed.
func Service() *Generator {
	if defaultInstance == nil {
		_ = Init()
	}
	return defaultInstance
}

// GenerateACLToken signs a token for acl with the global instance.
func GenerateACLToken(acl string) (string, error) {
	g := Service()
	if g == nil {
		return "", ErrNotInitialized
	}
	return g.GenerateACLToken(acl)
}

// GenerateURLToken signs a token for url with the global instance.
func GenerateURLToken(url string) (string, error) {
	g := Service()
	if g == nil {
		return "", ErrNotInitialized
	}
	return g.GenerateURLToken(url)
}

// NewRequest returns a TokenRequest preloaded with the generator's key,
// algorithm, window, salt, delimiter and encoding.
func (g *Generator) NewRequest() *TokenRequest {
	req := g.template
	return &req
}

// GenerateACLToken signs a token granting access to the acl pattern.
func (g *Generator) GenerateACLToken(acl string) (string, error) {
	req := g.NewRequest()
	if err := req.SetACL(acl); err != nil {
		return "", err
	}
	signed, err := g.Generate(req)
	if err != nil {
		return "", err
	}
	return signed.Token, nil
}

// GenerateURLToken signs a token for exactly one url.
func (g *Generator) GenerateURLToken(url string) (string, error) {
	req := g.NewRequest()
	if err := req.SetURL(url); err != nil {
		return "", err
	}
	signed, err := g.Generate(req)
	if err != nil {
		return "", err
	}
	return signed.Token, nil
}

// Generate signs req and records the outcome.
func (g *Generator) Generate(req *TokenRequest) (*SignedToken, error) {
	signed, err := req.Sign()
	if err != nil {
		g.metrics.observeError(err)
		g.logger.Error().Err(err).Str("algorithm", req.Algorithm().String()).Msg("token generation failed")
		return nil, err
	}

	g.metrics.observeToken(signed.Algorithm)
	g.logger.Debug().
		Str("algorithm", signed.Algorithm.String()).
		Str("acl", req.ACL()).
		Str("url", req.URL()).
		Bool("ip", req.IP() != "").
		Int64("exp", signed.Expires.Unix()).
		Msg("token generated")

	return signed, nil
}
