package config

import (
	"errors"
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// DefaultPrefix is prepended to every environment variable name unless
// LoadOptions.Prefix overrides it.
const DefaultPrefix = "BEAVER_"

// Define standard errors for the package
var (
	ErrInvalidTarget   = errors.New("config target must be a non-nil pointer to a struct")
	ErrMissingRequired = errors.New("missing required environment variable")
	ErrInvalidValue    = errors.New("invalid environment variable value")
)

// LoadOptions defines options for loading configuration from environment variables.
type LoadOptions struct {
	Prefix   string          // Prefix to prepend to environment variable names (default: "BEAVER_")
	Debug    bool            // Log every resolved variable at debug level
	EnvFiles []string        // .env files to load before reading the environment (default: ".env")
	Logger   *zerolog.Logger // Logger used for debug output (default: zerolog global logger)
}

// field describes a single parsed `env` struct tag.
type field struct {
	name         string
	defaultValue string
	hasDefault   bool
	required     bool
	secret       bool
}

// parseTag splits `env:"NAME,default:x,required,secret"` into its parts.
// Unknown options are ignored.
func parseTag(tag string) field {
	parts := strings.Split(tag, ",")
	f := field{name: parts[0]}

	for _, part := range parts[1:] {
		switch {
		case strings.HasPrefix(part, "default:"):
			f.defaultValue = strings.TrimPrefix(part, "default:")
			f.hasDefault = true
		case part == "required":
			f.required = true
		case part == "secret":
			f.secret = true
		}
	}

	return f
}

// Load populates a struct from .env files and environment variables using reflection.
// .env files are loaded first without overriding variables already present in the
// process environment; a missing .env file is not an error.
//
// The function uses struct field tags to determine environment variable names:
//   - `env:"VAR_NAME"`: Maps the field to the specified environment variable
//   - `env:"VAR_NAME,default:value"`: Provides a default value if env var is not set
//   - `env:"VAR_NAME,required"`: Fails with ErrMissingRequired when unset and no default exists
//   - `env:"VAR_NAME,secret"`: Redacts the value in debug output
//
// Environment variable names are automatically prefixed with the value specified
// in LoadOptions.Prefix (defaults to "BEAVER_").
//
// Example:
//
//	type Config struct {
//	    Key    string `env:"EDGEAUTH_KEY,required,secret"`
//	    Window int64  `env:"EDGEAUTH_WINDOW,default:300"`
//	}
//
//	var cfg Config
//	err := config.Load(&cfg, config.LoadOptions{Prefix: "MYAPP_"})
//	// Will look for MYAPP_EDGEAUTH_KEY, MYAPP_EDGEAUTH_WINDOW
func Load(cfg interface{}, opts ...LoadOptions) error {
	options := LoadOptions{Prefix: DefaultPrefix}
	if len(opts) > 0 {
		options = opts[0]
	}

	rv := reflect.ValueOf(cfg)
	if rv.Kind() != reflect.Ptr || rv.IsNil() || rv.Elem().Kind() != reflect.Struct {
		return ErrInvalidTarget
	}

	// Silently try to load .env files, ignore if not found
	_ = godotenv.Load(options.EnvFiles...)

	logger := log.Logger
	if options.Logger != nil {
		logger = *options.Logger
	}
	printDebug := options.Debug || os.Getenv(DefaultPrefix+"CONFIG_DEBUG") == "true"

	v := rv.Elem()
	t := v.Type()

	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		envTag := sf.Tag.Get("env")
		if envTag == "" || !sf.IsExported() {
			continue
		}

		f := parseTag(envTag)
		fullEnvName := options.Prefix + f.name

		value, ok := os.LookupEnv(fullEnvName)
		if !ok || value == "" {
			value = f.defaultValue
			ok = f.hasDefault
		}

		if !ok && f.required {
			return fmt.Errorf("%w: %s", ErrMissingRequired, fullEnvName)
		}

		if printDebug {
			shown := value
			if f.secret && shown != "" {
				shown = "***"
			}
			logger.Debug().Str("var", fullEnvName).Str("value", shown).Msg("config")
		}

		if value != "" {
			if err := setFieldValue(v.Field(i), value); err != nil {
				return fmt.Errorf("%w: %s: %v", ErrInvalidValue, fullEnvName, err)
			}
		}
	}

	return nil
}

// setFieldValue converts value to the field's type and assigns it.
// Supported: string, signed and unsigned integers, bool, float and time.Duration.
// Other kinds are skipped silently.
func setFieldValue(field reflect.Value, value string) error {
	// Check for time.Duration first
	if field.Type() == reflect.TypeOf(time.Duration(0)) {
		d, err := time.ParseDuration(value)
		if err != nil {
			return err
		}
		field.Set(reflect.ValueOf(d))
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, field.Type().Bits())
		if err != nil {
			return err
		}
		field.SetFloat(f)
	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)
	}
	return nil
}
