// Package config loads struct-based configuration from environment variables
// and .env files.
//
// Fields are mapped with an `env` struct tag. The first element is the variable
// name (without prefix); the remaining comma-separated options are:
//   - default:<value>  value used when the variable is unset or empty
//   - required         Load fails with ErrMissingRequired when no value exists
//   - secret           the value is redacted in debug output
//
// Basic usage:
//
//	type Config struct {
//	    Key       string `env:"EDGEAUTH_KEY,required,secret"`
//	    Algorithm string `env:"EDGEAUTH_ALGORITHM,default:sha256"`
//	    Window    int64  `env:"EDGEAUTH_WINDOW,default:300"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return fmt.Errorf("failed to load config: %w", err)
//	}
//
// Every name is prefixed with LoadOptions.Prefix, "BEAVER_" by default, so the
// example above reads BEAVER_EDGEAUTH_KEY. Pass an explicit prefix to isolate
// several configurations in one process:
//
//	err := config.Load(&cfg, config.LoadOptions{Prefix: "CDN_A_"})
//
// # Environment Files
//
// Before reading the environment, Load reads LoadOptions.EnvFiles (".env" when
// empty) with github.com/joho/godotenv. Variables already present in the
// process environment take precedence over file values, and missing files are
// ignored.
//
// # Supported Types
//
//   - string
//   - int, int8, int16, int32, int64
//   - uint, uint8, uint16, uint32, uint64
//   - float32, float64
//   - bool (strconv.ParseBool syntax)
//   - time.Duration (time.ParseDuration syntax)
//
// # Debug Mode
//
// Set BEAVER_CONFIG_DEBUG=true or LoadOptions.Debug to log each resolved
// variable through zerolog at debug level. Values tagged secret are printed as
// "***".
package config
