// Package command provides the CLI command definitions for edgeauth.
//
// It uses urfave/cli/v2 for command parsing. Diagnostics go to stderr
// through zerolog; tokens and keys are written to the app's Writer.
package command

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/urfave/cli/v2"
)

// Build information, set via ldflags.
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

const loggerKey = "logger"

// App creates the CLI application.
func App() *cli.App {
	app := &cli.App{
		Name:    "edgeauth",
		Usage:   "Generate signed CDN edge authorization tokens",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, BuildTime),
		Flags:   globalFlags(),
		Commands: []*cli.Command{
			TokenCommand(),
			KeygenCommand(),
		},
		Before: func(c *cli.Context) error {
			level := zerolog.InfoLevel
			if c.Bool("verbose") {
				level = zerolog.DebugLevel
			}
			logger := zerolog.New(zerolog.ConsoleWriter{Out: c.App.ErrWriter, NoColor: true}).
				Level(level).
				With().Timestamp().Logger()
			c.App.Metadata[loggerKey] = logger
			return nil
		},
		ErrWriter: os.Stderr,
	}

	return app
}

// globalFlags returns the global CLI flags.
func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable verbose output",
			EnvVars: []string{"EDGEAUTH_VERBOSE"},
		},
	}
}

// Logger retrieves the logger configured in Before.
func Logger(c *cli.Context) zerolog.Logger {
	if logger, ok := c.App.Metadata[loggerKey].(zerolog.Logger); ok {
		return logger
	}
	return zerolog.Nop()
}

// PrintError prints an error message to stderr.
func PrintError(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
