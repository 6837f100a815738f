package command

import (
	"encoding/json"
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gobeaver/edgeauth/edgeauth"
	"github.com/gobeaver/edgeauth/krypto"
)

// TokenCommand returns the token command.
func TokenCommand() *cli.Command {
	return &cli.Command{
		Name:   "token",
		Usage:  "Generate a signed token",
		Flags:  tokenFlags(),
		Action: runToken,
	}
}

func tokenFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "key",
			Aliases: []string{"k"},
			Usage:   "Shared secret as an even-length hex string",
			EnvVars: []string{"EDGEAUTH_KEY", "BEAVER_EDGEAUTH_KEY"},
		},
		&cli.StringFlag{
			Name:    "algo",
			Aliases: []string{"a"},
			Usage:   "HMAC algorithm: sha256, sha1 or md5",
			Value:   string(edgeauth.DefaultAlgorithm),
		},
		&cli.StringFlag{
			Name:  "ip",
			Usage: "Client IP the token is bound to",
		},
		&cli.StringFlag{
			Name:    "start-time",
			Aliases: []string{"s"},
			Usage:   "Start time in epoch seconds, or \"now\"",
		},
		&cli.Int64Flag{
			Name:    "window",
			Aliases: []string{"w"},
			Usage:   "Token lifetime in seconds",
			Value:   edgeauth.DefaultWindow,
		},
		&cli.StringFlag{
			Name:  "acl",
			Usage: "Access control list pattern, e.g. /videos/*",
		},
		&cli.StringFlag{
			Name:  "url",
			Usage: "Single URL the token is valid for (signed, not emitted)",
		},
		&cli.StringFlag{
			Name:  "session-id",
			Usage: "Session id to embed",
		},
		&cli.BoolFlag{
			Name:  "new-session",
			Usage: "Embed a freshly generated session id",
		},
		&cli.StringFlag{
			Name:  "session-format",
			Usage: "Format of --new-session ids: uuid, compact",
			Value: "uuid",
		},
		&cli.StringFlag{
			Name:  "data",
			Usage: "Opaque payload to embed",
		},
		&cli.StringFlag{
			Name:  "salt",
			Usage: "Additional secret mixed into the signature",
		},
		&cli.StringFlag{
			Name:    "field-delimiter",
			Aliases: []string{"d"},
			Usage:   "Field delimiter",
			Value:   edgeauth.DefaultFieldDelimiter,
		},
		&cli.BoolFlag{
			Name:    "escape-early",
			Aliases: []string{"x"},
			Usage:   "Percent-encode acl and url values before signing",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: text, json",
			Value:   "text",
		},
	}
}

// tokenOutput is the json rendering of a signed token.
type tokenOutput struct {
	Token     string `json:"token"`
	Algorithm string `json:"algorithm"`
	StartTime int64  `json:"start_time"`
	Expires   int64  `json:"expires"`
	SessionID string `json:"session_id,omitempty"`
}

func runToken(c *cli.Context) error {
	logger := Logger(c)

	if c.String("key") == "" {
		return fmt.Errorf("--key is required (or set EDGEAUTH_KEY)")
	}
	if c.IsSet("session-id") && c.Bool("new-session") {
		return fmt.Errorf("--session-id and --new-session are mutually exclusive")
	}

	newSession, err := sessionGenerator(c.String("session-format"))
	if err != nil {
		return err
	}

	output := c.String("output")
	if output != "text" && output != "json" {
		return fmt.Errorf("unsupported output format: %s", output)
	}

	g, err := edgeauth.New(edgeauth.Config{
		Key:              c.String("key"),
		Algorithm:        c.String("algo"),
		Window:           c.Int64("window"),
		EarlyURLEncoding: c.Bool("escape-early"),
		Salt:             c.String("salt"),
	}, edgeauth.WithLogger(logger))
	if err != nil {
		return err
	}

	req, err := buildRequest(c, g, newSession)
	if err != nil {
		return err
	}

	signed, err := g.Generate(req)
	if err != nil {
		return err
	}

	if output == "json" {
		enc := json.NewEncoder(c.App.Writer)
		enc.SetIndent("", "  ")
		return enc.Encode(tokenOutput{
			Token:     signed.Token,
			Algorithm: signed.Algorithm.String(),
			StartTime: signed.StartTime.Unix(),
			Expires:   signed.Expires.Unix(),
			SessionID: req.SessionID(),
		})
	}

	_, err = fmt.Fprintln(c.App.Writer, signed.Token)
	return err
}

// sessionGenerator maps --session-format to the id generator used by
// --new-session.
func sessionGenerator(format string) (func() string, error) {
	switch format {
	case "uuid":
		return krypto.NewSessionID, nil
	case "compact":
		return krypto.NewCompactSessionID, nil
	}
	return nil, fmt.Errorf("unsupported session format: %s", format)
}

// buildRequest applies the per-token flags to a request from g.
func buildRequest(c *cli.Context, g *edgeauth.Generator, newSession func() string) (*edgeauth.TokenRequest, error) {
	req := g.NewRequest()

	// The flag always carries a value, including an explicitly empty one.
	req.SetFieldDelimiter(c.String("field-delimiter"))

	if err := req.SetWindow(c.Int64("window")); err != nil {
		return nil, err
	}

	if ip := c.String("ip"); ip != "" {
		if err := req.SetIP(ip); err != nil {
			return nil, err
		}
	}
	if st := c.String("start-time"); st != "" {
		if err := req.SetStartTime(st); err != nil {
			return nil, err
		}
	}
	if acl := c.String("acl"); acl != "" {
		if err := req.SetACL(acl); err != nil {
			return nil, err
		}
	}
	if url := c.String("url"); url != "" {
		if err := req.SetURL(url); err != nil {
			return nil, err
		}
	}

	sessionID := c.String("session-id")
	if c.Bool("new-session") {
		sessionID = newSession()
	}
	req.SetSessionID(sessionID)

	req.SetData(c.String("data"))

	return req, nil
}
