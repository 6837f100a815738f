package command

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/gobeaver/edgeauth/krypto"
)

// KeygenCommand returns the keygen command.
func KeygenCommand() *cli.Command {
	return &cli.Command{
		Name:  "keygen",
		Usage: "Generate a hex shared secret",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "bytes",
				Aliases: []string{"b"},
				Usage:   "Key length in bytes",
				Value:   krypto.DefaultKeyLength,
			},
			&cli.StringFlag{
				Name:    "passphrase",
				Usage:   "Derive the key from a passphrase instead of random bytes",
				EnvVars: []string{"EDGEAUTH_PASSPHRASE"},
			},
			&cli.StringFlag{
				Name:  "salt",
				Usage: "Salt for --passphrase derivation",
			},
		},
		Action: runKeygen,
	}
}

func runKeygen(c *cli.Context) error {
	logger := Logger(c)

	// Checked on the int so the uint32 conversion below cannot wrap.
	n := c.Int("bytes")
	if n <= 0 || n > krypto.MaxKeyLength {
		return fmt.Errorf("%w: %d", krypto.ErrInvalidKeyLength, n)
	}

	var (
		key string
		err error
	)
	passphrase := c.String("passphrase")
	if passphrase != "" {
		key, err = krypto.DeriveHexKey(passphrase, c.String("salt"), uint32(n))
	} else {
		key, err = krypto.GenerateHexKey(n)
	}
	if err != nil {
		return err
	}
	logger.Debug().Int("bytes", n).Bool("derived", passphrase != "").Msg("key generated")

	_, err = fmt.Fprintln(c.App.Writer, key)
	return err
}
