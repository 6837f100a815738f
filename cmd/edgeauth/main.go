// Package main provides the entry point for the edgeauth CLI.
package main

import (
	"os"

	"github.com/gobeaver/edgeauth/internal/command"
)

func main() {
	app := command.App()

	if err := app.Run(os.Args); err != nil {
		command.PrintError("%v", err)
		os.Exit(1)
	}
}
