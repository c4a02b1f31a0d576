package main

import (
	"context"
	"os"

	"guessrset/internal/cli"
)

// main is a deterministic boundary: all argument handling, validation and
// exit-code mapping lives in internal/cli.
func main() {
	os.Exit(cli.Run(context.Background(), os.Args[1:], os.Stdout, os.Stderr))
}
