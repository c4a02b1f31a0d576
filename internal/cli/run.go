package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
)

// Run is the high-level CLI entrypoint, suitable for black-box tests. It
// accepts the argument slice (excluding argv[0]) and returns the semantic
// exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	// Optional env files; missing files are the normal case.
	_ = godotenv.Load(".env", ".env.local")

	interactive := isatty.IsTerminal(os.Stdin.Fd())

	cmd := NewRootCommand(stdout, stderr, interactive)
	cmd.SetArgs(args)
	cmd.SetOut(stderr)
	cmd.SetErr(stderr)

	if err := cmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(stderr, err)
		var invErr *InvocationError
		if errors.As(err, &invErr) {
			return invErr.Code
		}
		// Anything untyped came from cobra's own flag parsing.
		return ExitInvalidInvocation
	}
	return ExitSuccess
}
