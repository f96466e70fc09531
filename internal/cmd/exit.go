package cmd

import (
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/osukit/osukit/internal/observability"
)

// Exit codes used by the CLI.
const (
	ExitFailure       = 1
	ExitConfigInvalid = 2
	ExitAuthFailure   = 3
)

// ExitWithCode logs the error through the CLI logger and exits.
func ExitWithCode(code int, msg string, err error) {
	observability.Logger().Error(msg, zap.Int("exit_code", code), zap.Error(err))
	os.Exit(code)
}

// ExitWithCodeStderr writes to stderr without a logger. Use for failures
// before logger initialization.
func ExitWithCodeStderr(code int, msg string, err error) {
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: %s: %v\n", msg, err)
	} else {
		fmt.Fprintf(os.Stderr, "FATAL: %s\n", msg)
	}
	os.Exit(code)
}
