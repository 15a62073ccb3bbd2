package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/oakwood-commons/kvdig/internal/formatter"
	"github.com/oakwood-commons/kvdig/pkg/dig"
	"github.com/oakwood-commons/kvdig/pkg/settings"
)

// Exit statuses returned by ExitCode.
const (
	ExitOK           = 0
	ExitFailure      = 1
	ExitUsage        = 2
	ExitNotFound     = 3
	ExitTypeMismatch = 4
)

// usageError marks a bad invocation: unknown flags, invalid flag values or
// missing arguments.
type usageError struct {
	err error
}

func (e usageError) Error() string { return e.err.Error() }

func (e usageError) Unwrap() error { return e.err }

func usageArgs(validate cobra.PositionalArgs) cobra.PositionalArgs {
	return func(cmd *cobra.Command, args []string) error {
		if err := validate(cmd, args); err != nil {
			return usageError{err}
		}
		return nil
	}
}

// ExitCode maps an error returned by Execute to a process exit status.
func ExitCode(err error) int {
	var usage usageError
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, dig.ErrNotFound):
		return ExitNotFound
	case errors.Is(err, dig.ErrTypeMismatch):
		return ExitTypeMismatch
	case errors.As(err, &usage):
		return ExitUsage
	default:
		return ExitFailure
	}
}

// PrintError writes err to w unless --quiet was given. The message is styled
// when w is a terminal and color is enabled. Settings come from the executed
// command's context; errors raised before it ran fall back to the parsed flags.
func PrintError(w io.Writer, err error) {
	if err == nil {
		return
	}
	run := runSettings()
	if run.IsQuiet {
		return
	}
	plain := run.NoColor || !writerIsTerminal(w)
	fmt.Fprintln(w, formatter.ErrorText(err.Error(), plain))
	var usage usageError
	if errors.As(err, &usage) {
		fmt.Fprintf(w, "Run '%s --help' for usage.\n", rootCmd.CommandPath())
	}
}

func runSettings() *settings.Run {
	if executed != nil {
		if run, ok := settings.FromContext(executed.Context()); ok {
			return run
		}
	}
	run := settings.NewCliParams()
	run.IsQuiet = quiet
	run.NoColor = noColor || os.Getenv("NO_COLOR") != ""
	return run
}
