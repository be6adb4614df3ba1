// Package commands implements the lualint subcommands.
package commands

import (
	"errors"
	"log/slog"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/lualint/internal/cli/config"
	"github.com/leapstack-labs/lualint/internal/cli/output"
	"github.com/leapstack-labs/lualint/pkg/report"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Renderer *output.Renderer
}

// NewCommandContext builds the command dependencies from the config and
// logger stored on the command context. A non-empty format overrides the
// configured output mode.
func NewCommandContext(cmd *cobra.Command, format string) *CommandContext {
	cfg := config.GetConfig(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	mode := output.Mode(cfg.Output)
	if format != "" {
		mode = output.Mode(format)
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   logger,
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode),
	}
}

// ExitError carries a process exit status out of a command. Err, when set,
// is printed by the caller; a nil Err means the command already reported.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return "exit status " + strconv.Itoa(e.Code)
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

// ExitCode maps a command error to a process exit status: 0 for nil, the
// carried code for an ExitError and the fault status for anything else.
func ExitCode(err error) int {
	if err == nil {
		return report.ExitClean
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return report.ExitFault
}

// faultError wraps a tooling failure that happens outside the analyzer, such
// as an invalid flag value or a configuration error.
func faultError(err error) error {
	return &ExitError{Code: report.ExitFault, Err: err}
}
