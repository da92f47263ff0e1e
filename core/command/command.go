package command

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/mattn/go-shellwords"
	"go.uber.org/zap"
)

// ErrEmptyCommand is returned when a command line contains no words.
var ErrEmptyCommand = errors.New("empty command")

// Runner executes external commands.
type Runner interface {
	// Run parses a shell-style command line and executes it.
	Run(ctx context.Context, command string) ([]byte, error)
	// RunArgs executes name with args without any parsing.
	RunArgs(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner runs commands with os/exec and returns combined output.
type ExecRunner struct {
	logger *zap.Logger
}

// NewRunner creates a new ExecRunner.
func NewRunner(logger *zap.Logger) *ExecRunner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExecRunner{logger: logger}
}

// Run splits command with shell quoting rules (no pipes or redirection)
// and executes it.
func (r *ExecRunner) Run(ctx context.Context, command string) ([]byte, error) {
	args, err := shellwords.Parse(command)
	if err != nil {
		return nil, fmt.Errorf("failed to parse command %q: %w", command, err)
	}
	if len(args) == 0 {
		return nil, ErrEmptyCommand
	}
	return r.RunArgs(ctx, args[0], args[1:]...)
}

// RunArgs executes name with args. A non-zero exit status is returned as an
// error wrapping *exec.ExitError; the output is returned either way.
func (r *ExecRunner) RunArgs(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	out, err := cmd.CombinedOutput()

	r.logger.Debug("Executed command",
		zap.String("command", name),
		zap.Strings("args", args),
		zap.Int("exit_code", cmd.ProcessState.ExitCode()),
	)

	if err != nil {
		msg := strings.TrimSpace(string(out))
		if msg != "" {
			return out, fmt.Errorf("command %s failed: %w: %s", name, err, msg)
		}
		return out, fmt.Errorf("command %s failed: %w", name, err)
	}
	return out, nil
}

// ExitCode extracts the process exit status from an error returned by a
// Runner. It returns -1 when err does not carry one.
func ExitCode(err error) int {
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode()
	}
	return -1
}
