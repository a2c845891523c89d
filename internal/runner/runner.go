package runner

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strings"

	"github.com/rs/zerolog"

	"github.com/shinji-kodama/devboot/internal/logging"
	"github.com/shinji-kodama/devboot/internal/model"
)

// Runner executes external commands.
type Runner interface {
	// Run executes cmd and blocks until it exits. The child's stdout and
	// stderr are streamed to the runner's writers.
	Run(ctx context.Context, cmd model.Command) error

	// Output executes cmd and returns its stdout. Stderr is still passed
	// through so the tool's diagnostics remain visible.
	Output(ctx context.Context, cmd model.Command) (string, error)
}

// ExecRunner is the os/exec backed Runner.
type ExecRunner struct {
	// Stdout receives the output of streamed commands.
	Stdout io.Writer

	// Stderr receives the error output of every command.
	Stderr io.Writer

	logger zerolog.Logger
}

// NewExecRunner creates an ExecRunner writing child output to the given
// writers. Nil writers discard the corresponding stream.
func NewExecRunner(stdout, stderr io.Writer) *ExecRunner {
	if stdout == nil {
		stdout = io.Discard
	}
	if stderr == nil {
		stderr = io.Discard
	}
	return &ExecRunner{
		Stdout: stdout,
		Stderr: stderr,
		logger: logging.GetLogger("runner"),
	}
}

// Run executes c, streaming its output.
func (r *ExecRunner) Run(ctx context.Context, c model.Command) error {
	cmd := r.command(ctx, c)
	cmd.Stdout = r.Stdout
	cmd.Stderr = r.Stderr

	if err := cmd.Run(); err != nil {
		return commandError(c, "", err)
	}
	return nil
}

// Output executes c and returns its captured stdout.
func (r *ExecRunner) Output(ctx context.Context, c model.Command) (string, error) {
	cmd := r.command(ctx, c)

	// Capture stderr as well so it can be included in the error message,
	// but keep teeing it to the user.
	var stdout, stderr strings.Builder
	cmd.Stdout = &stdout
	cmd.Stderr = io.MultiWriter(&stderr, r.Stderr)

	if err := cmd.Run(); err != nil {
		return stdout.String(), commandError(c, strings.TrimSpace(stderr.String()), err)
	}
	return stdout.String(), nil
}

// command builds the exec.Cmd for c.
func (r *ExecRunner) command(ctx context.Context, c model.Command) *exec.Cmd {
	logging.LogCommand(r.logger, c.Name, c.Args, c.Dir)

	cmd := exec.CommandContext(ctx, c.Name, c.Args...)
	cmd.Dir = c.Dir
	return cmd
}

// commandError wraps a failed invocation in a CLIError carrying the
// rendered command line and, when available, the captured stderr.
func commandError(c model.Command, stderr string, err error) error {
	message := fmt.Sprintf("%s failed", c.String())
	if stderr != "" {
		message = fmt.Sprintf("%s: %s", message, stderr)
	}
	return model.WrapCLIError(model.ExitCommandFailed, message, err)
}

// ExitStatus returns the exit status of the process behind err.
//
// It returns 0 for a nil error and -1 when err carries no exit status,
// e.g. because the executable was not found and never started.
func ExitStatus(err error) int {
	if err == nil {
		return 0
	}
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode()
	}
	return -1
}
