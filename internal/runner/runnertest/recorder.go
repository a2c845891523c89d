// Package runnertest provides an in-memory runner.Runner for tests.
package runnertest

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/shinji-kodama/devboot/internal/model"
)

// Response is the scripted result of a command.
type Response struct {
	// Stdout is returned by Output, or written to the Recorder's Stdout
	// by Run.
	Stdout string

	// ExitCode, when non-zero, makes the command fail with that status.
	ExitCode int
}

// Recorder records every invocation and answers with scripted responses,
// keyed by the rendered command line (model.Command.String()).
// Commands without a response succeed with no output.
type Recorder struct {
	// Stdout receives the scripted output of streamed commands. Nil
	// discards it.
	Stdout io.Writer

	mu        sync.Mutex
	calls     []model.Command
	responses map[string]Response
}

// New returns an empty Recorder.
func New() *Recorder {
	return &Recorder{responses: make(map[string]Response)}
}

// Respond scripts the response for a command line such as
// "poetry config virtualenvs.path".
func (r *Recorder) Respond(cmdline string, resp Response) *Recorder {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.responses[cmdline] = resp
	return r
}

// Fail scripts a failure with the given exit code.
func (r *Recorder) Fail(cmdline string, code int) *Recorder {
	return r.Respond(cmdline, Response{ExitCode: code})
}

// Run records c and writes its scripted stdout.
func (r *Recorder) Run(ctx context.Context, c model.Command) error {
	resp, err := r.record(ctx, c)
	if r.Stdout != nil && resp.Stdout != "" {
		_, _ = io.WriteString(r.Stdout, resp.Stdout)
	}
	return err
}

// Output records c and returns its scripted stdout.
func (r *Recorder) Output(ctx context.Context, c model.Command) (string, error) {
	resp, err := r.record(ctx, c)
	return resp.Stdout, err
}

func (r *Recorder) record(ctx context.Context, c model.Command) (Response, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.calls = append(r.calls, c)
	if err := ctx.Err(); err != nil {
		return Response{}, model.WrapCLIError(model.ExitCommandFailed, c.String()+" failed", err)
	}

	resp := r.responses[c.String()]
	if resp.ExitCode != 0 {
		return resp, model.WrapCLIError(model.ExitCommandFailed,
			c.String()+" failed", &ExitError{Code: resp.ExitCode})
	}
	return resp, nil
}

// Calls returns a copy of the recorded invocations in order.
func (r *Recorder) Calls() []model.Command {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]model.Command, len(r.calls))
	copy(out, r.calls)
	return out
}

// CommandLines returns the recorded invocations rendered as command lines.
func (r *Recorder) CommandLines() []string {
	calls := r.Calls()
	lines := make([]string, len(calls))
	for i, c := range calls {
		lines[i] = c.String()
	}
	return lines
}

// ExitError mimics *exec.ExitError for scripted failures.
type ExitError struct {
	Code int
}

func (e *ExitError) Error() string {
	return fmt.Sprintf("exit status %d", e.Code)
}

// ExitCode returns the scripted exit status.
func (e *ExitError) ExitCode() int {
	return e.Code
}
