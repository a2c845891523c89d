package model

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"
)

// StepKind identifies one of the fixed bootstrap steps.
//
// The steps always run in the order returned by Steps():
//
//	install-manager → install-dependencies → install-hooks → query-venv-path
type StepKind string

const (
	// StepInstallManager installs the dependency manager itself
	// (e.g. `pip install poetry`).
	StepInstallManager StepKind = "install-manager"

	// StepInstallDependencies resolves and installs the project's declared
	// dependencies into the managed virtual environment (`poetry install`).
	StepInstallDependencies StepKind = "install-dependencies"

	// StepInstallHooks installs the pre-commit git hook from inside the
	// managed environment (`poetry run pre-commit install`).
	StepInstallHooks StepKind = "install-hooks"

	// StepQueryEnvPath asks the dependency manager where it stores
	// virtual environments (`poetry config virtualenvs.path`).
	StepQueryEnvPath StepKind = "query-venv-path"
)

// Steps returns every StepKind in execution order.
func Steps() []StepKind {
	return []StepKind{
		StepInstallManager,
		StepInstallDependencies,
		StepInstallHooks,
		StepQueryEnvPath,
	}
}

// String returns the string representation of StepKind.
func (k StepKind) String() string {
	return string(k)
}

// StepStatus is the outcome of an attempted step.
type StepStatus string

const (
	// StatusSucceeded means the external command exited with status 0.
	StatusSucceeded StepStatus = "succeeded"

	// StatusFailed means the external command could not be started or
	// exited with a non-zero status.
	StatusFailed StepStatus = "failed"
)

// String returns the string representation of StepStatus.
func (s StepStatus) String() string {
	return string(s)
}

// Command describes one external process invocation.
type Command struct {
	// Name is the executable, resolved through PATH by os/exec.
	Name string `json:"name"`

	// Args are passed to the executable verbatim.
	Args []string `json:"args,omitempty"`

	// Dir is the working directory. Empty means the current directory.
	Dir string `json:"dir,omitempty"`
}

// String renders the command line the way a user would type it.
// Arguments containing whitespace are quoted.
func (c Command) String() string {
	parts := make([]string, 0, len(c.Args)+1)
	parts = append(parts, c.Name)
	for _, a := range c.Args {
		if a == "" || strings.ContainsAny(a, " \t\n\"'") {
			a = fmt.Sprintf("%q", a)
		}
		parts = append(parts, a)
	}
	return strings.Join(parts, " ")
}

// Step is a single planned external invocation within a bootstrap run.
type Step struct {
	// Kind identifies the step.
	Kind StepKind `json:"kind"`

	// Title is the banner printed before the step runs.
	Title string `json:"title"`

	// Command is the external process to invoke.
	Command Command `json:"command"`

	// Capture is true when the command's stdout is collected instead of
	// streamed to the terminal. Only the path query captures.
	Capture bool `json:"capture,omitempty"`
}

// StepResult records the outcome of one attempted step.
type StepResult struct {
	Kind     StepKind      `json:"kind"`
	Command  string        `json:"command"`
	Status   StepStatus    `json:"status"`
	ExitCode int           `json:"exitCode"`
	Output   string        `json:"output,omitempty"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration"`
}

// Succeeded reports whether the step's command exited cleanly.
func (r StepResult) Succeeded() bool {
	return r.Status == StatusSucceeded
}

// Project is an informational description of the directory being
// bootstrapped. Nothing in it gates a step; it only feeds the report.
type Project struct {
	// Root is the absolute working directory of the run.
	Root string `json:"root"`

	// Name and Version come from pyproject.toml when present.
	Name    string `json:"name,omitempty"`
	Version string `json:"version,omitempty"`

	// UsesPoetry is true when pyproject.toml has a [tool.poetry] table.
	UsesPoetry bool `json:"usesPoetry"`

	// GitDir is the resolved git directory, empty outside a repository.
	GitDir string `json:"gitDir,omitempty"`

	// HookPath is where the pre-commit hook lives once installed.
	HookPath string `json:"hookPath,omitempty"`

	// HookRepos lists the repositories configured in .pre-commit-config.yaml.
	HookRepos []string `json:"hookRepos,omitempty"`

	// HookIDs lists the hook ids configured across all HookRepos.
	HookIDs []string `json:"hookIds,omitempty"`
}

// DisplayName returns the project name, falling back to the base name of
// the root directory.
func (p *Project) DisplayName() string {
	if p.Name != "" {
		return p.Name
	}
	if p.Root == "" {
		return ""
	}
	return filepath.Base(p.Root)
}

// Report is the full record of a bootstrap run.
type Report struct {
	Project         *Project     `json:"project,omitempty"`
	Steps           []StepResult `json:"steps"`
	VirtualenvsPath string       `json:"virtualenvsPath"`
	HookInstalled   bool         `json:"hookInstalled"`
	Hints           []string     `json:"hints"`
	StartedAt       time.Time    `json:"startedAt"`
	FinishedAt      time.Time    `json:"finishedAt"`
}

// Failed returns the results of every step that did not succeed,
// in execution order.
func (r *Report) Failed() []StepResult {
	var failed []StepResult
	for _, s := range r.Steps {
		if !s.Succeeded() {
			failed = append(failed, s)
		}
	}
	return failed
}

// Result returns the result for the given step kind, if it was attempted.
func (r *Report) Result(kind StepKind) (StepResult, bool) {
	for _, s := range r.Steps {
		if s.Kind == kind {
			return s, true
		}
	}
	return StepResult{}, false
}

// ExitCode defines the process exit codes used by the CLI.
type ExitCode int

const (
	// ExitSuccess indicates the command completed. For the bootstrap run
	// this means every step was attempted, regardless of outcome, unless
	// strict mode is enabled.
	ExitSuccess ExitCode = 0

	// ExitGeneralError indicates an unspecified error occurred.
	ExitGeneralError ExitCode = 1

	// ExitConfigError indicates a configuration file or value was invalid.
	ExitConfigError ExitCode = 2

	// ExitCommandFailed indicates an external command failed. The bootstrap
	// run reports it only in strict mode; `devboot venv` always does.
	ExitCommandFailed ExitCode = 3
)

// CLIError is a custom error type that carries an exit code.
// This allows the CLI layer to translate domain errors into
// appropriate process exit codes.
type CLIError struct {
	// Code is the exit code to return to the OS.
	Code ExitCode

	// Message is the human-readable error description.
	Message string

	// Err is the underlying error, if any.
	Err error
}

// Error satisfies the error interface. It returns the human-readable
// error message, optionally including the underlying error.
func (e *CLIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap returns the underlying error for use with errors.Is/errors.As.
func (e *CLIError) Unwrap() error {
	return e.Err
}

// NewCLIError creates a new CLIError with the given exit code and message.
func NewCLIError(code ExitCode, message string) *CLIError {
	return &CLIError{Code: code, Message: message}
}

// WrapCLIError creates a new CLIError that wraps an existing error.
func WrapCLIError(code ExitCode, message string, err error) *CLIError {
	return &CLIError{Code: code, Message: message, Err: err}
}
