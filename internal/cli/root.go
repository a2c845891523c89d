// Package cli implements the cobra-based CLI commands for devboot.
//
// The root command runs the bootstrap sequence itself; the plan and venv
// subcommands are defined in their own files within this package. This
// file defines the root command, the global flags and the error handling
// shared by every command.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/devboot/internal/config"
	"github.com/shinji-kodama/devboot/internal/logging"
	"github.com/shinji-kodama/devboot/internal/model"
	"github.com/shinji-kodama/devboot/internal/report"
	"github.com/shinji-kodama/devboot/internal/runner"
)

// Global flag variables shared across all subcommands.
// These are bound to cobra persistent flags on the root command,
// which makes them available to every subcommand automatically.
var (
	// jsonOutput controls whether command output is formatted as JSON.
	// When true, stdout carries a single JSON document and child process
	// output is moved to stderr.
	jsonOutput bool

	// verbosity is the number of -v flags. It selects the log level.
	verbosity int

	// configFile is an explicit config file layered above the project file.
	configFile string

	// workDir is the project directory. Empty means the current directory.
	workDir string

	// formatName is the raw --format value, parsed into outputFormat by
	// the root command's PersistentPreRunE.
	formatName   string
	outputFormat report.Format
)

// version, commit, and date are set at build time via ldflags.
// They are injected from the main package to display version information.
var (
	// Version is the semantic version of the binary (e.g., "1.0.0").
	Version = "dev"

	// Commit is the Git commit hash the binary was built from.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// newRunner creates the process runner used by every command. Tests
// replace it with a runnertest.Recorder.
var newRunner = func(stdout, stderr io.Writer) runner.Runner {
	return runner.NewExecRunner(stdout, stderr)
}

// configOptions builds the config.Options for a project directory.
// Tests replace it to keep the user's own config file out of the way.
var configOptions = func(dir string) config.Options {
	return config.Options{Dir: dir, File: configFile}
}

// rootFlags holds the flag values that only the root command accepts.
type rootFlags struct {
	// strict makes the run exit with ExitCommandFailed when any step
	// failed. Every step is still attempted.
	strict bool
}

// NewRootCommand creates and configures the root cobra command.
// This is the entry point for the entire CLI application.
//
// Running the root command without a subcommand performs the bootstrap:
// install poetry, install the project dependencies, install the pre-commit
// hook, print the virtualenv location and the test hints.
func NewRootCommand() *cobra.Command {
	flags := &rootFlags{}

	rootCmd := &cobra.Command{
		// Use is the one-line usage pattern shown in help output.
		Use:   "devboot",
		Short: "Bootstrap a Poetry-managed Python project on a developer machine",
		Long: `devboot prepares a freshly cloned Poetry project for development.

It runs, in order and without stopping on failure:
  pip install poetry
  poetry install
  poetry run pre-commit install
  poetry config virtualenvs.path

and then prints how to run the test suite.

Examples:
  devboot
  devboot -C ~/src/anvil
  devboot --strict --json`,

		// The bootstrap takes no positional arguments; its behaviour is
		// the same on every invocation.
		Args: cobra.NoArgs,

		// SilenceUsage prevents cobra from printing usage on every error.
		// We handle error output ourselves for cleaner UX.
		SilenceUsage: true,

		// SilenceErrors prevents cobra from printing errors automatically.
		// We format errors ourselves (text or JSON based on --json flag).
		SilenceErrors: true,

		// Version is displayed when --version flag is used.
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", Version, Commit, Date),

		// Logging must be configured before any command touches config
		// or runs a process.
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logging.Setup(verbosity, cmd.ErrOrStderr())

			format, err := report.ParseFormat(formatName)
			if err != nil {
				return model.WrapCLIError(model.ExitGeneralError, "invalid --format value", err)
			}
			outputFormat = format
			return nil
		},

		RunE: func(cmd *cobra.Command, args []string) error {
			return runBootstrap(cmd, flags)
		},
	}

	// Reset state left over from an earlier NewRootCommand call.
	outputFormat = report.FormatAuto

	// PersistentFlags are inherited by all subcommands.
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format (same as --format json)")
	rootCmd.PersistentFlags().StringVar(&formatName, "format", "auto", "Output format: auto, term, text, json")
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "Increase log verbosity (-v info, -vv debug, -vvv trace)")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file layered above the project's .devboot file")
	rootCmd.PersistentFlags().StringVarP(&workDir, "dir", "C", "", "Project directory (default: current directory)")

	rootCmd.Flags().BoolVar(&flags.strict, "strict", false, "Exit with status 3 if any step failed")

	rootCmd.AddCommand(NewPlanCommand())
	rootCmd.AddCommand(NewVenvCommand())

	return rootCmd
}

// Execute runs the root command and handles exit codes.
// This is the main entry point called from main.go.
//
// It inspects errors returned by cobra commands and translates them
// into appropriate OS exit codes. CLIError types carry their own
// exit codes; other errors default to exit code 1.
func Execute(rootCmd *cobra.Command) {
	if err := rootCmd.Execute(); err != nil {
		if cliErr, ok := err.(*model.CLIError); ok {
			printError(cliErr.Message, cliErr.Err)
			os.Exit(int(cliErr.Code))
		}

		// Generic error: exit with code 1.
		printError(err.Error(), nil)
		os.Exit(int(model.ExitGeneralError))
	}
}

// printError outputs an error message in the appropriate format
// (JSON or text) based on the --json global flag.
func printError(message string, underlying error) {
	writeError(os.Stderr, message, underlying)
}

func writeError(w io.Writer, message string, underlying error) {
	if IsJSONOutput() {
		errObj := map[string]interface{}{
			"error": map[string]interface{}{
				"message": message,
			},
		}
		if underlying != nil {
			if errMap, ok := errObj["error"].(map[string]interface{}); ok {
				errMap["detail"] = underlying.Error()
			}
		}
		// Errors go to stderr even in JSON mode because stdout is reserved
		// for the report.
		if err := report.WriteJSON(w, errObj); err == nil {
			return
		}
	}

	// Text format: "Error: <message>" on stderr.
	if underlying != nil {
		fmt.Fprintf(w, "Error: %s: %v\n", message, underlying)
	} else {
		fmt.Fprintf(w, "Error: %s\n", message)
	}
}

// IsJSONOutput returns whether JSON output was requested with --json or
// --format json. Subcommands use this to decide their output format.
func IsJSONOutput() bool {
	return jsonOutput || outputFormat == report.FormatJSON
}

// resolveDir returns the absolute project directory from --dir.
func resolveDir() (string, error) {
	dir := workDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", model.WrapCLIError(model.ExitGeneralError, "failed to determine working directory", err)
		}
		dir = wd
	}

	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid project directory %q", dir), err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", model.WrapCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid project directory %q", dir), err)
	}
	if !info.IsDir() {
		return "", model.NewCLIError(model.ExitGeneralError,
			fmt.Sprintf("invalid project directory %q: not a directory", dir))
	}
	return abs, nil
}

// loadSession resolves the project directory and its configuration.
func loadSession() (string, *config.Config, error) {
	dir, err := resolveDir()
	if err != nil {
		return "", nil, err
	}
	cfg, err := config.Load(configOptions(dir))
	if err != nil {
		return "", nil, err
	}
	return dir, cfg, nil
}

// textFormat picks styled or plain banners for w. An explicit --format
// term or text wins; otherwise only a colour terminal gets styling and
// buffers and pipes get plain text.
func textFormat(w io.Writer) report.Format {
	if outputFormat == report.FormatTerminal || outputFormat == report.FormatText {
		return outputFormat
	}
	if f, ok := w.(*os.File); ok {
		return report.FormatAuto.Resolve(f)
	}
	return report.FormatText
}
