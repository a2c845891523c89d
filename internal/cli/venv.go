package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/devboot/internal/poetry"
	"github.com/shinji-kodama/devboot/internal/report"
)

// NewVenvCommand creates the "venv" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewVenvCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "venv",
		Short: "Print the directory Poetry keeps virtual environments in",
		Long: `Run only the virtual-environment query of the bootstrap and print
its result. Unlike the full bootstrap, a failing query exits with status 3.

Examples:
  devboot venv
  cd "$(devboot venv)"`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runVenv(cmd)
		},
	}
}

func runVenv(cmd *cobra.Command) error {
	dir, cfg, err := loadSession()
	if err != nil {
		return err
	}

	// The query's stderr stays visible; its stdout is the result.
	manager := poetry.NewManager(cfg.Poetry, dir, newRunner(cmd.ErrOrStderr(), cmd.ErrOrStderr()))
	path, err := manager.VirtualenvsPath(cmd.Context())
	if err != nil {
		return err // the runner already returns a CLIError with ExitCommandFailed
	}

	printVenvResult(cmd.OutOrStdout(), manager.PathKey(), path)
	return nil
}

// printVenvResult outputs the path as plain text or as JSON.
func printVenvResult(w io.Writer, key, path string) {
	if IsJSONOutput() {
		_ = report.WriteJSON(w, map[string]string{"key": key, "path": path})
		return
	}
	fmt.Fprintln(w, path)
}
