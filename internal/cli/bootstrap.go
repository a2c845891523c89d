package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/devboot/internal/bootstrap"
	"github.com/shinji-kodama/devboot/internal/logging"
	"github.com/shinji-kodama/devboot/internal/model"
	"github.com/shinji-kodama/devboot/internal/project"
	"github.com/shinji-kodama/devboot/internal/report"
)

// runBootstrap is the main logic of the root command. It discovers the
// project, plans the four steps, runs all of them and reports the result.
//
// Step failures only affect the exit status in strict mode.
func runBootstrap(cmd *cobra.Command, flags *rootFlags) error {
	logger := logging.GetLogger("cli")

	// Step 1: Resolve the project directory and the layered configuration.
	dir, cfg, err := loadSession()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("strict") {
		cfg.Strict = flags.strict
	}
	logger.Info().Str("dir", dir).Strs("configSources", cfg.Sources).Bool("strict", cfg.Strict).Msg("Configuration loaded")

	// Step 2: Describe the project. This is informational only.
	p, err := project.Discover(dir)
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to inspect project", err)
	}
	if !p.UsesPoetry {
		logger.Info().Str("dir", dir).Msg("No [tool.poetry] table in pyproject.toml; running anyway")
	}

	// Step 3: Pick the reporter. In JSON mode stdout carries only the
	// report, so child output is redirected to stderr.
	stdout := cmd.OutOrStdout()
	stderr := cmd.ErrOrStderr()

	var reporter bootstrap.Reporter
	childOut := stdout
	if IsJSONOutput() {
		reporter = report.NewJSONReporter(stdout)
		childOut = stderr
	} else {
		reporter = report.NewTextReporter(stdout, textFormat(stdout))
	}

	// Step 4: Run every step.
	b := bootstrap.New(newRunner(childOut, stderr), reporter, cfg.Hints)
	result, err := b.Run(cmd.Context(), p, bootstrap.Plan(cfg, dir))
	if err != nil {
		return model.WrapCLIError(model.ExitGeneralError, "failed to write report", err)
	}

	// Step 5: Translate failures into an exit status only when asked to.
	if cfg.Strict {
		if failed := result.Failed(); len(failed) > 0 {
			return model.NewCLIError(model.ExitCommandFailed, failedSummary(failed, len(result.Steps)))
		}
	}
	return nil
}

// failedSummary describes failed steps, e.g.
// "2 of 4 steps failed: install-manager, install-hooks".
func failedSummary(failed []model.StepResult, total int) string {
	kinds := make([]string, len(failed))
	for i, f := range failed {
		kinds[i] = f.Kind.String()
	}
	return fmt.Sprintf("%d of %d steps failed: %s", len(failed), total, strings.Join(kinds, ", "))
}
