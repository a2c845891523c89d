package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/shinji-kodama/devboot/internal/bootstrap"
	"github.com/shinji-kodama/devboot/internal/model"
	"github.com/shinji-kodama/devboot/internal/report"
)

// NewPlanCommand creates the "plan" cobra command.
// It is called from NewRootCommand to register as a subcommand.
func NewPlanCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "plan",
		Short: "Show the bootstrap steps without running them",
		Long: `Print the steps devboot would run, in order, with the exact
command line of each. Nothing is executed.

Examples:
  devboot plan
  devboot plan --json`,

		Args: cobra.NoArgs,

		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd.OutOrStdout())
		},
	}
}

func runPlan(w io.Writer) error {
	dir, cfg, err := loadSession()
	if err != nil {
		return err
	}

	steps := bootstrap.Plan(cfg, dir)
	if IsJSONOutput() {
		return printPlanResultJSON(w, dir, steps, cfg.Hints)
	}
	printPlanResultText(w, steps)
	return nil
}

// planStepJSON is the JSON output structure for a single planned step.
type planStepJSON struct {
	Step    string `json:"step"`
	Title   string `json:"title"`
	Command string `json:"command"`
	Capture bool   `json:"capture"`
}

// printPlanResultJSON outputs the plan as structured JSON.
func printPlanResultJSON(w io.Writer, dir string, steps []model.Step, hints []string) error {
	type resultJSON struct {
		Dir   string         `json:"dir"`
		Steps []planStepJSON `json:"steps"`
		Hints []string       `json:"hints"`
	}

	result := resultJSON{
		Dir:   dir,
		Steps: make([]planStepJSON, 0, len(steps)),
		Hints: hints,
	}
	if result.Hints == nil {
		result.Hints = []string{}
	}
	for _, s := range steps {
		result.Steps = append(result.Steps, planStepJSON{
			Step:    s.Kind.String(),
			Title:   s.Title,
			Command: s.Command.String(),
			Capture: s.Capture,
		})
	}
	return report.WriteJSON(w, result)
}

// printPlanResultText outputs the plan as a text table with aligned
// columns:
//
//	#  STEP                  COMMAND
//	1  install-manager       pip install poetry
//	2  install-dependencies  poetry install
func printPlanResultText(w io.Writer, steps []model.Step) {
	fmt.Fprintf(w, "%-3s %-22s %s\n", "#", "STEP", "COMMAND")
	for i, s := range steps {
		fmt.Fprintf(w, "%-3d %-22s %s\n", i+1, s.Kind.String(), s.Command.String())
	}
}
