package bootstrap

import (
	"context"
	"strings"
	"time"

	"github.com/shinji-kodama/devboot/internal/logging"
	"github.com/shinji-kodama/devboot/internal/model"
	"github.com/shinji-kodama/devboot/internal/project"
	"github.com/shinji-kodama/devboot/internal/runner"
)

// Reporter receives progress events from a run.
type Reporter interface {
	// Start is called once before the first step.
	Start(p *model.Project, steps []model.Step)

	// StepStarted is called before a step's command is invoked.
	StepStarted(step model.Step)

	// StepFinished is called after a step's command has exited.
	StepFinished(step model.Step, result model.StepResult)

	// Finish is called once with the completed report.
	Finish(r *model.Report) error
}

// Bootstrapper executes planned steps through a runner.Runner.
type Bootstrapper struct {
	runner   runner.Runner
	reporter Reporter
	hints    []string
}

// New creates a Bootstrapper. hints are copied verbatim into every report.
func New(r runner.Runner, rep Reporter, hints []string) *Bootstrapper {
	return &Bootstrapper{
		runner:   r,
		reporter: rep,
		hints:    append([]string(nil), hints...),
	}
}

// Run attempts every step in order and returns the report. It never stops
// early: a failed step is recorded and the next one runs.
//
// The returned error is only the reporter's Finish error; step failures
// are visible through Report.Failed.
func (b *Bootstrapper) Run(ctx context.Context, p *model.Project, steps []model.Step) (*model.Report, error) {
	logger := logging.GetLogger("bootstrap")
	done := logging.LogOperationStart(logger, "bootstrap")
	defer done()

	rep := &model.Report{
		Project:   p,
		Steps:     make([]model.StepResult, 0, len(steps)),
		Hints:     append([]string(nil), b.hints...),
		StartedAt: time.Now(),
	}

	if p != nil {
		logger.Info().Str("project", p.DisplayName()).Str("root", p.Root).Msg("Bootstrapping project")
	}

	b.reporter.Start(p, steps)
	for _, step := range steps {
		b.reporter.StepStarted(step)
		res := b.execute(ctx, step)
		rep.Steps = append(rep.Steps, res)
		b.reporter.StepFinished(step, res)
	}

	if res, ok := rep.Result(model.StepQueryEnvPath); ok && res.Succeeded() {
		rep.VirtualenvsPath = strings.TrimSpace(res.Output)
	}

	rep.HookInstalled = project.HookInstalled(p)
	rep.FinishedAt = time.Now()

	if failed := rep.Failed(); len(failed) > 0 {
		logger.Info().Int("failed", len(failed)).Int("steps", len(steps)).Msg("Bootstrap finished with failures")
	} else {
		logger.Info().Int("steps", len(steps)).Msg("Bootstrap finished")
	}
	if p != nil && p.HookPath != "" {
		logger.Debug().Str("hook", p.HookPath).Bool("installed", rep.HookInstalled).Msg("Pre-commit hook state")
	}

	return rep, b.reporter.Finish(rep)
}

func (b *Bootstrapper) execute(ctx context.Context, step model.Step) model.StepResult {
	logger := logging.GetLogger("bootstrap")
	logging.LogCommand(logger, step.Command.Name, step.Command.Args, step.Command.Dir)

	res := model.StepResult{
		Kind:    step.Kind,
		Command: step.Command.String(),
	}

	start := time.Now()
	var err error
	if step.Capture {
		res.Output, err = b.runner.Output(ctx, step.Command)
	} else {
		err = b.runner.Run(ctx, step.Command)
	}
	res.Duration = time.Since(start)

	if err != nil {
		res.Status = model.StatusFailed
		res.ExitCode = runner.ExitStatus(err)
		res.Error = err.Error()
		// The tool has already printed its own diagnostics; this is only
		// visible with -v.
		logger.Info().
			Str("step", step.Kind.String()).
			Int("exitCode", res.ExitCode).
			Err(err).
			Msg("Step failed, continuing")
		return res
	}

	res.Status = model.StatusSucceeded
	logger.Debug().
		Str("step", step.Kind.String()).
		Dur("duration", res.Duration).
		Msg("Step succeeded")
	return res
}
