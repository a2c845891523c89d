package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/shinji-kodama/devboot/internal/model"
)

const (
	// BannerPrefix starts every banner line.
	BannerPrefix = "==> "

	// HintsTitle is the banner printed before the usage hints.
	HintsTitle = "Run the test suite with:"
)

// TextReporter writes human-readable progress to w.
//
// Output for a default run looks like:
//
//	==> Installing poetry
//	    (pip output)
//	==> Installing project dependencies
//	    (poetry output)
//	==> Installing pre-commit hooks
//	    (pre-commit output)
//	==> Virtual environment path:
//	/home/dev/.cache/pypoetry/virtualenvs
//	==> Run the test suite with:
//	poetry run pytest OR poetry run scripts/run_tests.sh
//
// Step failures do not change this output; the failing tool's own
// diagnostics are what the user sees.
type TextReporter struct {
	w      io.Writer
	styles Styles
}

// NewTextReporter creates a TextReporter. format selects between styled
// (FormatTerminal) and plain (anything else) banners.
func NewTextReporter(w io.Writer, format Format) *TextReporter {
	return &TextReporter{w: w, styles: NewStyles(w, format)}
}

// Start is a no-op: the classic output has no header.
func (r *TextReporter) Start(*model.Project, []model.Step) {}

// StepStarted prints the step's banner.
func (r *TextReporter) StepStarted(step model.Step) {
	r.banner(step.Title)
}

// StepFinished prints the captured output of a successful captured step,
// i.e. the virtual-environment path.
func (r *TextReporter) StepFinished(step model.Step, res model.StepResult) {
	if !step.Capture || !res.Succeeded() {
		return
	}
	if out := strings.TrimSpace(res.Output); out != "" {
		fmt.Fprintln(r.w, out)
	}
}

// Finish prints the usage hints verbatim.
func (r *TextReporter) Finish(rep *model.Report) error {
	r.banner(HintsTitle)
	for _, hint := range rep.Hints {
		if _, err := fmt.Fprintln(r.w, hint); err != nil {
			return err
		}
	}
	return nil
}

func (r *TextReporter) banner(title string) {
	fmt.Fprintln(r.w, r.styles.Banner(BannerPrefix+title))
}
