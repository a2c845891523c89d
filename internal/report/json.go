package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/shinji-kodama/devboot/internal/model"
)

// JSONReporter writes the complete model.Report as indented JSON once the
// run has finished. Nothing is written while steps run, so the caller must
// route child-process output elsewhere (stderr) to keep stdout parseable.
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a JSONReporter writing to w.
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// Start is a no-op.
func (r *JSONReporter) Start(*model.Project, []model.Step) {}

// StepStarted is a no-op.
func (r *JSONReporter) StepStarted(model.Step) {}

// StepFinished is a no-op.
func (r *JSONReporter) StepFinished(model.Step, model.StepResult) {}

// Finish writes the report.
func (r *JSONReporter) Finish(rep *model.Report) error {
	return WriteJSON(r.w, rep)
}

// WriteJSON writes v as indented JSON followed by a newline.
func WriteJSON(w io.Writer, v interface{}) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
