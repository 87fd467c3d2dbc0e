package reporter

import (
	"encoding/json"
	"io"

	"github.com/pthm/ideadensity/internal/density"
)

// JSONReporter outputs results as JSON
type JSONReporter struct {
	w io.Writer
}

// NewJSONReporter creates a new JSON reporter
func NewJSONReporter(w io.Writer) *JSONReporter {
	return &JSONReporter{w: w}
}

// JSONOutput represents the JSON output format
type JSONOutput struct {
	RunID     string                   `json:"run_id"`
	Locale    string                   `json:"locale"`
	Sentences []density.SentenceResult `json:"sentences"`
	Summary   Summary                  `json:"summary"`
}

// Report outputs the report as JSON
func (r *JSONReporter) Report(report *density.Report) error {
	output := JSONOutput{
		RunID:     report.RunID,
		Locale:    report.Locale,
		Sentences: report.Sentences,
		Summary:   ComputeSummary(report),
	}
	if output.Sentences == nil {
		output.Sentences = []density.SentenceResult{}
	}

	encoder := json.NewEncoder(r.w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(output)
}
