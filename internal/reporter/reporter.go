// Package reporter renders idea density reports.
package reporter

import (
	"errors"
	"fmt"
	"io"

	"github.com/pthm/ideadensity/internal/density"
	"github.com/pthm/ideadensity/internal/proposition"
	"github.com/pthm/ideadensity/internal/ui"
)

// ErrUnknownFormat is returned by New for an unsupported --format value
var ErrUnknownFormat = errors.New("unknown report format")

// Reporter defines the interface for outputting analysis results
type Reporter interface {
	// Report outputs the analysis results
	Report(report *density.Report) error
}

// Formats lists the accepted --format values
var Formats = []string{"text", "json", "markdown", "html"}

// New returns the reporter for format, writing to w
func New(format string, w io.Writer, styles *ui.Styles) (Reporter, error) {
	switch format {
	case "", "text", "terminal":
		return NewTerminalReporter(w, styles), nil
	case "json":
		return NewJSONReporter(w), nil
	case "markdown", "md":
		return NewMarkdownReporter(w), nil
	case "html":
		return NewHTMLReporter(w), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}

// Summary holds summary statistics for an analysis run
type Summary struct {
	Sentences    int     `json:"sentences"`
	Propositions int     `json:"propositions"`
	Words        int     `json:"words"`
	Density      float64 `json:"density"`
	Predications int     `json:"predications"`
	Modifiers    int     `json:"modifications"`
	Connectives  int     `json:"connectives"`
	Appositions  int     `json:"appositions"`
	Whats        int     `json:"whats"`
	Unrecognized int     `json:"unrecognized"`
	Sources      int     `json:"sources"`
}

// ComputeSummary computes summary statistics from a report
func ComputeSummary(report *density.Report) Summary {
	s := Summary{
		Sentences:    len(report.Sentences),
		Propositions: report.Propositions,
		Words:        report.Words,
		Density:      report.Density,
	}

	sources := make(map[string]bool)
	for _, sentence := range report.Sentences {
		sources[sentence.Source] = true
		s.Unrecognized += len(sentence.Unrecognized)
		for _, p := range sentence.Propositions {
			switch p.Kind {
			case proposition.Predication:
				s.Predications++
			case proposition.Modification:
				s.Modifiers++
			case proposition.Connective:
				s.Connectives++
			case proposition.Apposition:
				s.Appositions++
			case proposition.What:
				s.Whats++
			}
		}
	}
	s.Sources = len(sources)

	return s
}

// formatProposition renders "KIND(item, item)"
func formatProposition(p proposition.Proposition) string {
	return p.Kind.String() + p.String()
}
