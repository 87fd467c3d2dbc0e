package reporter

import (
	"fmt"
	"io"
	"strings"

	"github.com/pthm/ideadensity/internal/density"
	"github.com/pthm/ideadensity/internal/ui"
)

// TerminalReporter outputs results to the terminal with colors
type TerminalReporter struct {
	w      io.Writer
	styles *ui.Styles
}

// NewTerminalReporter creates a new terminal reporter. A nil styles
// disables colors.
func NewTerminalReporter(w io.Writer, styles *ui.Styles) *TerminalReporter {
	if styles == nil {
		styles = ui.NewStyles(false)
	}
	return &TerminalReporter{w: w, styles: styles}
}

// Report outputs each sentence with its propositions, then a summary
func (r *TerminalReporter) Report(report *density.Report) error {
	s := r.styles

	source := ""
	for _, sentence := range report.Sentences {
		if sentence.Source != source {
			source = sentence.Source
			fmt.Fprintln(r.w)
			fmt.Fprintln(r.w, s.Header.Render(source))
		}
		r.printSentence(sentence)
	}

	r.printSummary(report)
	return nil
}

func (r *TerminalReporter) printSentence(sentence density.SentenceResult) {
	s := r.styles

	fmt.Fprintln(r.w)
	fmt.Fprintf(r.w, "  %s %s\n", s.Label.Render("["+sentence.ID+"]"), sentence.Text)

	for _, p := range sentence.Propositions {
		fmt.Fprintf(r.w, "    %s %s\n",
			s.Subheader.Render(fmt.Sprintf("%3d", p.ID)),
			s.Kind(p.Kind).Render(formatProposition(p)))
	}

	for _, rel := range sentence.Unrecognized {
		fmt.Fprintf(r.w, "    %s %s\n",
			s.Warning.Render(s.IconWarning),
			s.Warning.Render(fmt.Sprintf("unrecognized %s construct", rel)))
	}

	fmt.Fprintf(r.w, "    %s\n", s.Subheader.Render(
		fmt.Sprintf("%d propositions / %d words = %.3f", len(sentence.Propositions), sentence.Words, sentence.Density)))
}

func (r *TerminalReporter) printSummary(report *density.Report) {
	s := r.styles
	summary := ComputeSummary(report)

	fmt.Fprintln(r.w)
	fmt.Fprintln(r.w, s.Separator.Render("─────────────────────────────────────"))

	var parts []string
	add := func(n int, label string, kind func(...string) string) {
		if n > 0 {
			parts = append(parts, kind(fmt.Sprintf("%d %s", n, label)))
		}
	}
	add(summary.Predications, "P", s.Predication.Render)
	add(summary.Modifiers, "M", s.Modification.Render)
	add(summary.Connectives, "C", s.Connective.Render)
	add(summary.Appositions, "APPOS", s.Apposition.Render)
	add(summary.Whats, "WHAT", s.What.Render)

	fmt.Fprintf(r.w, "%s Idea density %.3f: %d propositions in %d words across %d sentences\n",
		s.Success.Render(s.IconSuccess), summary.Density, summary.Propositions, summary.Words, summary.Sentences)
	if len(parts) > 0 {
		fmt.Fprintf(r.w, "  %s\n", strings.Join(parts, ", "))
	}
	if summary.Unrecognized > 0 {
		fmt.Fprintf(r.w, "  %s\n", s.Warning.Render(fmt.Sprintf("%d unrecognized constructs", summary.Unrecognized)))
	}
	fmt.Fprintf(r.w, "  %s\n", s.Path.Render("run "+report.RunID+" locale "+report.Locale))
}
