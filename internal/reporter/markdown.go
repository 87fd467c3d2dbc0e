package reporter

import (
	"bytes"
	"fmt"
	"io"
	"strings"

	"github.com/pthm/ideadensity/internal/density"
)

// MarkdownReporter outputs results as a Markdown document
type MarkdownReporter struct {
	w io.Writer
}

// NewMarkdownReporter creates a new Markdown reporter
func NewMarkdownReporter(w io.Writer) *MarkdownReporter {
	return &MarkdownReporter{w: w}
}

// Report writes the report as Markdown
func (r *MarkdownReporter) Report(report *density.Report) error {
	_, err := r.w.Write(renderMarkdown(report))
	return err
}

func renderMarkdown(report *density.Report) []byte {
	var b bytes.Buffer
	summary := ComputeSummary(report)

	b.WriteString("# Idea density report\n\n")
	fmt.Fprintf(&b, "| Metric | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Run | `%s` |\n", report.RunID)
	fmt.Fprintf(&b, "| Locale | %s |\n", report.Locale)
	fmt.Fprintf(&b, "| Sentences | %d |\n", summary.Sentences)
	fmt.Fprintf(&b, "| Words | %d |\n", summary.Words)
	fmt.Fprintf(&b, "| Propositions | %d |\n", summary.Propositions)
	fmt.Fprintf(&b, "| Density | %.3f |\n", summary.Density)
	fmt.Fprintf(&b, "| P / M / C / APPOS / WHAT | %d / %d / %d / %d / %d |\n\n",
		summary.Predications, summary.Modifiers, summary.Connectives, summary.Appositions, summary.Whats)

	for _, s := range report.Sentences {
		fmt.Fprintf(&b, "## %s\n\n", escapeMarkdown(s.ID))
		if s.Source != "" {
			fmt.Fprintf(&b, "*%s*\n\n", escapeMarkdown(s.Source))
		}
		fmt.Fprintf(&b, "> %s\n\n", escapeMarkdown(s.Text))

		if len(s.Propositions) > 0 {
			b.WriteString("| # | Proposition |\n|---|---|\n")
			for _, p := range s.Propositions {
				fmt.Fprintf(&b, "| %d | %s |\n", p.ID, escapeMarkdown(formatProposition(p)))
			}
			b.WriteString("\n")
		}
		for _, rel := range s.Unrecognized {
			fmt.Fprintf(&b, "- unrecognized `%s` construct\n", rel)
		}
		if len(s.Unrecognized) > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%d propositions / %d words = **%.3f**\n\n", len(s.Propositions), s.Words, s.Density)
	}

	return b.Bytes()
}

var markdownEscaper = strings.NewReplacer(
	`\`, `\\`, "|", `\|`, "*", `\*`, "_", `\_`, "`", "\\`",
	"[", `\[`, "]", `\]`, "<", "&lt;", ">", "&gt;", "#", `\#`,
)

func escapeMarkdown(s string) string {
	return markdownEscaper.Replace(s)
}
