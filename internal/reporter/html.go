package reporter

import (
	"bytes"
	"fmt"
	"html"
	"io"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/pthm/ideadensity/internal/density"
)

// HTMLReporter renders the Markdown report to a standalone HTML page
type HTMLReporter struct {
	w  io.Writer
	md goldmark.Markdown
}

// NewHTMLReporter creates a new HTML reporter
func NewHTMLReporter(w io.Writer) *HTMLReporter {
	return &HTMLReporter{
		w:  w,
		md: goldmark.New(goldmark.WithExtensions(extension.Table)),
	}
}

const htmlHeader = `<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>%s</title>
<style>
body { font-family: sans-serif; max-width: 60em; margin: 2em auto; }
table { border-collapse: collapse; }
td, th { border: 1px solid #ccc; padding: 0.2em 0.6em; }
blockquote { color: #555; }
</style>
</head>
<body>
`

const htmlFooter = "</body>\n</html>\n"

// Report writes the report as HTML
func (r *HTMLReporter) Report(report *density.Report) error {
	var body bytes.Buffer
	if err := r.md.Convert(renderMarkdown(report), &body); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if _, err := fmt.Fprintf(r.w, htmlHeader, html.EscapeString("Idea density "+report.RunID)); err != nil {
		return err
	}
	if _, err := r.w.Write(body.Bytes()); err != nil {
		return err
	}
	_, err := io.WriteString(r.w, htmlFooter)
	return err
}
