package parser

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"github.com/pthm/ideadensity/internal/density"
)

// conlluLanguage is the info string of fenced blocks holding trees
const conlluLanguage = "conllu"

// MarkdownParser reads CoNLL-U trees from fenced code blocks in markdown
// documents. A "locale" key in the frontmatter selects the locale.
type MarkdownParser struct{}

// CanParse returns true if this parser can handle the file
func (p *MarkdownParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeMarkdown
}

// Parse parses a markdown file into sentences
func (p *MarkdownParser) Parse(path string, content []byte) (*Document, error) {
	// Extract frontmatter if present
	frontmatter, body := ParseFrontmatter(content)
	skipped := bytes.Count(content[:len(content)-len(body)], []byte("\n"))

	md := goldmark.New()
	doc := md.Parser().Parse(text.NewReader(body))

	sentences, err := p.extractSentences(path, doc, body, skipped)
	if err != nil {
		return nil, err
	}

	result := &Document{
		Path:        path,
		FileType:    FileTypeMarkdown,
		Sentences:   sentences,
		Frontmatter: frontmatter,
	}
	if loc, ok := frontmatter["locale"].(string); ok {
		result.Locale = loc
	}
	return result, nil
}

// extractSentences walks the AST and parses every conllu block
func (p *MarkdownParser) extractSentences(path string, doc ast.Node, source []byte, skipped int) ([]density.Sentence, error) {
	var sentences []density.Sentence
	conll := &ConllUParser{}

	err := ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			return ast.WalkContinue, nil
		}
		if !strings.EqualFold(string(block.Language(source)), conlluLanguage) {
			return ast.WalkSkipChildren, nil
		}

		lines := block.Lines()
		if lines.Len() == 0 {
			return ast.WalkSkipChildren, nil
		}

		var buf bytes.Buffer
		for i := 0; i < lines.Len(); i++ {
			seg := lines.At(i)
			buf.Write(seg.Value(source))
		}
		first := lines.At(0)
		offset := skipped + bytes.Count(source[:first.Start], []byte("\n"))

		found, err := conll.parseSentences(path, buf.Bytes(), offset)
		if err != nil {
			return ast.WalkStop, err
		}
		// Sentence ids restart in each block; keep them unique per document.
		for _, s := range found {
			if s.ID == "" || containsID(sentences, s.ID) {
				s.ID = fmt.Sprintf("%d", len(sentences)+1)
			}
			sentences = append(sentences, s)
		}
		return ast.WalkSkipChildren, nil
	})
	if err != nil {
		return nil, err
	}
	return sentences, nil
}

func containsID(sentences []density.Sentence, id string) bool {
	for _, s := range sentences {
		if s.ID == id {
			return true
		}
	}
	return false
}
