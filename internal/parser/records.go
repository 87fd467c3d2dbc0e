package parser

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pthm/ideadensity/internal/density"
	"github.com/pthm/ideadensity/internal/relation"
)

// tokenRecord is one dependency-parsed token in JSON and YAML corpora
type tokenRecord struct {
	ID   int    `json:"id" yaml:"id"`
	Head int    `json:"head" yaml:"head"`
	Dep  string `json:"dep" yaml:"dep"`
	Pos  string `json:"pos" yaml:"pos"`
	Text string `json:"text" yaml:"text"`
}

// sentenceRecord is one sentence in JSON and YAML corpora
type sentenceRecord struct {
	ID     string        `json:"id" yaml:"id"`
	Text   string        `json:"text" yaml:"text"`
	Tokens []tokenRecord `json:"tokens" yaml:"tokens"`
}

// corpusRecord is the top-level shape of JSON and YAML corpora. A bare
// list of sentences is accepted as well.
type corpusRecord struct {
	Locale    string           `json:"locale" yaml:"locale"`
	Sentences []sentenceRecord `json:"sentences" yaml:"sentences"`
}

func (c corpusRecord) toSentences(path string) ([]density.Sentence, error) {
	sentences := make([]density.Sentence, 0, len(c.Sentences))
	for i, rec := range c.Sentences {
		id := rec.ID
		if id == "" {
			id = strconv.Itoa(i + 1)
		}
		if len(rec.Tokens) == 0 {
			continue
		}

		rows := make([]relation.Row, len(rec.Tokens))
		tokens := make([]string, len(rec.Tokens))
		for j, tok := range rec.Tokens {
			rows[j] = relation.Row{
				Address: tok.ID,
				Head:    tok.Head,
				Rel:     tok.Dep,
				Tag:     tok.Pos,
				Word:    tok.Text,
			}
			tokens[j] = tok.Text
		}
		tree, err := buildTree(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: sentence %s: %w", path, id, err)
		}

		s := density.Sentence{ID: id, Source: path, Tree: tree, Tokens: tokens}
		if rec.Text != "" {
			s.Tokens = strings.Fields(rec.Text)
		}
		sentences = append(sentences, s)
	}
	return sentences, nil
}
