// Package density measures propositional idea density: the number of
// propositions a text expresses per word.
package density

import (
	"errors"
	"strings"

	"github.com/pthm/ideadensity/internal/locale"
	"github.com/pthm/ideadensity/internal/proposition"
	"github.com/pthm/ideadensity/internal/relation"
)

// ErrNoWords is returned when a corpus has no countable words, so no ratio
// can be computed.
var ErrNoWords = errors.New("no words to measure")

// Sentence is one dependency-parsed sentence of a corpus
type Sentence struct {
	// ID identifies the sentence within its source (e.g., CoNLL-U sent_id)
	ID string

	// Source is the file the sentence was read from
	Source string

	// Tree is the parsed relation tree. Analysis works on a clone.
	Tree *relation.Tree

	// Tokens are the surface tokens. When empty, the tree's words are used.
	Tokens []string
}

// Text returns the sentence's surface text
func (s Sentence) Text() string {
	return strings.Join(s.tokens(), " ")
}

func (s Sentence) tokens() []string {
	if len(s.Tokens) > 0 || s.Tree == nil {
		return s.Tokens
	}
	return s.Tree.Words()
}

// SentenceResult holds the propositions and counts for one sentence
type SentenceResult struct {
	ID           string                    `json:"id"`
	Source       string                    `json:"source,omitempty"`
	Text         string                    `json:"text"`
	Propositions []proposition.Proposition `json:"propositions"`
	Words        int                       `json:"words"`
	Density      float64                   `json:"density"`
	Unrecognized []string                  `json:"unrecognized,omitempty"`
}

// WordCount counts the tokens that are not punctuation under cfg.
func WordCount(tokens []string, cfg *locale.Config) int {
	n := 0
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if tok == "" || cfg.Match(locale.KeyPunctuation, tok) {
			continue
		}
		n++
	}
	return n
}

// Ratio returns propositions per word, or 0 when there are no words.
func Ratio(propositions, words int) float64 {
	if words == 0 {
		return 0
	}
	return float64(propositions) / float64(words)
}
