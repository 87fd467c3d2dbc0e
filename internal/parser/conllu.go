package parser

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pthm/ideadensity/internal/density"
	"github.com/pthm/ideadensity/internal/relation"
)

// CoNLL-U columns
const (
	colID = iota
	colForm
	colLemma
	colUPOS
	colXPOS
	colFeats
	colHead
	colDeprel
	colDeps
	colMisc
	numColumns
)

// ErrMalformedRow is returned for a CoNLL-U word line that cannot be read
var ErrMalformedRow = errors.New("malformed CoNLL-U row")

// ConllUParser parses CoNLL-U treebank files
type ConllUParser struct {
	// UseXPOS takes tags from the language-specific XPOS column instead of
	// UPOS.
	UseXPOS bool
}

// CanParse returns true if this parser can handle the file
func (p *ConllUParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeConllU
}

// Parse parses a CoNLL-U file into sentences
func (p *ConllUParser) Parse(path string, content []byte) (*Document, error) {
	sentences, err := p.parseSentences(path, content, 0)
	if err != nil {
		return nil, err
	}
	return &Document{
		Path:      path,
		FileType:  FileTypeConllU,
		Sentences: sentences,
	}, nil
}

// conllSentence accumulates one blank-line separated block
type conllSentence struct {
	id        string
	line      int
	rows      []relation.Row
	tokens    []string
	spanUntil int // last word id covered by the current multiword token
}

func (p *ConllUParser) parseSentences(path string, content []byte, lineOffset int) ([]density.Sentence, error) {
	var (
		sentences []density.Sentence
		current   *conllSentence
		lineNo    = lineOffset
	)

	flush := func() error {
		if current == nil || len(current.rows) == 0 {
			current = nil
			return nil
		}
		tree, err := buildTree(current.rows)
		if err != nil {
			return fmt.Errorf("%s:%d: %w", path, current.line, err)
		}
		id := current.id
		if id == "" {
			id = strconv.Itoa(len(sentences) + 1)
		}
		sentences = append(sentences, density.Sentence{
			ID:     id,
			Source: path,
			Tree:   tree,
			Tokens: current.tokens,
		})
		current = nil
		return nil
	}

	scanner := bufio.NewScanner(bytes.NewReader(content))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lineNo++
		line := strings.TrimRight(scanner.Text(), "\r")

		if strings.TrimSpace(line) == "" {
			if err := flush(); err != nil {
				return nil, err
			}
			continue
		}
		if current == nil {
			current = &conllSentence{line: lineNo}
		}

		// '#' is a start of comment for CoNLL-U
		if strings.HasPrefix(line, "#") {
			key, value, ok := strings.Cut(strings.TrimSpace(line[1:]), "=")
			if !ok {
				continue
			}
			if strings.TrimSpace(key) == "sent_id" {
				current.id = strings.TrimSpace(value)
			}
			continue
		}

		record := strings.Split(line, "\t")
		if len(record) < numColumns {
			record = strings.Fields(line)
		}
		if len(record) < colDeprel+1 {
			return nil, fmt.Errorf("%s:%d: %w: expected %d columns, got %d", path, lineNo, ErrMalformedRow, numColumns, len(record))
		}

		id := record[colID]
		switch {
		case strings.Contains(id, "."):
			// empty nodes of enhanced dependencies carry no basic relation
			continue
		case strings.Contains(id, "-"):
			last, err := parseSpan(id)
			if err != nil {
				return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
			}
			// the surface token stands for the words it contracts
			current.tokens = append(current.tokens, record[colForm])
			current.spanUntil = last
			continue
		}

		row, err := p.parseRow(record)
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineNo, err)
		}
		current.rows = append(current.rows, row)
		if row.Address > current.spanUntil {
			current.tokens = append(current.tokens, row.Word)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := flush(); err != nil {
		return nil, err
	}
	return sentences, nil
}

func (p *ConllUParser) parseRow(record []string) (relation.Row, error) {
	var row relation.Row

	id, err := strconv.Atoi(record[colID])
	if err != nil {
		return row, fmt.Errorf("%w: ID field %q", ErrMalformedRow, record[colID])
	}
	head, err := strconv.Atoi(record[colHead])
	if err != nil {
		return row, fmt.Errorf("%w: HEAD field %q", ErrMalformedRow, record[colHead])
	}

	tag := parseField(record[colUPOS])
	if p.UseXPOS || tag == "" {
		if xpos := parseField(record[colXPOS]); xpos != "" {
			tag = xpos
		}
	}

	row.Address = id
	row.Head = head
	row.Rel = parseField(record[colDeprel])
	row.Tag = tag
	// forms are taken as is: "_" is a legitimate punctuation token
	row.Word = record[colForm]
	return row, nil
}

// buildTree builds a tree and rejects structures the engine cannot
// traverse: several roots, cycles, inconsistent heads.
func buildTree(rows []relation.Row) (*relation.Tree, error) {
	tree, err := relation.New(rows)
	if err != nil {
		return nil, err
	}
	if err := tree.Validate(); err != nil {
		return nil, err
	}
	return tree, nil
}

// parseSpan reads a multiword token range "n-m" and returns m
func parseSpan(id string) (int, error) {
	a, b, _ := strings.Cut(id, "-")
	first, err := strconv.Atoi(a)
	if err != nil {
		return 0, fmt.Errorf("%w: ID span %q", ErrMalformedRow, id)
	}
	last, err := strconv.Atoi(b)
	if err != nil || last <= first {
		return 0, fmt.Errorf("%w: ID span %q", ErrMalformedRow, id)
	}
	return last, nil
}

func parseField(value string) string {
	if value == "_" {
		return ""
	}
	return value
}

// WriteConllU serialises sentences as CoNLL-U. Only the columns the engine
// reads are filled; the rest are "_".
func WriteConllU(w io.Writer, sentences []density.Sentence) error {
	bw := bufio.NewWriter(w)
	for _, s := range sentences {
		if s.ID != "" {
			fmt.Fprintf(bw, "# sent_id = %s\n", s.ID)
		}
		if text := s.Text(); text != "" {
			fmt.Fprintf(bw, "# text = %s\n", text)
		}
		if s.Tree != nil {
			for _, r := range s.Tree.Rows() {
				fields := [numColumns]string{
					strconv.Itoa(r.Address), orUnderscore(r.Word), "_",
					orUnderscore(r.Tag), "_", "_",
					strconv.Itoa(r.Head), orUnderscore(r.Rel), "_", "_",
				}
				bw.WriteString(strings.Join(fields[:], "\t"))
				bw.WriteByte('\n')
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func orUnderscore(s string) string {
	if s == "" {
		return "_"
	}
	return s
}
