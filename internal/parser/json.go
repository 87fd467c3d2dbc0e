package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// JSONParser parses JSON corpora of dependency-parsed sentences
type JSONParser struct{}

// CanParse returns true if this parser can handle the file
func (p *JSONParser) CanParse(path string) bool {
	return GetFileType(path) == FileTypeJSON
}

// Parse parses a JSON file
func (p *JSONParser) Parse(path string, content []byte) (*Document, error) {
	var corpus corpusRecord
	trimmed := bytes.TrimSpace(content)
	if bytes.HasPrefix(trimmed, []byte("[")) {
		if err := json.Unmarshal(trimmed, &corpus.Sentences); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if err := json.Unmarshal(trimmed, &corpus); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	sentences, err := corpus.toSentences(path)
	if err != nil {
		return nil, err
	}
	return &Document{
		Path:      path,
		FileType:  FileTypeJSON,
		Sentences: sentences,
		Locale:    corpus.Locale,
	}, nil
}
