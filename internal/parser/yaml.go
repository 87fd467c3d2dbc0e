package parser

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// YAMLParser parses YAML corpora of dependency-parsed sentences
type YAMLParser struct{}

// CanParse returns true if this parser can handle the file
func (p *YAMLParser) CanParse(path string) bool {
	ft := GetFileType(path)
	return ft == FileTypeYAML
}

// Parse parses a YAML file
func (p *YAMLParser) Parse(path string, content []byte) (*Document, error) {
	var node yaml.Node
	if err := yaml.Unmarshal(content, &node); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	var corpus corpusRecord
	if len(node.Content) > 0 && node.Content[0].Kind == yaml.SequenceNode {
		if err := node.Content[0].Decode(&corpus.Sentences); err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", path, err)
		}
	} else if err := node.Decode(&corpus); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	sentences, err := corpus.toSentences(path)
	if err != nil {
		return nil, err
	}
	return &Document{
		Path:      path,
		FileType:  FileTypeYAML,
		Sentences: sentences,
		Locale:    corpus.Locale,
	}, nil
}
