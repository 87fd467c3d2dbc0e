package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/pthm/ideadensity/internal/density"
)

// ErrUnsupported is returned for inputs whose format cannot carry trees
var ErrUnsupported = errors.New("unsupported input format")

// Document represents a parsed corpus file
type Document struct {
	Path        string
	FileType    FileType
	Sentences   []density.Sentence
	Locale      string                 // locale requested by the file, if any
	Frontmatter map[string]interface{} // YAML frontmatter from markdown files
}

// FileType represents the format of a corpus file
type FileType int

const (
	FileTypeUnknown FileType = iota
	FileTypeConllU
	FileTypeMarkdown
	FileTypeJSON
	FileTypeYAML
)

func (t FileType) String() string {
	switch t {
	case FileTypeConllU:
		return "conllu"
	case FileTypeMarkdown:
		return "markdown"
	case FileTypeJSON:
		return "json"
	case FileTypeYAML:
		return "yaml"
	default:
		return "unknown"
	}
}

// Parser defines the interface for parsing corpus files
type Parser interface {
	Parse(path string, content []byte) (*Document, error)
	CanParse(path string) bool
}

// StdinPath names standard input on the command line
const StdinPath = "-"

// Parse reads and parses a file using the appropriate parser. StdinPath
// reads CoNLL-U from standard input.
func Parse(path string) (*Document, error) {
	if path == StdinPath {
		return ParseReader(path, os.Stdin)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseBytes(path, content)
}

// ParseReader parses everything read from r as CoNLL-U
func ParseReader(name string, r io.Reader) (*Document, error) {
	content, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	return (&ConllUParser{}).Parse(name, content)
}

// ParseBytes parses content with the parser selected by path
func ParseBytes(path string, content []byte) (*Document, error) {
	parser := getParser(path)
	if parser == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnsupported, path)
	}
	return parser.Parse(path, content)
}

// getParser returns the appropriate parser for a file
func getParser(path string) Parser {
	switch GetFileType(path) {
	case FileTypeConllU:
		return &ConllUParser{}
	case FileTypeMarkdown:
		return &MarkdownParser{}
	case FileTypeJSON:
		return &JSONParser{}
	case FileTypeYAML:
		return &YAMLParser{}
	default:
		return nil
	}
}

// GetFileType returns the FileType for a given path
func GetFileType(path string) FileType {
	ext := strings.ToLower(filepath.Ext(path))
	switch ext {
	case ".conllu", ".conll":
		return FileTypeConllU
	case ".md", ".markdown":
		return FileTypeMarkdown
	case ".json":
		return FileTypeJSON
	case ".yaml", ".yml":
		return FileTypeYAML
	default:
		return FileTypeUnknown
	}
}

// ParseFrontmatter extracts YAML frontmatter from content between --- delimiters
// Returns the parsed frontmatter and the remaining content without frontmatter
func ParseFrontmatter(content []byte) (map[string]interface{}, []byte) {
	s := string(content)

	// Must start with ---
	if !strings.HasPrefix(s, "---") {
		return nil, content
	}

	// Find the closing ---
	rest := s[3:]
	endIdx := strings.Index(rest, "\n---")
	if endIdx == -1 {
		return nil, content
	}

	var frontmatter map[string]interface{}
	if err := yaml.Unmarshal([]byte(strings.TrimSpace(rest[:endIdx])), &frontmatter); err != nil {
		return nil, content
	}

	// Return remaining content after frontmatter
	remaining := rest[endIdx+4:] // +4 for "\n---"
	remaining = strings.TrimPrefix(remaining, "\n")

	return frontmatter, []byte(remaining)
}
