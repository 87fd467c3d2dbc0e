package parser

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/ideadensity/internal/relation"
)

const catConllU = `# sent_id = cat
# text = Era uma vez um gato.
1	Era	ser	VERB	_	_	0	root	_	_
2	uma	um	DET	_	_	3	det	_	_
3	vez	vez	NOUN	_	_	1	obj	_	_
4	um	um	DET	_	_	5	det	_	_
5	gato	gato	NOUN	_	_	1	nsubj	_	_
6	.	.	PUNCT	_	_	1	punct	_	SpaceAfter=No

`

func TestGetFileType(t *testing.T) {
	tests := []struct {
		path     string
		expected FileType
	}{
		{"corpus.conllu", FileTypeConllU},
		{"corpus.CONLL", FileTypeConllU},
		{"notes.md", FileTypeMarkdown},
		{"notes.markdown", FileTypeMarkdown},
		{"corpus.json", FileTypeJSON},
		{"corpus.yaml", FileTypeYAML},
		{"corpus.yml", FileTypeYAML},
		{"corpus.txt", FileTypeUnknown},
		{"corpus", FileTypeUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			if got := GetFileType(tt.path); got != tt.expected {
				t.Errorf("GetFileType(%q) = %v, want %v", tt.path, got, tt.expected)
			}
		})
	}
}

func TestConllUParser_Parse(t *testing.T) {
	doc, err := ParseBytes("cat.conllu", []byte(catConllU))
	require.NoError(t, err)

	require.Len(t, doc.Sentences, 1)
	s := doc.Sentences[0]
	assert.Equal(t, "cat", s.ID)
	assert.Equal(t, "cat.conllu", s.Source)
	assert.Equal(t, []string{"Era", "uma", "vez", "um", "gato", "."}, s.Tokens)

	want := []relation.Row{
		{Address: 1, Head: 0, Rel: "root", Tag: "VERB", Word: "Era"},
		{Address: 2, Head: 3, Rel: "det", Tag: "DET", Word: "uma"},
		{Address: 3, Head: 1, Rel: "obj", Tag: "NOUN", Word: "vez"},
		{Address: 4, Head: 5, Rel: "det", Tag: "DET", Word: "um"},
		{Address: 5, Head: 1, Rel: "nsubj", Tag: "NOUN", Word: "gato"},
		{Address: 6, Head: 1, Rel: "punct", Tag: "PUNCT", Word: "."},
	}
	if diff := cmp.Diff(want, s.Tree.Rows()); diff != "" {
		t.Errorf("rows mismatch (-want +got):\n%s", diff)
	}
}

func TestConllUParser_MultiwordTokens(t *testing.T) {
	content := strings.Join([]string{
		"1	Dormia	dormir	VERB	_	_	0	root	_	_",
		"2-3	na	_	_	_	_	_	_	_	_",
		"2	em	em	ADP	_	_	4	case	_	_",
		"3	a	o	DET	_	_	4	det	_	_",
		"4	cama	cama	NOUN	_	_	1	obl	_	_",
		"4.1	x	x	X	_	_	_	_	_	_",
		"",
		"1	Sim	sim	INTJ	_	_	0	root	_	_",
	}, "\n")

	doc, err := ParseBytes("mwt.conllu", []byte(content))
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 2)

	first := doc.Sentences[0]
	assert.Equal(t, "1", first.ID)
	assert.Equal(t, []string{"Dormia", "na", "cama"}, first.Tokens)
	assert.Equal(t, 5, first.Tree.Len()) // TOP included

	assert.Equal(t, "2", doc.Sentences[1].ID)
}

func TestConllUParser_UseXPOS(t *testing.T) {
	content := "1\truns\trun\tVERB\tVBZ\t_\t0\troot\t_\t_\n"

	p := &ConllUParser{UseXPOS: true}
	doc, err := p.Parse("x.conllu", []byte(content))
	require.NoError(t, err)
	assert.Equal(t, "VBZ", doc.Sentences[0].Tree.Rows()[0].Tag)

	doc, err = (&ConllUParser{}).Parse("x.conllu", []byte(content))
	require.NoError(t, err)
	assert.Equal(t, "VERB", doc.Sentences[0].Tree.Rows()[0].Tag)
}

func TestConllUParser_Errors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    error
	}{
		{"short row", "1\tword\n", ErrMalformedRow},
		{"bad id", "x\tword\tw\tNOUN\t_\t_\t0\troot\t_\t_\n", ErrMalformedRow},
		{"bad head", "1\tword\tw\tNOUN\t_\t_\tz\troot\t_\t_\n", ErrMalformedRow},
		{"bad span", "2-1\tdo\t_\t_\t_\t_\t_\t_\t_\t_\n", ErrMalformedRow},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseBytes("bad.conllu", []byte(tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "error = %v, want %v", err, tt.want)
			assert.Contains(t, err.Error(), "bad.conllu:1")
		})
	}
}

func TestParseBytes_InvalidTree(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
		line    string
	}{
		{
			name: "two roots",
			path: "roots.conllu",
			content: "# sent_id = a\n" +
				"1\tHe\the\tPRON\t_\t_\t2\tnsubj\t_\t_\n" +
				"2\tleft\tleave\tVERB\t_\t_\t0\troot\t_\t_\n" +
				"3\tslept\tsleep\tVERB\t_\t_\t0\troot\t_\t_\n",
			line: "roots.conllu:1",
		},
		{
			name: "unreachable cycle",
			path: "cycle.conllu",
			content: "\n" +
				"1\tHe\the\tPRON\t_\t_\t2\tnsubj\t_\t_\n" +
				"2\tleft\tleave\tVERB\t_\t_\t0\troot\t_\t_\n" +
				"3\tquite\tquite\tADV\t_\t_\t4\tadvmod\t_\t_\n" +
				"4\tearly\tearly\tADV\t_\t_\t3\tadvmod\t_\t_\n",
			line: "cycle.conllu:2",
		},
		{
			name: "json two roots",
			path: "corpus.json",
			content: `[{"id": "s1", "tokens": [
				{"id": 1, "head": 0, "dep": "root", "pos": "VERB", "text": "Go"},
				{"id": 2, "head": 0, "dep": "root", "pos": "VERB", "text": "stay"}
			]}]`,
			line: "corpus.json: sentence s1",
		},
		{
			name: "yaml cycle",
			path: "corpus.yaml",
			content: `sentences:
  - id: s1
    tokens:
      - {id: 1, head: 0, dep: root, pos: VERB, text: Go}
      - {id: 2, head: 3, dep: dep, pos: ADV, text: now}
      - {id: 3, head: 2, dep: dep, pos: ADV, text: then}
`,
			line: "corpus.yaml: sentence s1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseBytes(tt.path, []byte(tt.content))
			assert.Nil(t, doc)
			require.ErrorIs(t, err, relation.ErrInvalidTree)
			assert.Contains(t, err.Error(), tt.line)
		})
	}
}

func TestParseBytes_Unsupported(t *testing.T) {
	_, err := ParseBytes("notes.txt", []byte("hello"))
	assert.ErrorIs(t, err, ErrUnsupported)
}

func TestJSONParser_Parse(t *testing.T) {
	tests := []struct {
		name    string
		content string
		locale  string
	}{
		{
			name: "object",
			content: `{"locale": "en", "sentences": [{"id": "s1", "tokens": [
				{"id": 1, "head": 2, "dep": "nsubj", "pos": "NNP", "text": "John"},
				{"id": 2, "head": 0, "dep": "root", "pos": "VBD", "text": "ran"}
			]}]}`,
			locale: "en",
		},
		{
			name: "array",
			content: `[{"id": "s1", "tokens": [
				{"id": 1, "head": 2, "dep": "nsubj", "pos": "NNP", "text": "John"},
				{"id": 2, "head": 0, "dep": "root", "pos": "VBD", "text": "ran"}
			]}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := ParseBytes("corpus.json", []byte(tt.content))
			require.NoError(t, err)
			assert.Equal(t, tt.locale, doc.Locale)
			require.Len(t, doc.Sentences, 1)
			assert.Equal(t, "s1", doc.Sentences[0].ID)
			assert.Equal(t, "John ran", doc.Sentences[0].Text())
			assert.Equal(t, 2, doc.Sentences[0].Tree.Root())
		})
	}
}

func TestYAMLParser_Parse(t *testing.T) {
	content := `locale: pt
sentences:
  - text: O gato dorme .
    tokens:
      - {id: 1, head: 2, dep: det, pos: DET, text: O}
      - {id: 2, head: 3, dep: nsubj, pos: NOUN, text: gato}
      - {id: 3, head: 0, dep: root, pos: VERB, text: dorme}
      - {id: 4, head: 3, dep: punct, pos: PUNCT, text: .}
  - tokens: []
`
	doc, err := ParseBytes("corpus.yml", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, FileTypeYAML, doc.FileType)
	assert.Equal(t, "pt", doc.Locale)
	require.Len(t, doc.Sentences, 1)
	assert.Equal(t, "1", doc.Sentences[0].ID)
	assert.Equal(t, []string{"O", "gato", "dorme", "."}, doc.Sentences[0].Tokens)
}

func TestYAMLParser_SequenceRoot(t *testing.T) {
	content := `- id: a
  tokens:
    - {id: 1, head: 0, dep: root, pos: VERB, text: Corre}
`
	doc, err := ParseBytes("corpus.yaml", []byte(content))
	require.NoError(t, err)
	require.Len(t, doc.Sentences, 1)
	assert.Equal(t, "a", doc.Sentences[0].ID)
}

func TestMarkdownParser_Parse(t *testing.T) {
	content := "---\nlocale: pt\ntitle: Corpus\n---\n" +
		"# Exemplos\n\n" +
		"```conllu\n" + catConllU + "```\n\n" +
		"```go\nfmt.Println(1)\n```\n\n" +
		"```conllu\n1\tSim\tsim\tINTJ\t_\t_\t0\troot\t_\t_\n```\n"

	doc, err := ParseBytes("corpus.md", []byte(content))
	require.NoError(t, err)

	assert.Equal(t, "pt", doc.Locale)
	assert.Equal(t, "Corpus", doc.Frontmatter["title"])
	require.Len(t, doc.Sentences, 2)
	assert.Equal(t, "cat", doc.Sentences[0].ID)
	assert.Equal(t, "Sim", doc.Sentences[1].Text())
}

func TestMarkdownParser_ErrorLine(t *testing.T) {
	content := "---\nlocale: en\n---\n\ntext\n\n```conllu\n1\tbad\n```\n"

	_, err := ParseBytes("notes.md", []byte(content))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrMalformedRow)
	// frontmatter (3 lines), blank, text, blank, fence: the row is line 8
	assert.Contains(t, err.Error(), "notes.md:8")
}

func TestParseReader(t *testing.T) {
	doc, err := ParseReader(StdinPath, strings.NewReader(catConllU))
	require.NoError(t, err)
	assert.Equal(t, FileTypeConllU, doc.FileType)
	require.Len(t, doc.Sentences, 1)
}

func TestWriteConllU_RoundTrip(t *testing.T) {
	doc, err := ParseBytes("cat.conllu", []byte(catConllU))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteConllU(&buf, doc.Sentences))

	out := buf.String()
	assert.Contains(t, out, "# sent_id = cat\n")
	assert.Contains(t, out, "# text = Era uma vez um gato .\n")
	assert.Contains(t, out, "5\tgato\t_\tNOUN\t_\t_\t1\tnsubj\t_\t_\n")

	again, err := ParseBytes("again.conllu", buf.Bytes())
	require.NoError(t, err)
	require.Len(t, again.Sentences, 1)
	if diff := cmp.Diff(doc.Sentences[0].Tree.Rows(), again.Sentences[0].Tree.Rows()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestParseFrontmatter(t *testing.T) {
	fm, rest := ParseFrontmatter([]byte("---\nlocale: en\n---\nbody\n"))
	assert.Equal(t, "en", fm["locale"])
	assert.Equal(t, "body\n", string(rest))

	fm, rest = ParseFrontmatter([]byte("no frontmatter"))
	assert.Nil(t, fm)
	assert.Equal(t, "no frontmatter", string(rest))
}
