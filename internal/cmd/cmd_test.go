package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/ideadensity/internal/locale"
	"github.com/pthm/ideadensity/internal/parser"
	"github.com/pthm/ideadensity/internal/transform"
	"github.com/pthm/ideadensity/internal/ui"
)

const sampleCorpus = `# sent_id = s1
1	John	John	PROPN	NNP	_	2	nsubj	_	_
2	runs	run	VERB	VBZ	_	0	root	_	_
3	.	.	PUNCT	.	_	2	punct	_	_

`

func resetFlags(t *testing.T) {
	t.Helper()
	prevName, prevFile, prevFormat := localeName, localeFile, format
	prevUI := globalUI
	t.Cleanup(func() {
		localeName, localeFile, format = prevName, prevFile, prevFormat
		globalUI = prevUI
	})
	localeName, localeFile, format = "", "", "text"
}

func TestResolveLocale(t *testing.T) {
	resetFlags(t)

	cfg, err := resolveLocale(nil)
	require.NoError(t, err)
	assert.Equal(t, defaultLocale, cfg.Name)

	docs := []*parser.Document{{}, {Locale: "pt"}, {Locale: "pt"}}
	cfg, err = resolveLocale(docs)
	require.NoError(t, err)
	assert.Equal(t, "pt", cfg.Name)

	_, err = resolveLocale([]*parser.Document{{Locale: "pt"}, {Locale: "en"}})
	assert.True(t, errors.Is(err, ErrLocaleConflict), "error = %v", err)

	localeName = "en"
	cfg, err = resolveLocale([]*parser.Document{{Locale: "pt"}})
	require.NoError(t, err)
	assert.Equal(t, "en", cfg.Name)

	localeName = "xx"
	_, err = resolveLocale(nil)
	assert.ErrorIs(t, err, locale.ErrUnknownLocale)
}

func TestSelectPasses(t *testing.T) {
	cfg, err := locale.Load("en")
	require.NoError(t, err)
	full := transform.DefaultPipeline(cfg)

	p, err := selectPasses(full, nil)
	require.NoError(t, err)
	assert.Same(t, full, p)

	p, err = selectPasses(full, []string{"mark-compound-names", "remove-punctuation"})
	require.NoError(t, err)
	var names []string
	for _, pass := range p.Passes() {
		names = append(names, pass.Name())
	}
	assert.Equal(t, []string{"remove-punctuation", "mark-compound-names"}, names)

	_, err = selectPasses(full, []string{"nope"})
	assert.ErrorContains(t, err, `unknown pass "nope"`)
}

func TestRunAnalyze_JSON(t *testing.T) {
	resetFlags(t)
	format = "json"

	path := filepath.Join(t.TempDir(), "corpus.conllu")
	require.NoError(t, os.WriteFile(path, []byte(sampleCorpus), 0o644))

	var out bytes.Buffer
	globalUI = ui.New(&out, &bytes.Buffer{}, format)

	analyzeCmd.SetContext(t.Context())
	require.NoError(t, runAnalyze(analyzeCmd, []string{path}))

	got := out.String()
	assert.Contains(t, got, `"locale": "en"`)
	assert.Contains(t, got, `"content": [`)
	assert.True(t, strings.Contains(got, `"runs"`) && strings.Contains(got, `"John"`))
}

func TestPrintTrees(t *testing.T) {
	var out bytes.Buffer
	u := ui.New(&out, &bytes.Buffer{}, "text")

	doc, err := parser.ParseBytes("c.conllu", []byte(sampleCorpus))
	require.NoError(t, err)
	s := doc.Sentences[0]

	require.NoError(t, printTrees(u, []ui.TreeSentence{{ID: s.ID, Text: s.Text(), Tree: s.Tree}}))
	assert.Contains(t, out.String(), "[s1]")
	assert.Contains(t, out.String(), "John runs .")
	assert.Contains(t, out.String(), "└─ root runs/VERB (2)")
}
