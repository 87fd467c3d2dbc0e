package density

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pthm/ideadensity/internal/locale"
	"github.com/pthm/ideadensity/internal/proposition"
	"github.com/pthm/ideadensity/internal/relation"
)

func loadLocale(t *testing.T, name string) *locale.Config {
	t.Helper()
	cfg, err := locale.Load(name)
	require.NoError(t, err)
	return cfg
}

func catSentence() Sentence {
	return Sentence{
		ID: "cat",
		Tree: relation.MustNew([]relation.Row{
			{Address: 1, Head: 0, Rel: "root", Tag: "VERB", Word: "Era"},
			{Address: 2, Head: 3, Rel: "det", Tag: "DET", Word: "uma"},
			{Address: 3, Head: 1, Rel: "obj", Tag: "NOUN", Word: "vez"},
			{Address: 4, Head: 5, Rel: "det", Tag: "DET", Word: "um"},
			{Address: 5, Head: 1, Rel: "nsubj", Tag: "NOUN", Word: "gato"},
			{Address: 6, Head: 7, Rel: "nsubj", Tag: "PRON", Word: "que"},
			{Address: 7, Head: 5, Rel: "acl:relcl", Tag: "VERB", Word: "dormia"},
			{Address: 8, Head: 10, Rel: "det", Tag: "DET", Word: "todo"},
			{Address: 9, Head: 10, Rel: "det", Tag: "DET", Word: "o"},
			{Address: 10, Head: 7, Rel: "obj", Tag: "NOUN", Word: "dia"},
			{Address: 11, Head: 1, Rel: "punct", Tag: "PUNCT", Word: "."},
		}),
	}
}

func joseSentence() Sentence {
	return Sentence{
		ID: "jose",
		Tree: relation.MustNew([]relation.Row{
			{Address: 1, Head: 2, Rel: "det", Tag: "DET", Word: "O"},
			{Address: 2, Head: 4, Rel: "nsubj", Tag: "PROPN", Word: "José"},
			{Address: 3, Head: 4, Rel: "aux", Tag: "AUX", Word: "vai"},
			{Address: 4, Head: 0, Rel: "root", Tag: "VERB", Word: "desistir"},
			{Address: 5, Head: 6, Rel: "mark", Tag: "ADP", Word: "de"},
			{Address: 6, Head: 4, Rel: "xcomp", Tag: "VERB", Word: "fazer"},
			{Address: 7, Head: 6, Rel: "obj", Tag: "NOUN", Word: "desporto"},
			{Address: 8, Head: 4, Rel: "punct", Tag: "PUNCT", Word: "."},
		}),
	}
}

func TestWordCount(t *testing.T) {
	cfg := loadLocale(t, "pt")
	tests := []struct {
		tokens []string
		want   int
	}{
		{nil, 0},
		{[]string{"."}, 0},
		{[]string{"Olá", ",", "mundo", "!"}, 2},
		{[]string{"«", "Sim", "»", "...", " "}, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WordCount(tt.tokens, cfg), "WordCount(%q)", tt.tokens)
	}
}

func TestAnalyzeSentence(t *testing.T) {
	a := NewAnalyzer(loadLocale(t, "pt"))

	tests := []struct {
		sentence     Sentence
		propositions int
		words        int
		density      float64
	}{
		{catSentence(), 3, 10, 0.300},
		{joseSentence(), 2, 7, 2.0 / 7.0},
	}
	for _, tt := range tests {
		t.Run(tt.sentence.ID, func(t *testing.T) {
			before := tt.sentence.Tree.Rows()

			got := a.AnalyzeSentence(tt.sentence)
			assert.Len(t, got.Propositions, tt.propositions)
			assert.Equal(t, tt.words, got.Words)
			assert.InDelta(t, tt.density, got.Density, 1e-9)
			assert.Empty(t, got.Unrecognized)

			// The caller's tree keeps its punctuation.
			assert.Equal(t, before, tt.sentence.Tree.Rows())
		})
	}
}

func TestAnalyze_Corpus(t *testing.T) {
	var progress []int
	var mu sync.Mutex
	a := NewAnalyzer(loadLocale(t, "pt"),
		WithWorkers(2),
		WithProgress(func(done, total int) {
			mu.Lock()
			defer mu.Unlock()
			progress = append(progress, done)
			assert.Equal(t, 2, total)
		}),
	)

	report, err := a.Analyze(context.Background(), []Sentence{catSentence(), joseSentence()})
	require.NoError(t, err)

	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, "pt", report.Locale)
	assert.Equal(t, 5, report.Propositions)
	assert.Equal(t, 17, report.Words)
	assert.InDelta(t, 5.0/17.0, report.Density, 1e-9)
	assert.Equal(t, 4, report.Kinds[proposition.Predication])
	assert.Equal(t, 1, report.Kinds[proposition.Modification])

	require.Len(t, report.Sentences, 2)
	assert.Equal(t, "cat", report.Sentences[0].ID)
	assert.Equal(t, "jose", report.Sentences[1].ID)
	assert.ElementsMatch(t, []int{1, 2}, progress)
}

func TestAnalyze_NoWords(t *testing.T) {
	a := NewAnalyzer(loadLocale(t, "en"))

	_, err := a.Analyze(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrNoWords), "Analyze(nil) error = %v, want ErrNoWords", err)

	onlyPunct := Sentence{
		ID: "p",
		Tree: relation.MustNew([]relation.Row{
			{Address: 1, Head: 0, Rel: "root", Tag: "PUNCT", Word: "!"},
		}),
	}
	_, err = a.Analyze(context.Background(), []Sentence{onlyPunct})
	assert.ErrorIs(t, err, ErrNoWords)
}

func TestAnalyze_Cancelled(t *testing.T) {
	a := NewAnalyzer(loadLocale(t, "pt"), WithWorkers(1))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := a.Analyze(ctx, []Sentence{catSentence()})
	assert.ErrorIs(t, err, context.Canceled)
}

type recordingObserver struct {
	mu           sync.Mutex
	sentences    int
	unrecognized []string
}

func (o *recordingObserver) ObserveSentence(SentenceResult) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.sentences++
}

func (o *recordingObserver) ObserveUnrecognized(rel string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.unrecognized = append(o.unrecognized, rel)
}

func TestAnalyzer_Observer(t *testing.T) {
	obs := &recordingObserver{}
	a := NewAnalyzer(loadLocale(t, "en"), WithObserver(obs))

	fragment := Sentence{
		ID: "fragment",
		Tree: relation.MustNew([]relation.Row{
			{Address: 1, Head: 0, Rel: "root", Tag: "JJ", Word: "Nice"},
		}),
	}
	got := a.AnalyzeSentence(fragment)

	assert.Empty(t, got.Propositions)
	assert.Equal(t, []string{"root"}, got.Unrecognized)
	assert.Equal(t, 1, obs.sentences)
	assert.Equal(t, []string{"root"}, obs.unrecognized)
}
