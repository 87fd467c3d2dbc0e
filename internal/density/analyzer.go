package density

import (
	"context"
	"fmt"
	"runtime"
	"sync/atomic"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pthm/ideadensity/internal/engine"
	"github.com/pthm/ideadensity/internal/locale"
	"github.com/pthm/ideadensity/internal/proposition"
	"github.com/pthm/ideadensity/internal/rules"
	"github.com/pthm/ideadensity/internal/transform"
)

// Observer receives analysis events, e.g. to export metrics. Implementations
// must be safe for concurrent use.
type Observer interface {
	ObserveSentence(result SentenceResult)
	ObserveUnrecognized(rel string)
}

// Report is the outcome of analysing a corpus
type Report struct {
	RunID        string                   `json:"run_id"`
	Locale       string                   `json:"locale"`
	Sentences    []SentenceResult         `json:"sentences"`
	Propositions int                      `json:"propositions"`
	Words        int                      `json:"words"`
	Density      float64                  `json:"density"`
	Kinds        map[proposition.Kind]int `json:"kinds"`
}

// Analyzer runs the proposition engine over sentences
type Analyzer struct {
	registry *engine.Registry
	pipeline *transform.Pipeline
	config   *locale.Config
	logger   *zap.Logger
	workers  int
	observer Observer
	progress func(done, total int)
}

// Option configures an Analyzer
type Option func(*Analyzer)

// WithLogger sets the analyzer's logger
func WithLogger(logger *zap.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithWorkers bounds how many sentences are analysed at once
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		if n > 0 {
			a.workers = n
		}
	}
}

// WithRegistry replaces the default rulesets
func WithRegistry(r *engine.Registry) Option {
	return func(a *Analyzer) {
		if r != nil {
			a.registry = r
		}
	}
}

// WithPipeline replaces the default transformation pipeline
func WithPipeline(p *transform.Pipeline) Option {
	return func(a *Analyzer) {
		a.pipeline = p
	}
}

// WithObserver registers an observer for analysis events
func WithObserver(o Observer) Option {
	return func(a *Analyzer) {
		a.observer = o
	}
}

// WithProgress registers a callback invoked after each sentence
func WithProgress(fn func(done, total int)) Option {
	return func(a *Analyzer) {
		a.progress = fn
	}
}

// NewAnalyzer creates an analyzer for a locale
func NewAnalyzer(cfg *locale.Config, opts ...Option) *Analyzer {
	a := &Analyzer{
		registry: rules.DefaultRegistry(),
		pipeline: transform.DefaultPipeline(cfg),
		config:   cfg,
		logger:   zap.NewNop(),
		workers:  runtime.NumCPU(),
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// AnalyzeSentence extracts the propositions of one sentence. The sentence's
// tree is cloned, so the caller's copy is never transformed.
func (a *Analyzer) AnalyzeSentence(s Sentence) SentenceResult {
	result := SentenceResult{
		ID:     s.ID,
		Source: s.Source,
		Text:   s.Text(),
		Words:  WordCount(s.tokens(), a.config),
	}
	if s.Tree == nil {
		return result
	}

	hook := func(rel string) {
		result.Unrecognized = append(result.Unrecognized, rel)
		if a.observer != nil {
			a.observer.ObserveUnrecognized(rel)
		}
	}

	e := engine.New(a.registry, a.pipeline, a.config,
		engine.WithLogger(a.logger.With(zap.String("sentence", s.ID))),
		engine.WithUnrecognizedHook(hook),
	)
	result.Propositions = e.Run(s.Tree.Clone())
	result.Density = Ratio(len(result.Propositions), result.Words)

	if a.observer != nil {
		a.observer.ObserveSentence(result)
	}
	return result
}

// Analyze analyses every sentence, in parallel, and aggregates the corpus
// density. Sentence order is preserved in the report. It returns
// ErrNoWords when the corpus has no countable words.
func (a *Analyzer) Analyze(ctx context.Context, sentences []Sentence) (*Report, error) {
	results := make([]SentenceResult, len(sentences))
	var done atomic.Int64

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, s := range sentences {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			results[i] = a.AnalyzeSentence(s)
			if a.progress != nil {
				a.progress(int(done.Add(1)), len(sentences))
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	report := &Report{
		RunID:     uuid.NewString(),
		Locale:    a.config.Name,
		Sentences: results,
		Kinds:     make(map[proposition.Kind]int),
	}
	for _, r := range results {
		report.Propositions += len(r.Propositions)
		report.Words += r.Words
		for kind, n := range proposition.CountByKind(r.Propositions) {
			report.Kinds[kind] += n
		}
	}
	if report.Words == 0 {
		return report, fmt.Errorf("%w: %d sentences", ErrNoWords, len(sentences))
	}
	report.Density = Ratio(report.Propositions, report.Words)

	a.logger.Debug("analysis complete",
		zap.String("run_id", report.RunID),
		zap.Int("sentences", len(results)),
		zap.Int("propositions", report.Propositions),
		zap.Int("words", report.Words),
		zap.Float64("density", report.Density),
	)
	return report, nil
}
