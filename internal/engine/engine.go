package engine

import (
	"strings"

	"go.uber.org/zap"

	"github.com/pthm/ideadensity/internal/locale"
	"github.com/pthm/ideadensity/internal/proposition"
	"github.com/pthm/ideadensity/internal/relation"
	"github.com/pthm/ideadensity/internal/transform"
)

// Engine dispatches relations to rulesets and collects the propositions they
// emit. An Engine holds per-sentence state and must not be shared between
// goroutines; use one Engine per worker.
type Engine struct {
	registry *Registry
	pipeline *transform.Pipeline
	config   *locale.Config
	logger   *zap.Logger
	store    *proposition.Store

	// dispatch maps each literal label seen in the current sentence to its
	// ruleset; a nil value records "no handler".
	dispatch map[string]Ruleset

	onUnrecognized func(rel string)
}

// Option configures an Engine
type Option func(*Engine)

// WithLogger sets the engine's logger
func WithLogger(logger *zap.Logger) Option {
	return func(e *Engine) {
		if logger != nil {
			e.logger = logger
		}
	}
}

// WithUnrecognizedHook registers a callback invoked for every construct a
// ruleset could not interpret.
func WithUnrecognizedHook(fn func(rel string)) Option {
	return func(e *Engine) {
		e.onUnrecognized = fn
	}
}

// New creates an engine. The pipeline may be nil to skip transformations.
func New(registry *Registry, pipeline *transform.Pipeline, cfg *locale.Config, opts ...Option) *Engine {
	e := &Engine{
		registry: registry,
		pipeline: pipeline,
		config:   cfg,
		logger:   zap.NewNop(),
		store:    proposition.NewStore(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Config returns the locale configuration the engine was built with
func (e *Engine) Config() *locale.Config {
	return e.config
}

// Logger returns the engine's logger
func (e *Engine) Logger() *zap.Logger {
	return e.logger
}

// Run analyses a whole sentence and returns its propositions.
func (e *Engine) Run(tree *relation.Tree) []proposition.Proposition {
	e.Analyze(tree, 0, nil, Context{})
	if pending := tree.Unprocessed(); len(pending) > 0 {
		e.logger.Debug("relations left unprocessed", zap.Ints("addresses", pending))
	}
	return e.store.All()
}

// Analyze interprets the relation at index. Entering at the TOP node starts
// a new sentence: transformations run, the proposition store and processed
// flags are reset, and the dispatch table is rebuilt.
func (e *Engine) Analyze(tree *relation.Tree, index int, path []int, ctx Context) Result {
	node := tree.At(index)
	if node == nil {
		return nil
	}

	if node.IsTop() {
		e.begin(tree)
		node.Processed = true
		root := tree.Root()
		if root < 0 {
			return nil
		}
		return e.Analyze(tree, root, []int{0}, ctx)
	}

	if e.dispatch == nil {
		e.buildDispatch(tree)
	}

	var result Result
	key := strings.ToLower(node.Rel)
	rs, seen := e.dispatch[key]
	if !seen {
		// Labels introduced after the table was built (e.g. by a caller
		// rewriting the tree mid-run) are resolved lazily.
		rs = e.registry.Resolve(relation.ParseLabel(key))
		e.dispatch[key] = rs
	}
	if rs != nil {
		result = rs.Extract(tree, index, path, e, ctx)
	}
	node.Processed = true
	return result
}

// AnalyzeChild analyses child with the path extended by parent.
func (e *Engine) AnalyzeChild(tree *relation.Tree, child, parent int, path []int, ctx Context) Result {
	return e.Analyze(tree, child, Extend(path, parent), ctx)
}

func (e *Engine) begin(tree *relation.Tree) {
	e.pipeline.Apply(tree, func(t transform.Transformation) {
		if ce := e.logger.Check(zap.DebugLevel, "transformation applied"); ce != nil {
			ce.Write(zap.String("pass", t.Name()), zap.Int("nodes", tree.Len()))
		}
	})
	e.store.Reset()
	tree.ResetProcessed()
	e.buildDispatch(tree)
}

func (e *Engine) buildDispatch(tree *relation.Tree) {
	e.dispatch = make(map[string]Ruleset)
	for _, n := range tree.Relations() {
		if n.IsTop() {
			continue
		}
		key := strings.ToLower(n.Rel)
		if _, ok := e.dispatch[key]; ok {
			continue
		}
		e.dispatch[key] = e.registry.Resolve(relation.ParseLabel(key))
	}
}

// Emit appends a proposition and returns its id.
func (e *Engine) Emit(content []proposition.Item, kind proposition.Kind) int {
	return e.store.Emit(content, kind)
}

// EmitIn emits unless ctx suppresses emission, in which case it returns 0.
func (e *Engine) EmitIn(ctx Context, kind proposition.Kind, content ...proposition.Item) int {
	if ctx.Suppress {
		return 0
	}
	return e.store.Emit(content, kind)
}

// Count returns how many propositions the current sentence has so far; ids
// emitted afterwards are greater than it.
func (e *Engine) Count() int {
	return e.store.Len()
}

// Propositions returns the propositions emitted for the current sentence.
func (e *Engine) Propositions() []proposition.Proposition {
	return e.store.All()
}

// ChildrenWithLabel returns, in tree order, the dependents of index carrying
// one of labels.
func (e *Engine) ChildrenWithLabel(tree *relation.Tree, index int, labels ...relation.Label) []int {
	return tree.ChildrenWithLabel(index, labels...)
}

// Unrecognized records a construct a ruleset cannot interpret. It never
// aborts the sentence.
func (e *Engine) Unrecognized(tree *relation.Tree, index int, reason string) {
	n := tree.At(index)
	if n == nil {
		return
	}
	e.logger.Warn("unrecognized construct",
		zap.String("reason", reason),
		zap.Int("index", index),
		zap.String("rel", n.Rel),
		zap.String("tag", n.Tag),
		zap.String("word", n.Word),
	)
	if e.onUnrecognized != nil {
		e.onUnrecognized(n.Rel)
	}
}

// Extend returns a copy of path with index appended.
func Extend(path []int, index int) []int {
	out := make([]int, len(path), len(path)+1)
	copy(out, path)
	return append(out, index)
}
