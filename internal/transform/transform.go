package transform

import (
	"github.com/pthm/ideadensity/internal/locale"
	"github.com/pthm/ideadensity/internal/relation"
)

// Transformation rewrites a whole tree in place. Passes are best-effort:
// when nothing matches they leave the tree untouched, and they never fail.
type Transformation interface {
	// Name returns the unique identifier for this pass
	Name() string

	// Transform mutates the tree
	Transform(tree *relation.Tree)
}

// Pipeline is an ordered list of transformations
type Pipeline struct {
	passes []Transformation
}

// NewPipeline creates a pipeline running passes in the given order
func NewPipeline(passes ...Transformation) *Pipeline {
	return &Pipeline{passes: passes}
}

// Add appends a pass to the pipeline
func (p *Pipeline) Add(t Transformation) {
	p.passes = append(p.passes, t)
}

// Passes returns the registered passes in order
func (p *Pipeline) Passes() []Transformation {
	return append([]Transformation(nil), p.passes...)
}

// Apply runs each pass exactly once, in order. The optional hook is called
// after every pass, e.g. for logging or validation.
func (p *Pipeline) Apply(tree *relation.Tree, after ...func(Transformation)) {
	if p == nil {
		return
	}
	for _, pass := range p.passes {
		pass.Transform(tree)
		for _, fn := range after {
			fn(pass)
		}
	}
}

// DefaultPipeline returns the standard pass order for a locale
func DefaultPipeline(cfg *locale.Config) *Pipeline {
	return NewPipeline(
		&RemovePunctuation{Config: cfg},
		&MergeIntensifier{Config: cfg},
		&FixReflexive{Config: cfg},
		&XcompToWhat{Config: cfg},
		&MarkCompoundNames{Config: cfg},
	)
}
