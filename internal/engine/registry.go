package engine

import (
	"github.com/pthm/ideadensity/internal/relation"
)

// Ruleset interprets every relation bound to one of its labels
type Ruleset interface {
	// Name returns the unique identifier for this ruleset
	Name() string

	// Labels returns the dependency labels the ruleset accepts
	Labels() []relation.Label

	// Extract interprets the relation at index. It may recurse through the
	// engine and emit propositions; the returned value goes to the caller.
	Extract(tree *relation.Tree, index int, path []int, e *Engine, ctx Context) Result
}

// Registry holds rulesets in priority order
type Registry struct {
	rulesets []Ruleset
}

// NewRegistry creates a new ruleset registry
func NewRegistry() *Registry {
	return &Registry{
		rulesets: make([]Ruleset, 0),
	}
}

// Register appends a ruleset; earlier registrations win ties
func (r *Registry) Register(rs Ruleset) {
	r.rulesets = append(r.rulesets, rs)
}

// Rulesets returns all registered rulesets in priority order
func (r *Registry) Rulesets() []Ruleset {
	return append([]Ruleset(nil), r.rulesets...)
}

// Get returns a ruleset by name
func (r *Registry) Get(name string) Ruleset {
	for _, rs := range r.rulesets {
		if rs.Name() == name {
			return rs
		}
	}
	return nil
}

// Resolve returns the first ruleset accepting label, or nil. LabelUnknown
// never resolves.
func (r *Registry) Resolve(label relation.Label) Ruleset {
	if label == relation.LabelUnknown {
		return nil
	}
	for _, rs := range r.rulesets {
		for _, l := range rs.Labels() {
			if l == label {
				return rs
			}
		}
	}
	return nil
}
