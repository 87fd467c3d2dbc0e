package rules

import (
	"github.com/pthm/ideadensity/internal/engine"
	"github.com/pthm/ideadensity/internal/relation"
)

// ConjRuleset handles conjuncts. The phrase family comes from the class the
// coordinating head forces through the context, falling back to the
// conjunct's own tag.
type ConjRuleset struct{}

func (r *ConjRuleset) Name() string { return "conj" }

func (r *ConjRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelConj}
}

func (r *ConjRuleset) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	cfg := e.Config()
	tag := tree.At(index).Tag

	class := ctx.Class
	ctx.Class = engine.ClassNone
	switch {
	case class == engine.ClassVP:
		return extractClause(tree, index, path, e, ctx)
	case class == engine.ClassNP:
		return assembleNoun(tree, index, path, e, ctx, nil)
	case cfg.IsVerb(tag):
		return extractClause(tree, index, path, e, ctx)
	case cfg.IsAdjective(tag), cfg.IsAdverb(tag):
		forms, _ := modifierPhrase(tree, index, path, e, ctx, nil)
		return engine.Words(forms)
	case cfg.IsNoun(tag):
		return assembleNoun(tree, index, path, e, ctx, nil)
	}

	e.Unrecognized(tree, index, "conjunct of unknown phrase class")
	return engine.Word(tree.At(index).Word)
}
