package rules

import (
	"github.com/pthm/ideadensity/internal/engine"
	"github.com/pthm/ideadensity/internal/proposition"
	"github.com/pthm/ideadensity/internal/relation"
)

// atomic returns the relation's own word, with its fixed parts folded in
// ("so that", "apesar de"). Any other dependent ("only if") modifies that
// word.
type atomic struct{}

func (atomic) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	child := ctx.Child()
	word := realize(append(foldedWords(tree, index, path, e, child), piece{index, tree.At(index).Word}))

	for _, c := range tree.Children(index) {
		if tree.At(c).Label() == relation.LabelFixed {
			continue
		}
		res := e.AnalyzeChild(tree, c, index, path, child)
		emitModifiers(e, ctx, proposition.Modification, proposition.Text(word), res)
	}
	return engine.Word(word)
}

// AuxRuleset handles auxiliaries, active and passive
type AuxRuleset struct{ atomic }

func (r *AuxRuleset) Name() string { return "aux" }

func (r *AuxRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelAux, relation.LabelAuxpass}
}

// CopRuleset handles copulas
type CopRuleset struct{ atomic }

func (r *CopRuleset) Name() string { return "cop" }

func (r *CopRuleset) Labels() []relation.Label { return []relation.Label{relation.LabelCop} }

// CcRuleset handles coordinating conjunctions
type CcRuleset struct{ atomic }

func (r *CcRuleset) Name() string { return "cc" }

func (r *CcRuleset) Labels() []relation.Label { return []relation.Label{relation.LabelCc} }

// MarkRuleset handles subordinating markers
type MarkRuleset struct{ atomic }

func (r *MarkRuleset) Name() string { return "mark" }

func (r *MarkRuleset) Labels() []relation.Label { return []relation.Label{relation.LabelMark} }

// CaseRuleset handles adpositions attached to their object (UD case)
type CaseRuleset struct{ atomic }

func (r *CaseRuleset) Name() string { return "case" }

func (r *CaseRuleset) Labels() []relation.Label { return []relation.Label{relation.LabelCase} }

// PrtRuleset handles phrasal-verb particles
type PrtRuleset struct{ atomic }

func (r *PrtRuleset) Name() string { return "prt" }

func (r *PrtRuleset) Labels() []relation.Label { return []relation.Label{relation.LabelPrt} }

// PossessiveRuleset handles the possessive clitic ('s)
type PossessiveRuleset struct{ atomic }

func (r *PossessiveRuleset) Name() string { return "possessive" }

func (r *PossessiveRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelPossessive}
}

// ExplRuleset handles expletives ("there is", "it rains")
type ExplRuleset struct{ atomic }

func (r *ExplRuleset) Name() string { return "expl" }

func (r *ExplRuleset) Labels() []relation.Label { return []relation.Label{relation.LabelExpl} }

// PreconjRuleset handles preconjuncts ("either", "both")
type PreconjRuleset struct{ atomic }

func (r *PreconjRuleset) Name() string { return "preconj" }

func (r *PreconjRuleset) Labels() []relation.Label { return []relation.Label{relation.LabelPreconj} }

// PunctRuleset handles punctuation that survived the transformation pass
type PunctRuleset struct{ atomic }

func (r *PunctRuleset) Name() string { return "punct" }

func (r *PunctRuleset) Labels() []relation.Label { return []relation.Label{relation.LabelPunct} }

// FixedRuleset handles the non-initial words of a fixed expression. They
// are normally folded by the expression's first word.
type FixedRuleset struct{ atomic }

func (r *FixedRuleset) Name() string { return "fixed" }

func (r *FixedRuleset) Labels() []relation.Label { return []relation.Label{relation.LabelFixed} }

// NumberRuleset handles parts of compound numerals ("two" in "two hundred")
type NumberRuleset struct{ atomic }

func (r *NumberRuleset) Name() string { return "number" }

func (r *NumberRuleset) Labels() []relation.Label { return []relation.Label{relation.LabelNumber} }
