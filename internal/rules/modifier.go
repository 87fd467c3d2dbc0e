package rules

import (
	"github.com/pthm/ideadensity/internal/engine"
	"github.com/pthm/ideadensity/internal/proposition"
	"github.com/pthm/ideadensity/internal/relation"
)

// AdjectivalRuleset handles adjectival modifiers and complements. The
// adjective is returned (with any coordinated adjectives); its own
// modifiers are emitted against it.
type AdjectivalRuleset struct{}

func (r *AdjectivalRuleset) Name() string { return "adjectival" }

func (r *AdjectivalRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelAmod, relation.LabelAcomp}
}

func (r *AdjectivalRuleset) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	forms, _ := modifierPhrase(tree, index, path, e, ctx, nil)
	return engine.Words(forms)
}

// AdverbialRuleset handles adverbial modifiers
type AdverbialRuleset struct{}

func (r *AdverbialRuleset) Name() string { return "adverbial" }

func (r *AdverbialRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelAdvmod}
}

func (r *AdverbialRuleset) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	forms, _ := modifierPhrase(tree, index, path, e, ctx, nil)
	return engine.Words(forms)
}

// modifierPhrase realizes an adjective or adverb. Modifiers of the head
// ("very", "from home", "to help") become M-propositions on the head word;
// coordinated heads add their forms and the coordinator is returned with
// them. Children in skip are left alone.
func modifierPhrase(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context, skip map[int]bool) ([]string, string) {
	node := tree.At(index)
	child := ctx.Child()
	head := proposition.Text(node.Word)

	forms := []string{realize(append(foldedWords(tree, index, path, e, child), piece{index, node.Word}))}
	var cc, preconj string
	for _, c := range without(tree.Children(index), skip) {
		switch tree.At(c).Label() {
		case relation.LabelAdvmod, relation.LabelNpadvmod, relation.LabelTmod,
			relation.LabelPrep, relation.LabelNmod,
			relation.LabelXcomp, relation.LabelCcomp, relation.LabelAdvcl:
			res := e.AnalyzeChild(tree, c, index, path, child)
			emitModifiers(e, ctx, proposition.Modification, head, res)
		case relation.LabelConj:
			res := e.AnalyzeChild(tree, c, index, path, child)
			forms = append(forms, engine.FormsOf(res)...)
		case relation.LabelCc:
			cc = engine.WordOf(e.AnalyzeChild(tree, c, index, path, child))
		case relation.LabelPreconj:
			preconj = engine.WordOf(e.AnalyzeChild(tree, c, index, path, child))
		case relation.LabelDet, relation.LabelPredet, relation.LabelQuantmod,
			relation.LabelNeg, relation.LabelDiscourse:
			e.AnalyzeChild(tree, c, index, path, child)
		}
	}
	if len(forms) > 1 {
		return forms, joinWords(preconj, cc)
	}
	return forms, ""
}

// NegRuleset handles negation words, each a modification on its own
type NegRuleset struct{}

func (r *NegRuleset) Name() string { return "neg" }

func (r *NegRuleset) Labels() []relation.Label { return []relation.Label{relation.LabelNeg} }

func (r *NegRuleset) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	word := tree.At(index).Word
	e.EmitIn(ctx, proposition.Modification, proposition.Text(word))
	return engine.Word(word)
}

// DiscourseRuleset handles interjections and discourse markers
type DiscourseRuleset struct{}

func (r *DiscourseRuleset) Name() string { return "discourse" }

func (r *DiscourseRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelDiscourse}
}

func (r *DiscourseRuleset) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	word := tree.At(index).Word
	e.EmitIn(ctx, proposition.Modification, proposition.Text(word))
	return engine.Word(word)
}
