package rules

import (
	"github.com/pthm/ideadensity/internal/engine"
	"github.com/pthm/ideadensity/internal/locale"
	"github.com/pthm/ideadensity/internal/proposition"
	"github.com/pthm/ideadensity/internal/relation"
)

// DeterminerRuleset handles determiners and predeterminers. Silent
// determiners (articles) are returned for folding into the noun phrase;
// every other determiner is a modification of the noun it attaches to.
type DeterminerRuleset struct{}

func (r *DeterminerRuleset) Name() string { return "determiner" }

func (r *DeterminerRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelDet, relation.LabelPredet}
}

func (r *DeterminerRuleset) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	word := tree.At(index).Word
	if e.Config().Match(locale.KeySilentDeterminers, word) {
		return engine.Word(word)
	}
	e.EmitIn(ctx, proposition.Modification,
		proposition.Text(ancestorWord(tree, index, path)),
		proposition.Text(word),
	)
	return nil
}

// QuantmodRuleset handles quantifier modifiers ("about", "cerca de"). Inside
// a numeral the modification attaches to the numeral, otherwise to the
// nearest ancestor.
type QuantmodRuleset struct{}

func (r *QuantmodRuleset) Name() string { return "quantmod" }

func (r *QuantmodRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelQuantmod}
}

func (r *QuantmodRuleset) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	head := ctx.Num
	if head == "" {
		head = ancestorWord(tree, index, path)
	}
	word := realize(append(foldedWords(tree, index, path, e, ctx), piece{index, tree.At(index).Word}))
	e.EmitIn(ctx, proposition.Modification, proposition.Text(head), proposition.Text(word))
	return nil
}

// NumeralRuleset assembles a cardinal from its compound parts ("two
// hundred") and returns it; the noun phrase pairs it with the noun.
type NumeralRuleset struct{}

func (r *NumeralRuleset) Name() string { return "numeral" }

func (r *NumeralRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelNum}
}

func (r *NumeralRuleset) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	child := ctx.Child()
	pieces := []piece{{index, tree.At(index).Word}}
	for _, c := range tree.ChildrenWithLabel(index, relation.LabelNumber) {
		pieces = append(pieces, piece{c, engine.WordOf(e.AnalyzeChild(tree, c, index, path, child))})
	}
	numeral := realize(pieces)

	for _, c := range tree.ChildrenWithLabel(index, relation.LabelQuantmod) {
		e.AnalyzeChild(tree, c, index, path, child.WithNum(numeral))
	}
	// UD attaches "about" and "cerca de" as advmod of the numeral.
	for _, c := range tree.ChildrenWithLabel(index, relation.LabelAdvmod) {
		res := e.AnalyzeChild(tree, c, index, path, child)
		emitModifiers(e, ctx, proposition.Modification, proposition.Text(numeral), res)
	}
	return engine.Word(numeral)
}

// foldedWords collects the multiword parts (mwe, fixed) of a relation so
// locutions like "cerca de" realize as one string.
func foldedWords(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) []piece {
	var pieces []piece
	for _, c := range tree.ChildrenWithLabel(index, relation.LabelFixed) {
		if w := engine.WordOf(e.AnalyzeChild(tree, c, index, path, ctx)); w != "" {
			pieces = append(pieces, piece{c, w})
		}
	}
	return pieces
}
