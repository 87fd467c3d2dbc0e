package rules

import (
	"github.com/pthm/ideadensity/internal/engine"
	"github.com/pthm/ideadensity/internal/locale"
	"github.com/pthm/ideadensity/internal/proposition"
	"github.com/pthm/ideadensity/internal/relation"
)

// NounPhraseRuleset handles nominal dependents. It returns the realized noun
// phrase and emits the modifications found inside it.
type NounPhraseRuleset struct{}

func (r *NounPhraseRuleset) Name() string { return "noun-phrase" }

func (r *NounPhraseRuleset) Labels() []relation.Label {
	return []relation.Label{
		relation.LabelNsubj,
		relation.LabelNsubjpass,
		relation.LabelDobj,
		relation.LabelIobj,
		relation.LabelPobj,
		relation.LabelPoss,
		relation.LabelAppos,
		relation.LabelAttr,
		relation.LabelTmod,
		relation.LabelNn,
		relation.LabelNpadvmod,
	}
}

func (r *NounPhraseRuleset) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	return assembleNoun(tree, index, path, e, ctx, nil)
}

// CompoundNameRuleset handles the non-head parts of a multiword proper name
type CompoundNameRuleset struct{}

func (r *CompoundNameRuleset) Name() string { return "compound-name" }

func (r *CompoundNameRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelCompoundName}
}

func (r *CompoundNameRuleset) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	pieces := []piece{{index, tree.At(index).Word}}
	for _, c := range tree.ChildrenWithLabel(index, relation.LabelCompoundName) {
		pieces = append(pieces, piece{c, engine.WordOf(e.AnalyzeChild(tree, c, index, path, ctx))})
	}
	return engine.Word(realize(pieces))
}

// NmodRuleset handles nominal modifiers introduced by an adposition (UD
// nmod and obl). The result has the same shape as a prepositional phrase.
type NmodRuleset struct{}

func (r *NmodRuleset) Name() string { return "nmod" }

func (r *NmodRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelNmod}
}

func (r *NmodRuleset) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	cases := tree.ChildrenWithLabel(index, relation.LabelCase)
	skip := make(map[int]bool, len(cases))
	var prep []piece
	for _, c := range cases {
		skip[c] = true
		prep = append(prep, piece{c, realizeCase(tree, c, index, path, e, ctx)})
	}

	np := assembleNoun(tree, index, path, e, ctx, skip)
	return engine.Prepositional{
		Prep:        realize(prep),
		Objects:     np.Forms,
		Coordinator: np.Coordinator,
		Excluded:    np.Excluded,
	}
}

// realizeCase returns an adposition with its fixed parts ("apesar de").
func realizeCase(tree *relation.Tree, c, parent int, path []int, e *engine.Engine, ctx engine.Context) string {
	return engine.WordOf(e.AnalyzeChild(tree, c, parent, path, ctx))
}

// WhatRuleset handles the "what" relation introduced for small clauses
// ("consider him a genius"). The returned phrase is the predicated
// description.
type WhatRuleset struct{}

func (r *WhatRuleset) Name() string { return "what" }

func (r *WhatRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelWhat}
}

func (r *WhatRuleset) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	if e.Config().IsAdjective(tree.At(index).Tag) {
		forms, _ := modifierPhrase(tree, index, path, e, ctx, nil)
		return engine.Words(forms)
	}
	return assembleNoun(tree, index, path, e, ctx, nil)
}

// assembleNoun realizes the noun phrase headed at index. Articles, compound
// parts and possessors fold into the form; every other dependent becomes a
// proposition about the head. A relative pronoun resolves to the antecedent
// carried by ctx, and a partitive head ("a maioria dos alunos") stands for
// its object. Children in skip are not visited.
func assembleNoun(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context, skip map[int]bool) engine.NounPhrase {
	node := tree.At(index)
	cfg := e.Config()
	mark := e.Count()

	if len(ctx.Antecedent) > 0 && cfg.Match(locale.KeyRelativePronouns, node.Word) {
		forms := append([]string(nil), ctx.Antecedent...)
		return engine.NounPhrase{Forms: forms, Subject: forms}
	}
	if np, ok := partitive(tree, index, path, e, ctx, skip); ok {
		return np
	}

	child := ctx.Child()
	children := without(tree.Children(index), skip)

	pieces := []piece{{index, node.Word}}
	core := []piece{{index, node.Word}}
	for _, c := range children {
		switch tree.At(c).Label() {
		case relation.LabelDet, relation.LabelPredet:
			if w := engine.WordOf(e.AnalyzeChild(tree, c, index, path, child)); w != "" {
				pieces = append(pieces, piece{c, w})
			}
		case relation.LabelNn, relation.LabelCompoundName:
			if forms := engine.FormsOf(e.AnalyzeChild(tree, c, index, path, child)); len(forms) > 0 {
				pieces = append(pieces, piece{c, forms[0]})
				core = append(core, piece{c, forms[0]})
			}
		case relation.LabelPoss:
			if forms := engine.FormsOf(e.AnalyzeChild(tree, c, index, path, child)); len(forms) > 0 {
				pieces = append(pieces, piece{c, forms[0]})
			}
		case relation.LabelPossessive:
			w := engine.WordOf(e.AnalyzeChild(tree, c, index, path, child))
			pieces = append(pieces, piece{c, w})
			core = append(core, piece{c, w})
		}
	}
	form := realize(pieces)
	head := proposition.Text(realize(core))

	var (
		relative  []int
		conjForms []string
		cc        string
		preconj   string
	)
	for _, c := range children {
		switch tree.At(c).Label() {
		case relation.LabelNum:
			if w := engine.WordOf(e.AnalyzeChild(tree, c, index, path, child)); w != "" {
				e.EmitIn(ctx, proposition.Modification, head, proposition.Text(w))
			}
		case relation.LabelAmod, relation.LabelAdvmod, relation.LabelNpadvmod, relation.LabelTmod,
			relation.LabelPrep, relation.LabelNmod,
			relation.LabelCcomp, relation.LabelXcomp, relation.LabelAdvcl:
			res := e.AnalyzeChild(tree, c, index, path, child)
			emitModifiers(e, ctx, proposition.Modification, head, res)
		case relation.LabelAppos:
			res := e.AnalyzeChild(tree, c, index, path, child)
			emitModifiers(e, ctx, proposition.Apposition, proposition.Text(form), res)
		case relation.LabelRcmod, relation.LabelPartmod:
			antecedent := []string{form}
			res := e.AnalyzeChild(tree, c, index, path, child.WithAntecedent(antecedent).WithSubject(antecedent))
			if vp, ok := res.(engine.VerbPhrase); ok {
				relative = append(relative, vp.IDs...)
			}
		case relation.LabelCc:
			cc = engine.WordOf(e.AnalyzeChild(tree, c, index, path, child))
		case relation.LabelPreconj:
			preconj = engine.WordOf(e.AnalyzeChild(tree, c, index, path, child))
		case relation.LabelConj:
			res := e.AnalyzeChild(tree, c, index, path, child.WithClass(engine.ClassNP))
			conjForms = append(conjForms, engine.FormsOf(res)...)
		case relation.LabelNeg, relation.LabelDiscourse, relation.LabelQuantmod, relation.LabelCase:
			e.AnalyzeChild(tree, c, index, path, child)
		}
	}

	np := engine.NounPhrase{
		Forms:          append([]string{form}, conjForms...),
		RelativeClause: relative,
		Subject:        []string{form},
	}
	if len(conjForms) > 0 {
		np.Coordinator = joinWords(preconj, cc)
	}
	np.Excluded = idsSince(e, mark)
	return np
}

// partitive resolves a partitive head to the object of its partitive
// preposition. The head's other dependents are visited without emitting.
func partitive(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context, skip map[int]bool) (engine.NounPhrase, bool) {
	cfg := e.Config()
	if !cfg.Match(locale.KeyPartitiveNouns, tree.At(index).Word) {
		return engine.NounPhrase{}, false
	}

	children := without(tree.Children(index), skip)
	target := -1
	for _, c := range children {
		n := tree.At(c)
		switch n.Label() {
		case relation.LabelPrep:
			if cfg.Match(locale.KeyPartitivePrepositions, n.Word) {
				target = c
			}
		case relation.LabelNmod:
			for _, k := range tree.ChildrenWithLabel(c, relation.LabelCase) {
				if cfg.Match(locale.KeyPartitivePrepositions, tree.At(k).Word) {
					target = c
				}
			}
		}
		if target >= 0 {
			break
		}
	}
	if target < 0 {
		return engine.NounPhrase{}, false
	}

	mark := e.Count()
	for _, c := range children {
		if c != target {
			e.AnalyzeChild(tree, c, index, path, ctx.Child().WithSuppress())
		}
	}
	res := e.AnalyzeChild(tree, target, index, path, ctx.Child())
	pp, ok := res.(engine.Prepositional)
	if !ok || len(pp.Objects) == 0 {
		return engine.NounPhrase{}, false
	}
	return engine.NounPhrase{
		Forms:       pp.Objects,
		Subject:     pp.Objects,
		Coordinator: pp.Coordinator,
		Excluded:    idsSince(e, mark),
	}, true
}

// PrepRuleset handles Stanford-style prepositions, whose object hangs below
// them as pobj or pcomp.
type PrepRuleset struct{}

func (r *PrepRuleset) Name() string { return "prep" }

func (r *PrepRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelPrep}
}

func (r *PrepRuleset) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	node := tree.At(index)
	child := ctx.Child()
	mark := e.Count()

	pp := engine.Prepositional{
		Prep: realize(append(foldedWords(tree, index, path, e, child), piece{index, node.Word})),
	}
	for _, c := range tree.Children(index) {
		switch tree.At(c).Label() {
		case relation.LabelPobj:
			res := e.AnalyzeChild(tree, c, index, path, child)
			if np, ok := res.(engine.NounPhrase); ok {
				pp.Objects = append(pp.Objects, np.Forms...)
				if np.Coordinator != "" {
					pp.Coordinator = np.Coordinator
				}
			} else {
				pp.Objects = append(pp.Objects, engine.FormsOf(res)...)
			}
		case relation.LabelPcomp:
			if vp, ok := e.AnalyzeChild(tree, c, index, path, child).(engine.VerbPhrase); ok && vp.Head > 0 {
				pp.Ref = vp.Head
			}
		case relation.LabelAdvmod:
			// "right after"
			res := e.AnalyzeChild(tree, c, index, path, child)
			emitModifiers(e, ctx, proposition.Modification, proposition.Text(node.Word), res)
		case relation.LabelNeg:
			e.AnalyzeChild(tree, c, index, path, child)
		}
	}
	pp.Excluded = idsSince(e, mark)
	return pp
}
