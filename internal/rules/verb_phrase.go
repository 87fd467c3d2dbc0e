package rules

import (
	"github.com/pthm/ideadensity/internal/engine"
	"github.com/pthm/ideadensity/internal/locale"
	"github.com/pthm/ideadensity/internal/proposition"
	"github.com/pthm/ideadensity/internal/relation"
)

// clause interprets the clause headed by the relation
type clause struct{}

func (clause) Extract(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	return extractClause(tree, index, path, e, ctx)
}

// RootRuleset handles main clauses and loosely attached (paratactic) ones
type RootRuleset struct{ clause }

func (r *RootRuleset) Name() string { return "root" }

func (r *RootRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelRoot, relation.LabelParataxis}
}

// ComplementClauseRuleset handles clauses filling an argument slot
type ComplementClauseRuleset struct{ clause }

func (r *ComplementClauseRuleset) Name() string { return "complement-clause" }

func (r *ComplementClauseRuleset) Labels() []relation.Label {
	return []relation.Label{
		relation.LabelCcomp,
		relation.LabelXcomp,
		relation.LabelCsubj,
		relation.LabelPcomp,
	}
}

// AdverbialClauseRuleset handles subordinate adverbial clauses
type AdverbialClauseRuleset struct{ clause }

func (r *AdverbialClauseRuleset) Name() string { return "adverbial-clause" }

func (r *AdverbialClauseRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelAdvcl}
}

// RelativeClauseRuleset handles relative and participial clauses modifying
// a noun
type RelativeClauseRuleset struct{ clause }

func (r *RelativeClauseRuleset) Name() string { return "relative-clause" }

func (r *RelativeClauseRuleset) Labels() []relation.Label {
	return []relation.Label{relation.LabelRcmod, relation.LabelPartmod}
}

// clauseShape is the construction a clause head takes part in
type clauseShape int

const (
	shapeUnknown clauseShape = iota
	shapeCopulaVerb
	shapeAction
	shapeCopulaNoun
	shapeCopulaAdj
)

func (s clauseShape) String() string {
	switch s {
	case shapeCopulaVerb:
		return "copula-verb"
	case shapeAction:
		return "action"
	case shapeCopulaNoun:
		return "copula-noun"
	case shapeCopulaAdj:
		return "copula-adjective"
	default:
		return "unknown"
	}
}

func classifyClause(tree *relation.Tree, index int, cfg *locale.Config) clauseShape {
	node := tree.At(index)
	hasCop := len(tree.ChildrenWithLabel(index, relation.LabelCop)) > 0
	switch {
	case hasCop && cfg.IsNoun(node.Tag):
		return shapeCopulaNoun
	case hasCop && (cfg.IsAdjective(node.Tag) || cfg.IsAdverb(node.Tag)):
		return shapeCopulaAdj
	case cfg.IsVerb(node.Tag) && !hasCop && cfg.Match(locale.KeyCopulas, node.Word):
		return shapeCopulaVerb
	case cfg.IsVerb(node.Tag):
		return shapeAction
	}
	return shapeUnknown
}

// clauseOwned are the dependents a clause interprets itself whatever its
// shape; a nominal or adjectival predicate gets the rest.
var clauseOwned = map[relation.Label]bool{
	relation.LabelNsubj:     true,
	relation.LabelNsubjpass: true,
	relation.LabelCsubj:     true,
	relation.LabelCop:       true,
	relation.LabelAux:       true,
	relation.LabelAuxpass:   true,
	relation.LabelMark:      true,
	relation.LabelExpl:      true,
	relation.LabelNeg:       true,
	relation.LabelDiscourse: true,
	relation.LabelPrt:       true,
	relation.LabelAdvcl:     true,
	relation.LabelParataxis: true,
	relation.LabelTmod:      true,
	relation.LabelWhat:      true,
	relation.LabelPunct:     true,
}

// slot is one argument position of a predication; several forms in a slot
// come from coordination.
type slot struct {
	items       []proposition.Item
	coordinator string
}

// extractClause emits the predication of the clause headed at index and
// links its modifiers, subordinate and coordinated clauses to it.
func extractClause(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) engine.Result {
	node := tree.At(index)
	cfg := e.Config()

	shape := classifyClause(tree, index, cfg)
	if shape == shapeUnknown {
		e.Unrecognized(tree, index, "clause head is neither a verb nor a copular predicate")
		return engine.VerbPhrase{}
	}

	mark := e.Count()
	child := ctx.Child()
	vp := engine.VerbPhrase{
		Marker: joinWords(wordsOf(e, tree, tree.ChildrenWithLabel(index, relation.LabelMark), index, path, child)...),
	}

	// Coordinated clauses with their own subject or copula belong to the
	// clause; the rest coordinate the predicate.
	owned := make(map[int]bool)
	var conjuncts []int
	for _, c := range tree.Children(index) {
		l := tree.At(c).Label()
		if clauseOwned[l] {
			owned[c] = true
		}
		if l == relation.LabelConj && (shape == shapeAction || shape == shapeCopulaVerb || clausalConjunct(tree, c, cfg)) {
			owned[c] = true
			conjuncts = append(conjuncts, c)
		}
	}
	if len(conjuncts) > 0 {
		for _, c := range tree.ChildrenWithLabel(index, relation.LabelCc, relation.LabelPreconj) {
			owned[c] = true
		}
	}

	subject := clauseSubject(tree, index, path, e, ctx)
	vp.Subject = subject.texts()

	auxs := wordsOf(e, tree, tree.ChildrenWithLabel(index, relation.LabelAux, relation.LabelAuxpass), index, path, child)
	if len(auxs) == 0 {
		auxs = append([]string(nil), ctx.Auxs...)
	}
	for _, c := range tree.ChildrenWithLabel(index, relation.LabelExpl, relation.LabelNeg, relation.LabelDiscourse) {
		e.AnalyzeChild(tree, c, index, path, child)
	}
	prts := wordsOf(e, tree, tree.ChildrenWithLabel(index, relation.LabelPrt), index, path, child)

	var (
		verb  string
		slots []slot
	)
	switch shape {
	case shapeCopulaVerb, shapeAction:
		verb = joinWords(append(append(auxs, node.Word), prts...)...)
		slots = verbComplements(tree, index, path, e, child, vp.Subject)
	case shapeCopulaNoun:
		cops := wordsOf(e, tree, tree.ChildrenWithLabel(index, relation.LabelCop), index, path, child)
		verb = joinWords(append(auxs, cops...)...)
		slots = []slot{nominalPredicate(tree, index, path, e, ctx, owned)}
	case shapeCopulaAdj:
		cops := wordsOf(e, tree, tree.ChildrenWithLabel(index, relation.LabelCop), index, path, child)
		verb = joinWords(append(auxs, cops...)...)
		forms, coordinator := modifierPhrase(tree, index, path, e, ctx, owned)
		slots = []slot{{items: proposition.Texts(forms...), coordinator: coordinator}}
	}

	var predications []int
	for _, combo := range combinations(subject.slot, slots) {
		content := append([]proposition.Item{proposition.Text(verb)}, combo...)
		if id := e.EmitIn(ctx, proposition.Predication, content...); id > 0 {
			predications = append(predications, id)
		}
	}
	if len(predications) > 0 {
		vp.Head = predications[0]
	}
	if coordinator := predicationCoordinator(subject.slot, slots); coordinator != "" && len(predications) > 1 {
		if id := e.EmitIn(ctx, proposition.Connective, connective(coordinator, predications)...); id > 0 {
			vp.Head = id
		}
	}
	head := proposition.Ref(vp.Head)

	if shape == shapeAction || shape == shapeCopulaVerb {
		for _, c := range tree.ChildrenWithLabel(index,
			relation.LabelAdvmod, relation.LabelNpadvmod, relation.LabelPrep, relation.LabelNmod) {
			res := e.AnalyzeChild(tree, c, index, path, child)
			emitModifiers(e, ctx, proposition.Modification, head, res)
		}
	}
	for _, c := range tree.ChildrenWithLabel(index, relation.LabelTmod) {
		res := e.AnalyzeChild(tree, c, index, path, child)
		emitModifiers(e, ctx, proposition.Modification, head, res)
	}
	for _, c := range tree.ChildrenWithLabel(index, relation.LabelWhat) {
		res := e.AnalyzeChild(tree, c, index, path, child)
		emitModifiers(e, ctx, proposition.What, head, res)
	}
	for _, c := range tree.ChildrenWithLabel(index, relation.LabelAdvcl) {
		res := e.AnalyzeChild(tree, c, index, path, child.WithSubject(vp.Subject))
		sub, ok := res.(engine.VerbPhrase)
		if !ok || sub.Head == 0 || sub.Marker == "" || vp.Head == 0 {
			continue
		}
		e.EmitIn(ctx, proposition.Connective, proposition.Text(sub.Marker), head, proposition.Ref(sub.Head))
	}

	if len(conjuncts) > 0 {
		vp.Head = coordinateClauses(tree, index, path, e, ctx, vp, subject.coordinator, auxs, conjuncts)
	} else if shape == shapeAction || shape == shapeCopulaVerb {
		// sentence-initial "And" or "But" coordinates with nothing here
		wordsOf(e, tree, tree.ChildrenWithLabel(index, relation.LabelCc, relation.LabelPreconj), index, path, child)
	}

	for _, c := range tree.ChildrenWithLabel(index, relation.LabelParataxis) {
		e.AnalyzeChild(tree, c, index, path, child)
	}

	vp.IDs = idsSince(e, mark)
	return vp
}

// coordinateClauses analyses coordinated clauses and joins them to the head
// clause with one connective. Conjuncts without a subject of their own share
// the head's, coordinator included. It returns the id standing for the whole
// coordination.
func coordinateClauses(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context, vp engine.VerbPhrase, subjectCoordinator string, auxs []string, conjuncts []int) int {
	child := ctx.Child()
	coordinator := joinWords(
		joinWords(wordsOf(e, tree, tree.ChildrenWithLabel(index, relation.LabelPreconj), index, path, child)...),
		joinWords(wordsOf(e, tree, tree.ChildrenWithLabel(index, relation.LabelCc), index, path, child)...),
	)

	var heads []int
	if vp.Head > 0 {
		heads = append(heads, vp.Head)
	}
	for _, c := range conjuncts {
		conjCtx := child.WithClass(engine.ClassVP).WithCoordinatedSubject(vp.Subject, subjectCoordinator).WithAuxs(auxs)
		if sub, ok := e.AnalyzeChild(tree, c, index, path, conjCtx).(engine.VerbPhrase); ok && sub.Head > 0 {
			heads = append(heads, sub.Head)
		}
	}
	if coordinator == "" || len(heads) < 2 {
		return vp.Head
	}
	if id := e.EmitIn(ctx, proposition.Connective, connective(coordinator, heads)...); id > 0 {
		return id
	}
	return vp.Head
}

func clausalConjunct(tree *relation.Tree, c int, cfg *locale.Config) bool {
	if cfg.IsVerb(tree.At(c).Tag) {
		return true
	}
	return len(tree.ChildrenWithLabel(c, relation.LabelNsubj, relation.LabelNsubjpass, relation.LabelCop)) > 0
}

type subjectSlot struct {
	slot
	text []string
}

func (s subjectSlot) texts() []string {
	return s.text
}

// clauseSubject resolves the subject of a clause: its own nominal or clausal
// subject, the pending subject handed down by ctx, or the locale's
// placeholder.
func clauseSubject(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context) subjectSlot {
	child := ctx.Child()
	var s subjectSlot
	for _, c := range tree.ChildrenWithLabel(index, relation.LabelNsubj, relation.LabelNsubjpass, relation.LabelCsubj) {
		switch res := e.AnalyzeChild(tree, c, index, path, child).(type) {
		case engine.NounPhrase:
			s.items = append(s.items, proposition.Texts(res.Forms...)...)
			s.text = append(s.text, res.Forms...)
			if res.Coordinator != "" {
				s.coordinator = res.Coordinator
			}
		case engine.VerbPhrase:
			if res.Head > 0 {
				s.items = append(s.items, proposition.Ref(res.Head))
			}
		default:
			for _, f := range engine.FormsOf(res) {
				s.items = append(s.items, proposition.Text(f))
				s.text = append(s.text, f)
			}
		}
	}
	if len(s.items) > 0 {
		return s
	}
	if ctx.HasSubject() {
		s.items = proposition.Texts(ctx.Subject...)
		s.text = append([]string(nil), ctx.Subject...)
		s.coordinator = ctx.SubjectCoordinator
		return s
	}
	placeholder := e.Config().Word(locale.KeyPlaceholderSubject)
	s.items = []proposition.Item{proposition.Text(placeholder)}
	s.text = []string{placeholder}
	return s
}

// verbComplements collects the argument slots of a verbal head: objects,
// predicative complements and complement clauses, in surface order.
func verbComplements(tree *relation.Tree, index int, path []int, e *engine.Engine, child engine.Context, subject []string) []slot {
	var slots []slot
	for _, c := range tree.Children(index) {
		var res engine.Result
		switch tree.At(c).Label() {
		case relation.LabelDobj, relation.LabelIobj, relation.LabelAttr, relation.LabelAcomp:
			res = e.AnalyzeChild(tree, c, index, path, child)
		case relation.LabelXcomp:
			res = e.AnalyzeChild(tree, c, index, path, child.WithSubject(subject))
		case relation.LabelCcomp:
			res = e.AnalyzeChild(tree, c, index, path, child)
		default:
			continue
		}
		if s, ok := slotOf(res); ok {
			slots = append(slots, s)
		}
	}
	return slots
}

func slotOf(res engine.Result) (slot, bool) {
	var s slot
	switch v := res.(type) {
	case engine.VerbPhrase:
		if v.Head > 0 {
			s.items = []proposition.Item{proposition.Ref(v.Head)}
		}
	case engine.NounPhrase:
		s.items = proposition.Texts(v.Forms...)
		s.coordinator = v.Coordinator
	case engine.Prepositional:
		s.items = proposition.Texts(engine.FormsOf(v)...)
		s.coordinator = v.Coordinator
	default:
		s.items = proposition.Texts(engine.FormsOf(v)...)
	}
	return s, len(s.items) > 0
}

// nominalPredicate realizes the predicate noun of a copular clause,
// prefixed by its adposition when there is one ("está em casa").
func nominalPredicate(tree *relation.Tree, index int, path []int, e *engine.Engine, ctx engine.Context, owned map[int]bool) slot {
	skip := make(map[int]bool, len(owned))
	for k := range owned {
		skip[k] = true
	}
	var prep []piece
	for _, c := range tree.ChildrenWithLabel(index, relation.LabelCase) {
		skip[c] = true
		prep = append(prep, piece{c, realizeCase(tree, c, index, path, e, ctx.Child())})
	}

	np := assembleNoun(tree, index, path, e, ctx, skip)
	prefix := realize(prep)
	s := slot{coordinator: np.Coordinator}
	for _, f := range np.Forms {
		s.items = append(s.items, proposition.Text(joinWords(prefix, f)))
	}
	return s
}

// combinations expands the subject and argument slots into one content list
// per predication.
func combinations(subject slot, slots []slot) [][]proposition.Item {
	out := make([][]proposition.Item, 0, len(subject.items))
	for _, s := range subject.items {
		out = append(out, []proposition.Item{s})
	}
	for _, sl := range slots {
		next := make([][]proposition.Item, 0, len(out)*len(sl.items))
		for _, prefix := range out {
			for _, item := range sl.items {
				combo := make([]proposition.Item, len(prefix), len(prefix)+1)
				copy(combo, prefix)
				next = append(next, append(combo, item))
			}
		}
		out = next
	}
	return out
}

func predicationCoordinator(subject slot, slots []slot) string {
	if subject.coordinator != "" && len(subject.items) > 1 {
		return subject.coordinator
	}
	for _, s := range slots {
		if s.coordinator != "" && len(s.items) > 1 {
			return s.coordinator
		}
	}
	return ""
}
