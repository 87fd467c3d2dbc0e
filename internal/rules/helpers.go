package rules

import (
	"sort"
	"strings"

	"github.com/pthm/ideadensity/internal/engine"
	"github.com/pthm/ideadensity/internal/proposition"
	"github.com/pthm/ideadensity/internal/relation"
)

// piece is a word positioned in the sentence, used to realize phrases in
// surface order.
type piece struct {
	address int
	text    string
}

func realize(pieces []piece) string {
	sort.SliceStable(pieces, func(i, j int) bool { return pieces[i].address < pieces[j].address })
	var b strings.Builder
	for _, p := range pieces {
		if p.text == "" {
			continue
		}
		if b.Len() > 0 && !strings.HasPrefix(p.text, "'") {
			b.WriteByte(' ')
		}
		b.WriteString(p.text)
	}
	return b.String()
}

func joinWords(words ...string) string {
	var out []string
	for _, w := range words {
		if w != "" {
			out = append(out, w)
		}
	}
	return strings.Join(out, " ")
}

// ancestorWord returns the word of the nearest ancestor on the context path,
// falling back to the node's head.
func ancestorWord(tree *relation.Tree, index int, path []int) string {
	for i := len(path) - 1; i >= 0; i-- {
		if n := tree.At(path[i]); n != nil && !n.IsTop() {
			return n.Word
		}
	}
	if n := tree.At(index); n != nil {
		if h := tree.At(n.Head); h != nil && !h.IsTop() {
			return h.Word
		}
	}
	return ""
}

// wordsOf analyses each child and concatenates the atomic words returned.
func wordsOf(e *engine.Engine, tree *relation.Tree, children []int, parent int, path []int, ctx engine.Context) []string {
	var words []string
	for _, c := range children {
		if w := engine.WordOf(e.AnalyzeChild(tree, c, parent, path, ctx)); w != "" {
			words = append(words, w)
		}
	}
	return words
}

// emitModifiers emits one modification per realized form of res, attached
// to head. A coordinated modifier additionally gets a connective over the
// ids it produced. The ids emitted are returned.
func emitModifiers(e *engine.Engine, ctx engine.Context, kind proposition.Kind, head proposition.Item, res engine.Result) []int {
	var ids []int
	add := func(id int) {
		if id > 0 {
			ids = append(ids, id)
		}
	}

	coordinator := ""
	switch v := res.(type) {
	case nil:
		return nil
	case engine.Word:
		if v != "" {
			add(e.EmitIn(ctx, kind, head, proposition.Text(string(v))))
		}
	case engine.Words:
		for _, w := range v {
			add(e.EmitIn(ctx, kind, head, proposition.Text(w)))
		}
	case engine.NounPhrase:
		for _, f := range v.Forms {
			add(e.EmitIn(ctx, kind, head, proposition.Text(f)))
		}
		coordinator = v.Coordinator
	case engine.Prepositional:
		items := []proposition.Item{head}
		if v.Prep != "" {
			items = append(items, proposition.Text(v.Prep))
		}
		if v.Ref > 0 {
			add(e.EmitIn(ctx, kind, append(items[:len(items):len(items)], proposition.Ref(v.Ref))...))
		}
		for _, o := range v.Objects {
			add(e.EmitIn(ctx, kind, append(items[:len(items):len(items)], proposition.Text(o))...))
		}
		coordinator = v.Coordinator
	case engine.VerbPhrase:
		if v.Head > 0 {
			items := []proposition.Item{head}
			if v.Marker != "" {
				items = append(items, proposition.Text(v.Marker))
			}
			add(e.EmitIn(ctx, kind, append(items, proposition.Ref(v.Head))...))
		}
	}

	if coordinator != "" && len(ids) > 1 {
		add(e.EmitIn(ctx, proposition.Connective, connective(coordinator, ids)...))
	}
	return ids
}

// connective builds the content of a C proposition: the coordinator followed
// by references to ids.
func connective(word string, ids []int) []proposition.Item {
	items := make([]proposition.Item, 0, len(ids)+1)
	items = append(items, proposition.Text(word))
	for _, id := range ids {
		items = append(items, proposition.Ref(id))
	}
	return items
}

func idsSince(e *engine.Engine, mark int) []int {
	var ids []int
	for id := mark + 1; id <= e.Count(); id++ {
		ids = append(ids, id)
	}
	return ids
}

func without(children []int, skip map[int]bool) []int {
	if len(skip) == 0 {
		return children
	}
	out := children[:0:0]
	for _, c := range children {
		if !skip[c] {
			out = append(out, c)
		}
	}
	return out
}
