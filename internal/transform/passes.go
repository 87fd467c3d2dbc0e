package transform

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/pthm/ideadensity/internal/locale"
	"github.com/pthm/ideadensity/internal/relation"
)

// RemovePunctuation deletes punctuation nodes, re-attaching any dependents
// to the punctuation's head. A punctuation node directly under TOP is kept
// so the tree keeps a single root.
type RemovePunctuation struct {
	Config *locale.Config
}

func (t *RemovePunctuation) Name() string {
	return "remove-punctuation"
}

func (t *RemovePunctuation) Transform(tree *relation.Tree) {
	// Walk backwards so deletions only shift addresses already visited.
	for i := tree.Len() - 1; i >= 1; i-- {
		n := tree.At(i)
		if n.Head == 0 {
			continue
		}
		if n.Label() == relation.LabelPunct || t.Config.IsPunctuation(n.Tag, n.Word) {
			tree.Delete(i)
		}
	}
}

// MergeIntensifier turns a repeated adjective ("big big dog") into an
// intensifying adverb of the adjective that follows it ("very big dog").
// The two nodes must be adjacent and agree on word, head and label.
type MergeIntensifier struct {
	Config *locale.Config
}

func (t *MergeIntensifier) Name() string {
	return "merge-intensifier"
}

func (t *MergeIntensifier) Transform(tree *relation.Tree) {
	intensifier := t.Config.Word(locale.KeyIntensifier)
	if intensifier == "" {
		return
	}
	changed := false
	for i := 1; i+1 < tree.Len(); i++ {
		a, b := tree.At(i), tree.At(i+1)
		if !t.Config.IsAdjective(a.Tag) || !t.Config.IsAdjective(b.Tag) {
			continue
		}
		if !strings.EqualFold(a.Word, b.Word) || a.Head != b.Head || !relation.SameLabel(a.Rel, b.Rel) {
			continue
		}
		a.Word = intensifier
		a.Rel = "advmod"
		a.Tag = "ADV"
		a.Head = b.Address
		changed = true
	}
	if changed {
		tree.Relink()
	}
}

// FixReflexive attaches a reflexive or emphatic pronoun that directly
// follows a noun to that noun as an adjectival modifier.
type FixReflexive struct {
	Config *locale.Config
}

func (t *FixReflexive) Name() string {
	return "fix-reflexive"
}

func (t *FixReflexive) Transform(tree *relation.Tree) {
	changed := false
	for i := 2; i < tree.Len(); i++ {
		n, prev := tree.At(i), tree.At(i-1)
		if n.Head == 0 || !t.Config.Match(locale.KeyReflexivePronouns, n.Word) {
			continue
		}
		if !t.Config.IsNoun(prev.Tag) || n.Head == prev.Address {
			continue
		}
		if descendsFrom(tree, prev.Address, n.Address) {
			continue
		}
		n.Head = prev.Address
		n.Rel = "amod"
		changed = true
	}
	if changed {
		tree.Relink()
	}
}

// XcompToWhat reclassifies a nominal or adjectival open complement without a
// copula as a "what" focus. Its subject becomes the direct object of the
// governing verb: "they elected him president".
type XcompToWhat struct {
	Config *locale.Config
}

func (t *XcompToWhat) Name() string {
	return "xcomp-to-what"
}

func (t *XcompToWhat) Transform(tree *relation.Tree) {
	changed := false
	for i := 1; i < tree.Len(); i++ {
		n := tree.At(i)
		if n.Label() != relation.LabelXcomp {
			continue
		}
		if !t.Config.IsNoun(n.Tag) && !t.Config.IsAdjective(n.Tag) {
			continue
		}
		if len(tree.ChildrenWithLabel(i, relation.LabelCop)) > 0 {
			continue
		}
		for _, s := range tree.ChildrenWithLabel(i, relation.LabelNsubj) {
			subj := tree.At(s)
			subj.Head = n.Head
			subj.Rel = "dobj"
		}
		n.Rel = "what"
		changed = true
	}
	if changed {
		tree.Relink()
	}
}

// MarkCompoundNames relabels capitalised compound dependents of a
// capitalised noun as compound_name so the noun phrase joins them into one
// proper name.
type MarkCompoundNames struct {
	Config *locale.Config
}

func (t *MarkCompoundNames) Name() string {
	return "mark-compound-names"
}

func (t *MarkCompoundNames) Transform(tree *relation.Tree) {
	for i := 1; i < tree.Len(); i++ {
		n := tree.At(i)
		if !t.Config.IsNoun(n.Tag) || !capitalized(n.Word) {
			continue
		}
		for _, c := range tree.ChildrenWithLabel(i, relation.LabelNn, relation.LabelCompoundName) {
			child := tree.At(c)
			if capitalized(child.Word) && t.Config.IsNoun(child.Tag) {
				child.Rel = "compound_name"
			}
		}
	}
}

func capitalized(word string) bool {
	r, _ := utf8.DecodeRuneInString(word)
	return r != utf8.RuneError && unicode.IsUpper(r)
}

// descendsFrom reports whether node lies in the subtree rooted at ancestor.
func descendsFrom(tree *relation.Tree, node, ancestor int) bool {
	for _, a := range tree.Ancestors(node) {
		if a == ancestor {
			return true
		}
	}
	return false
}
