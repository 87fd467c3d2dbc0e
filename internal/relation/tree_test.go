package relation

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func johnRuns() *Tree {
	return MustNew([]Row{
		{Address: 1, Head: 2, Rel: "nsubj", Tag: "NNP", Word: "John"},
		{Address: 2, Head: 0, Rel: "root", Tag: "VBZ", Word: "runs"},
		{Address: 3, Head: 2, Rel: "punct", Tag: ".", Word: "."},
	})
}

func TestNew(t *testing.T) {
	tree := johnRuns()

	if got := tree.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
	if got := tree.Root(); got != 2 {
		t.Errorf("Root() = %d, want 2", got)
	}
	if !tree.At(0).IsTop() {
		t.Errorf("At(0) should be TOP")
	}
	if got := tree.Children(2); !cmp.Equal(got, []int{1, 3}) {
		t.Errorf("Children(2) = %v, want [1 3]", got)
	}
	if err := tree.Validate(); err != nil {
		t.Errorf("Validate() error = %v", err)
	}
}

func TestNew_Invalid(t *testing.T) {
	tests := []struct {
		name string
		rows []Row
	}{
		{"gap", []Row{{Address: 1, Head: 0, Rel: "root"}, {Address: 3, Head: 1, Rel: "dep"}}},
		{"head out of range", []Row{{Address: 1, Head: 5, Rel: "root"}}},
		{"negative head", []Row{{Address: 1, Head: -1, Rel: "root"}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.rows)
			if !errors.Is(err, ErrInvalidTree) {
				t.Errorf("New() error = %v, want ErrInvalidTree", err)
			}
		})
	}
}

func TestValidate_Cycle(t *testing.T) {
	tree := MustNew([]Row{
		{Address: 1, Head: 0, Rel: "root", Word: "a"},
		{Address: 2, Head: 3, Rel: "dep", Word: "b"},
		{Address: 3, Head: 2, Rel: "dep", Word: "c"},
	})
	if err := tree.Validate(); !errors.Is(err, ErrInvalidTree) {
		t.Errorf("Validate() error = %v, want ErrInvalidTree", err)
	}
}

func TestChildrenWithLabel_Aliases(t *testing.T) {
	tree := MustNew([]Row{
		{Address: 1, Head: 2, Rel: "nsubj", Word: "She"},
		{Address: 2, Head: 0, Rel: "root", Word: "reads"},
		{Address: 3, Head: 2, Rel: "obj", Word: "books"},
		{Address: 4, Head: 2, Rel: "DOBJ", Word: "papers"},
	})

	if got := tree.ChildrenWithLabel(2, LabelDobj); !cmp.Equal(got, []int{3, 4}) {
		t.Errorf("ChildrenWithLabel(dobj) = %v, want [3 4]", got)
	}
	if got := tree.ChildrenWithRel(2, "dobj"); !cmp.Equal(got, []int{4}) {
		t.Errorf("ChildrenWithRel(dobj) = %v, want [4]", got)
	}
}

func TestParseLabel(t *testing.T) {
	tests := []struct {
		rel  string
		want Label
	}{
		{"root", LabelRoot},
		{"NSUBJ", LabelNsubj},
		{"obj", LabelDobj},
		{"acl:relcl", LabelRcmod},
		{"obl", LabelNmod},
		{"obl:tmod", LabelTmod},
		{"nummod", LabelNum},
		{"fixed", LabelFixed},
		{"MWE", LabelFixed},
		{"flat:name", LabelCompoundName},
		{"nsubj:outer", LabelNsubj},
		{"advcl:relcl", LabelAdvcl},
		{"dep", LabelUnknown},
		{"", LabelUnknown},
	}
	for _, tt := range tests {
		if got := ParseLabel(tt.rel); got != tt.want {
			t.Errorf("ParseLabel(%q) = %v, want %v", tt.rel, got, tt.want)
		}
	}
}

func TestDelete(t *testing.T) {
	tree := MustNew([]Row{
		{Address: 1, Head: 0, Rel: "root", Tag: "VBZ", Word: "runs"},
		{Address: 2, Head: 1, Rel: "punct", Tag: ",", Word: ","},
		{Address: 3, Head: 2, Rel: "advmod", Tag: "RB", Word: "fast"},
	})

	tree.Delete(2)

	want := []Row{
		{Address: 1, Head: 0, Rel: "root", Tag: "VBZ", Word: "runs"},
		{Address: 2, Head: 1, Rel: "advmod", Tag: "RB", Word: "fast"},
	}
	if diff := cmp.Diff(want, tree.Rows()); diff != "" {
		t.Errorf("Delete() rows mismatch (-want +got):\n%s", diff)
	}
	if err := tree.Validate(); err != nil {
		t.Errorf("Validate() after Delete error = %v", err)
	}

	// TOP and out-of-range addresses are ignored
	tree.Delete(0)
	tree.Delete(9)
	if got := tree.Len(); got != 3 {
		t.Errorf("Len() = %d, want 3", got)
	}
}

func TestClone(t *testing.T) {
	tree := johnRuns()
	clone := tree.Clone()
	clone.Delete(3)
	clone.At(1).Word = "Mary"

	if got := tree.Len(); got != 4 {
		t.Errorf("original Len() = %d, want 4", got)
	}
	if got := tree.At(1).Word; got != "John" {
		t.Errorf("original word = %q, want John", got)
	}
	if got := tree.Children(2); !cmp.Equal(got, []int{1, 3}) {
		t.Errorf("original Children(2) = %v, want [1 3]", got)
	}
}

func TestAncestors(t *testing.T) {
	tree := MustNew([]Row{
		{Address: 1, Head: 2, Rel: "det", Word: "The"},
		{Address: 2, Head: 3, Rel: "nsubj", Word: "cat"},
		{Address: 3, Head: 0, Rel: "root", Word: "sleeps"},
	})
	if got := tree.Ancestors(1); !cmp.Equal(got, []int{0, 3, 2}) {
		t.Errorf("Ancestors(1) = %v, want [0 3 2]", got)
	}
}

func TestUnprocessed(t *testing.T) {
	tree := johnRuns()
	tree.At(0).Processed = true
	tree.At(2).Processed = true

	if got := tree.Unprocessed(); !cmp.Equal(got, []int{1, 3}) {
		t.Errorf("Unprocessed() = %v, want [1 3]", got)
	}
	tree.ResetProcessed()
	if got := tree.Unprocessed(); len(got) != 4 {
		t.Errorf("Unprocessed() after reset = %v, want all nodes", got)
	}
}

func TestFormat(t *testing.T) {
	tree := MustNew([]Row{
		{Address: 1, Head: 2, Rel: "nsubj", Tag: "NNP", Word: "John"},
		{Address: 2, Head: 0, Rel: "root", Tag: "VBZ", Word: "runs"},
	})
	want := "TOP\n└─ root runs/VBZ (2)\n  └─ nsubj John/NNP (1)\n"
	if got := tree.Format(); got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}
