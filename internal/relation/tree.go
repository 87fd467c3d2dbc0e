package relation

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// TopTag is the part-of-speech tag of the synthetic root node.
const TopTag = "TOP"

// ErrInvalidTree is returned when a tree violates the head/deps invariants.
var ErrInvalidTree = errors.New("invalid relation tree")

// Relation is a single node of a dependency tree
type Relation struct {
	Address int
	Head    int
	HasHead bool // false only for the synthetic root
	Rel     string
	Tag     string
	Word    string
	Deps    []int

	// Processed is set by the engine once the node has been dispatched.
	Processed bool
}

// Label returns the parsed dependency label of the relation.
func (r *Relation) Label() Label {
	return ParseLabel(r.Rel)
}

// IsTop reports whether this is the synthetic root node.
func (r *Relation) IsTop() bool {
	return r.Address == 0 && r.Tag == TopTag
}

func (r *Relation) String() string {
	if r.IsTop() {
		return "0 TOP"
	}
	return fmt.Sprintf("%d %s(%d) %s/%s", r.Address, r.Rel, r.Head, r.Word, r.Tag)
}

// Row is the minimal description of a node used to build a Tree.
type Row struct {
	Address int
	Head    int
	Rel     string
	Tag     string
	Word    string
}

// Tree is an arena of relations indexed by address. Address 0 is always the
// synthetic TOP node.
type Tree struct {
	nodes []*Relation
}

// New builds a tree from rows. Addresses must be 1..n without gaps; a TOP
// node is created at address 0 when no row claims it.
func New(rows []Row) (*Tree, error) {
	sorted := make([]Row, 0, len(rows))
	for _, r := range rows {
		if r.Address == 0 {
			continue
		}
		sorted = append(sorted, r)
	}
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Address < sorted[j].Address })

	t := &Tree{nodes: make([]*Relation, len(sorted)+1)}
	t.nodes[0] = &Relation{Address: 0, Tag: TopTag}
	for i, r := range sorted {
		if r.Address != i+1 {
			return nil, fmt.Errorf("%w: expected address %d, got %d", ErrInvalidTree, i+1, r.Address)
		}
		if r.Head < 0 || r.Head > len(sorted) {
			return nil, fmt.Errorf("%w: node %d has head %d out of range", ErrInvalidTree, r.Address, r.Head)
		}
		t.nodes[r.Address] = &Relation{
			Address: r.Address,
			Head:    r.Head,
			HasHead: true,
			Rel:     r.Rel,
			Tag:     r.Tag,
			Word:    r.Word,
		}
	}
	t.Relink()
	return t, nil
}

// MustNew is like New but panics on error. Intended for tests and fixtures.
func MustNew(rows []Row) *Tree {
	t, err := New(rows)
	if err != nil {
		panic(err)
	}
	return t
}

// Len returns the number of nodes including TOP.
func (t *Tree) Len() int {
	return len(t.nodes)
}

// At returns the relation at the given address, or nil when out of range.
func (t *Tree) At(address int) *Relation {
	if address < 0 || address >= len(t.nodes) {
		return nil
	}
	return t.nodes[address]
}

// Root returns the address of the sentence's syntactic root (the first child
// of TOP), or -1 for an empty tree.
func (t *Tree) Root() int {
	if len(t.nodes[0].Deps) == 0 {
		return -1
	}
	return t.nodes[0].Deps[0]
}

// Relations returns the nodes in address order. The slice is shared.
func (t *Tree) Relations() []*Relation {
	return t.nodes
}

// Words returns the surface words of all non-TOP nodes in address order.
func (t *Tree) Words() []string {
	words := make([]string, 0, len(t.nodes)-1)
	for _, n := range t.nodes[1:] {
		words = append(words, n.Word)
	}
	return words
}

// Clone returns a deep copy of the tree.
func (t *Tree) Clone() *Tree {
	c := &Tree{nodes: make([]*Relation, len(t.nodes))}
	for i, n := range t.nodes {
		cp := *n
		cp.Deps = append([]int(nil), n.Deps...)
		c.nodes[i] = &cp
	}
	return c
}

// Rows returns the tree as build rows (TOP excluded).
func (t *Tree) Rows() []Row {
	rows := make([]Row, 0, len(t.nodes)-1)
	for _, n := range t.nodes[1:] {
		rows = append(rows, Row{Address: n.Address, Head: n.Head, Rel: n.Rel, Tag: n.Tag, Word: n.Word})
	}
	return rows
}

// Children returns the dependents of index in tree order.
func (t *Tree) Children(index int) []int {
	n := t.At(index)
	if n == nil {
		return nil
	}
	return append([]int(nil), n.Deps...)
}

// ChildrenWithLabel returns the dependents of index whose relation parses to
// one of labels, in tree order.
func (t *Tree) ChildrenWithLabel(index int, labels ...Label) []int {
	n := t.At(index)
	if n == nil {
		return nil
	}
	var out []int
	for _, c := range n.Deps {
		l := t.nodes[c].Label()
		for _, want := range labels {
			if l == want {
				out = append(out, c)
				break
			}
		}
	}
	return out
}

// ChildrenWithRel returns the dependents of index whose literal relation
// equals rel ignoring case.
func (t *Tree) ChildrenWithRel(index int, rel string) []int {
	n := t.At(index)
	if n == nil {
		return nil
	}
	var out []int
	for _, c := range n.Deps {
		if SameLabel(t.nodes[c].Rel, rel) {
			out = append(out, c)
		}
	}
	return out
}

// Ancestors returns the addresses from TOP down to (excluding) index.
func (t *Tree) Ancestors(index int) []int {
	var path []int
	seen := make(map[int]bool)
	for n := t.At(index); n != nil && n.HasHead && !seen[n.Head]; n = t.At(n.Head) {
		seen[n.Head] = true
		path = append(path, n.Head)
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// SetHead re-attaches child under newHead and recomputes deps.
func (t *Tree) SetHead(child, newHead int) {
	n := t.At(child)
	if n == nil || child == 0 || t.At(newHead) == nil {
		return
	}
	n.Head = newHead
	n.HasHead = true
	t.Relink()
}

// Relink recomputes every node's deps from the head fields.
func (t *Tree) Relink() {
	for _, n := range t.nodes {
		n.Deps = n.Deps[:0]
	}
	for _, n := range t.nodes[1:] {
		if parent := t.At(n.Head); parent != nil && n.HasHead {
			parent.Deps = append(parent.Deps, n.Address)
		}
	}
}

// Delete removes the node at address. Its dependents are re-attached to its
// head and every following address shifts down by one. The arena is rebuilt
// and heads are remapped explicitly.
func (t *Tree) Delete(address int) {
	victim := t.At(address)
	if victim == nil || address == 0 {
		return
	}

	remap := make([]int, len(t.nodes))
	for i := range t.nodes {
		switch {
		case i < address:
			remap[i] = i
		case i > address:
			remap[i] = i - 1
		}
	}
	// Dependents of the victim move to its head.
	remap[address] = remap[victim.Head]

	nodes := make([]*Relation, 0, len(t.nodes)-1)
	for i, n := range t.nodes {
		if i == address {
			continue
		}
		n.Address = remap[i]
		if n.HasHead {
			n.Head = remap[n.Head]
		}
		nodes = append(nodes, n)
	}
	t.nodes = nodes
	t.Relink()
}

// ResetProcessed clears the processed flag of every node.
func (t *Tree) ResetProcessed() {
	for _, n := range t.nodes {
		n.Processed = false
	}
}

// Unprocessed returns the addresses reachable from TOP that were never
// dispatched.
func (t *Tree) Unprocessed() []int {
	var out []int
	var walk func(int)
	walk = func(i int) {
		n := t.nodes[i]
		if !n.Processed {
			out = append(out, i)
		}
		for _, c := range n.Deps {
			walk(c)
		}
	}
	if err := t.Validate(); err != nil {
		return nil
	}
	walk(0)
	return out
}

// Validate checks the tree invariants: deps match heads, node 0 has exactly
// one child, and every node reaches TOP without a cycle.
func (t *Tree) Validate() error {
	if len(t.nodes) == 0 || t.nodes[0].Address != 0 {
		return fmt.Errorf("%w: missing TOP node", ErrInvalidTree)
	}
	for i, n := range t.nodes {
		if n.Address != i {
			return fmt.Errorf("%w: node at %d has address %d", ErrInvalidTree, i, n.Address)
		}
		for _, c := range n.Deps {
			child := t.At(c)
			if child == nil || !child.HasHead || child.Head != i {
				return fmt.Errorf("%w: node %d lists %d as dependent", ErrInvalidTree, i, c)
			}
		}
		if i == 0 {
			continue
		}
		parent := t.At(n.Head)
		if parent == nil || !n.HasHead {
			return fmt.Errorf("%w: node %d has dangling head %d", ErrInvalidTree, i, n.Head)
		}
		found := false
		for _, c := range parent.Deps {
			if c == i {
				found = true
				break
			}
		}
		if !found {
			return fmt.Errorf("%w: node %d missing from deps of %d", ErrInvalidTree, i, n.Head)
		}
	}
	if len(t.nodes) > 1 && len(t.nodes[0].Deps) != 1 {
		return fmt.Errorf("%w: TOP has %d children", ErrInvalidTree, len(t.nodes[0].Deps))
	}
	for i := range t.nodes[1:] {
		seen := map[int]bool{}
		for cur := i + 1; cur != 0; cur = t.nodes[cur].Head {
			if seen[cur] {
				return fmt.Errorf("%w: cycle through node %d", ErrInvalidTree, cur)
			}
			seen[cur] = true
		}
	}
	return nil
}

// Format renders the tree one node per line, for debugging and the tree
// command's print mode.
func (t *Tree) Format() string {
	var b strings.Builder
	var walk func(int, string, bool)
	walk = func(i int, prefix string, last bool) {
		n := t.nodes[i]
		connector := "├─"
		if last {
			connector = "└─"
		}
		if i == 0 {
			b.WriteString("TOP\n")
		} else {
			fmt.Fprintf(&b, "%s%s %s %s/%s (%d)\n", prefix, connector, n.Rel, n.Word, n.Tag, n.Address)
		}
		childPrefix := prefix
		if i != 0 {
			if last {
				childPrefix += "  "
			} else {
				childPrefix += "│ "
			}
		}
		for j, c := range n.Deps {
			walk(c, childPrefix, j == len(n.Deps)-1)
		}
	}
	walk(0, "", true)
	return b.String()
}
