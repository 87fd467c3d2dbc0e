package proposition

// Store is the append-only, per-sentence list of emitted propositions.
// IDs start at 1 and follow insertion order.
type Store struct {
	props []Proposition
}

// NewStore creates an empty store
func NewStore() *Store {
	return &Store{}
}

// Emit appends a proposition and returns its 1-based id.
func (s *Store) Emit(content []Item, kind Kind) int {
	id := len(s.props) + 1
	s.props = append(s.props, Proposition{
		ID:      id,
		Content: append([]Item(nil), content...),
		Kind:    kind,
	})
	return id
}

// Reset discards every proposition; the next Emit returns 1.
func (s *Store) Reset() {
	s.props = s.props[:0]
}

// Len returns the number of propositions emitted so far.
func (s *Store) Len() int {
	return len(s.props)
}

// Get returns the proposition with the given id.
func (s *Store) Get(id int) (Proposition, bool) {
	if id < 1 || id > len(s.props) {
		return Proposition{}, false
	}
	return s.props[id-1], true
}

// All returns a copy of the propositions in id order.
func (s *Store) All() []Proposition {
	return append([]Proposition(nil), s.props...)
}

// CountByKind tallies propositions per kind.
func CountByKind(props []Proposition) map[Kind]int {
	counts := make(map[Kind]int)
	for _, p := range props {
		counts[p.Kind]++
	}
	return counts
}
