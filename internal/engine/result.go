package engine

// Result is the value a ruleset hands back to its caller. The concrete type
// depends on the phrase family; nil is the empty result.
type Result interface {
	isResult()
}

// Word is the surface word of an atomic relation.
type Word string

// Words are the realized forms of an adjectival or adverbial phrase.
type Words []string

// NounPhrase is the assembled form of a nominal dependent.
//
// Rulesets link propositions through the explicit ids they collect, so
// Excluded, RelativeClause and Subject are not read inside the rule
// families. They record which propositions the phrase produced for callers
// of Engine.Analyze on a single node, such as tools tracing a proposition
// back to the phrase that emitted it.
type NounPhrase struct {
	// Forms are the realized noun-phrase strings, one per conjunct.
	Forms []string

	// Excluded are ids emitted while assembling the phrase; they are kept out
	// of an enclosing connective.
	Excluded []int

	// RelativeClause are the ids emitted by relative clauses on the phrase.
	RelativeClause []int

	// Subject is carried for back-reference by a relative clause.
	Subject []string

	// Coordinator is the coordinating word when Forms came from a
	// coordination, including any preconjunct ("either or").
	Coordinator string
}

// VerbPhrase is the outcome of a clause.
type VerbPhrase struct {
	// IDs are every proposition the clause emitted, in order.
	IDs []int

	// Head is the id standing for the whole clause, or 0 when nothing was
	// emitted.
	Head int

	// Subject are the subject forms the clause used.
	Subject []string

	// Marker is the subordinating word of the clause, if any.
	Marker string
}

// Prepositional is a preposition with its object. Excluded has the same
// meaning as in NounPhrase.
type Prepositional struct {
	Prep        string
	Objects     []string
	Ref         int // clausal object id, when the object is a clause
	Coordinator string
	Excluded    []int
}

func (Word) isResult()          {}
func (Words) isResult()         {}
func (NounPhrase) isResult()    {}
func (VerbPhrase) isResult()    {}
func (Prepositional) isResult() {}

// FormsOf flattens any result into surface strings.
func FormsOf(r Result) []string {
	switch v := r.(type) {
	case Word:
		if v == "" {
			return nil
		}
		return []string{string(v)}
	case Words:
		return append([]string(nil), v...)
	case NounPhrase:
		return append([]string(nil), v.Forms...)
	case Prepositional:
		out := make([]string, 0, len(v.Objects))
		for _, o := range v.Objects {
			out = append(out, joinWords(v.Prep, o))
		}
		return out
	default:
		return nil
	}
}

// WordOf returns the single word of a Word result, or "".
func WordOf(r Result) string {
	if w, ok := r.(Word); ok {
		return string(w)
	}
	return ""
}

func joinWords(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
