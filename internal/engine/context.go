package engine

// PhraseClass forces the phrase family a shared handler dispatches into.
type PhraseClass int

const (
	ClassNone PhraseClass = iota
	ClassNP
	ClassVP
)

func (c PhraseClass) String() string {
	switch c {
	case ClassNP:
		return "NP"
	case ClassVP:
		return "VP"
	default:
		return ""
	}
}

// Context carries top-down hints along one call path. It is passed by value;
// the With helpers return amended copies and never share slices with the
// receiver.
type Context struct {
	// Subject is the pending subject of a reduced or non-finite clause.
	Subject []string

	// SubjectCoordinator joins the pending subject forms when they came from
	// a coordination ("John and Mary").
	SubjectCoordinator string

	// Antecedent is the noun phrase a relative clause attaches to; relative
	// pronouns inside the clause resolve to it.
	Antecedent []string

	// Suppress turns emission into a no-op for the subtree.
	Suppress bool

	// Num is the numeral being assembled, for quantifier attachment.
	Num string

	// Auxs are auxiliaries inherited by a coordinated verb phrase.
	Auxs []string

	// Class overrides the phrase family of a conjunct.
	Class PhraseClass
}

// HasSubject reports whether a pending subject is set
func (c Context) HasSubject() bool {
	return len(c.Subject) > 0
}

// WithSubject returns a copy carrying forms as the pending subject
func (c Context) WithSubject(forms []string) Context {
	c.Subject = copyStrings(forms)
	c.SubjectCoordinator = ""
	return c
}

// WithCoordinatedSubject returns a copy carrying forms joined by coordinator
// as the pending subject
func (c Context) WithCoordinatedSubject(forms []string, coordinator string) Context {
	c.Subject = copyStrings(forms)
	c.SubjectCoordinator = coordinator
	return c
}

// WithAntecedent returns a copy carrying forms as relative-clause antecedent
func (c Context) WithAntecedent(forms []string) Context {
	c.Antecedent = copyStrings(forms)
	return c
}

// WithSuppress returns a copy with emission suppressed
func (c Context) WithSuppress() Context {
	c.Suppress = true
	return c
}

// WithNum returns a copy carrying an in-progress numeral
func (c Context) WithNum(num string) Context {
	c.Num = num
	return c
}

// WithAuxs returns a copy carrying inherited auxiliaries
func (c Context) WithAuxs(auxs []string) Context {
	c.Auxs = copyStrings(auxs)
	return c
}

// WithClass returns a copy with a phrase-class override
func (c Context) WithClass(class PhraseClass) Context {
	c.Class = class
	return c
}

// Child returns the context a phrase hands to its own dependents: only
// suppression and the relative antecedent survive.
func (c Context) Child() Context {
	return Context{
		Antecedent: copyStrings(c.Antecedent),
		Suppress:   c.Suppress,
	}
}

func copyStrings(ss []string) []string {
	if ss == nil {
		return nil
	}
	return append([]string(nil), ss...)
}
