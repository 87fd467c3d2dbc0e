package relation

import "strings"

// Label is the closed set of dependency relations the engine knows how to
// interpret. Unsupported relations parse to LabelUnknown.
type Label int

const (
	LabelUnknown Label = iota
	LabelRoot

	// Atomic
	LabelAux
	LabelAuxpass
	LabelCop
	LabelCc
	LabelMark
	LabelCase
	LabelPrt
	LabelPossessive
	LabelExpl
	LabelPreconj
	LabelPunct
	LabelNumber
	LabelFixed

	// Atomic, emitting
	LabelNeg
	LabelDiscourse

	// Determiners and quantifiers
	LabelDet
	LabelPredet
	LabelQuantmod
	LabelNum

	// Adjectival and adverbial phrases
	LabelAmod
	LabelAcomp
	LabelAdvmod
	LabelNpadvmod

	// Noun phrases
	LabelNsubj
	LabelNsubjpass
	LabelDobj
	LabelIobj
	LabelPobj
	LabelPoss
	LabelAppos
	LabelAttr
	LabelTmod
	LabelNn
	LabelCompoundName
	LabelNmod
	LabelWhat

	// Prepositions
	LabelPrep

	// Verb phrases
	LabelCcomp
	LabelXcomp
	LabelAdvcl
	LabelRcmod
	LabelParataxis
	LabelCsubj
	LabelPartmod
	LabelPcomp

	// Coordination
	LabelConj
)

var labelNames = map[Label]string{
	LabelUnknown:      "unknown",
	LabelRoot:         "root",
	LabelAux:          "aux",
	LabelAuxpass:      "auxpass",
	LabelCop:          "cop",
	LabelCc:           "cc",
	LabelMark:         "mark",
	LabelCase:         "case",
	LabelPrt:          "prt",
	LabelPossessive:   "possessive",
	LabelExpl:         "expl",
	LabelPreconj:      "preconj",
	LabelPunct:        "punct",
	LabelNumber:       "number",
	LabelFixed:        "fixed",
	LabelNeg:          "neg",
	LabelDiscourse:    "discourse",
	LabelDet:          "det",
	LabelPredet:       "predet",
	LabelQuantmod:     "quantmod",
	LabelNum:          "num",
	LabelAmod:         "amod",
	LabelAcomp:        "acomp",
	LabelAdvmod:       "advmod",
	LabelNpadvmod:     "npadvmod",
	LabelNsubj:        "nsubj",
	LabelNsubjpass:    "nsubjpass",
	LabelDobj:         "dobj",
	LabelIobj:         "iobj",
	LabelPobj:         "pobj",
	LabelPoss:         "poss",
	LabelAppos:        "appos",
	LabelAttr:         "attr",
	LabelTmod:         "tmod",
	LabelNn:           "nn",
	LabelCompoundName: "compound_name",
	LabelNmod:         "nmod",
	LabelWhat:         "what",
	LabelPrep:         "prep",
	LabelCcomp:        "ccomp",
	LabelXcomp:        "xcomp",
	LabelAdvcl:        "advcl",
	LabelRcmod:        "rcmod",
	LabelParataxis:    "parataxis",
	LabelCsubj:        "csubj",
	LabelPartmod:      "partmod",
	LabelPcomp:        "pcomp",
	LabelConj:         "conj",
}

func (l Label) String() string {
	if name, ok := labelNames[l]; ok {
		return name
	}
	return "unknown"
}

// aliases maps Universal Dependencies spellings and subtypes onto the
// Stanford-style labels the rulesets are written against.
var aliases = map[string]Label{
	"obj":           LabelDobj,
	"mwe":           LabelFixed,
	"acl:relcl":     LabelRcmod,
	"relcl":         LabelRcmod,
	"nmod:tmod":     LabelTmod,
	"obl:tmod":      LabelTmod,
	"nmod:poss":     LabelPoss,
	"compound:prt":  LabelPrt,
	"compound":      LabelNn,
	"flat":          LabelCompoundName,
	"flat:name":     LabelCompoundName,
	"name":          LabelCompoundName,
	"obl":           LabelNmod,
	"nmod:npmod":    LabelNpadvmod,
	"obl:npmod":     LabelNpadvmod,
	"nummod":        LabelNum,
	"det:predet":    LabelPredet,
	"cc:preconj":    LabelPreconj,
	"aux:pass":      LabelAuxpass,
	"nsubj:pass":    LabelNsubjpass,
	"csubj:pass":    LabelCsubj,
	"csubjpass":     LabelCsubj,
	"vmod":          LabelPartmod,
	"infmod":        LabelPartmod,
	"acl":           LabelPartmod,
	"expl:pv":       LabelExpl,
	"expl:impers":   LabelExpl,
	"expl:pass":     LabelExpl,
	"advmod:emph":   LabelAdvmod,
	"amod:att":      LabelAmod,
	"nummod:gov":    LabelNum,
	"det:nummod":    LabelNum,
	"obl:agent":     LabelNmod,
	"obl:arg":       LabelNmod,
	"compoundname":  LabelCompoundName,
	"compound-name": LabelCompoundName,
}

var byName = func() map[string]Label {
	m := make(map[string]Label, len(labelNames)+len(aliases))
	for l, name := range labelNames {
		if l == LabelUnknown {
			continue
		}
		m[name] = l
	}
	for name, l := range aliases {
		m[name] = l
	}
	return m
}()

// ParseLabel converts a dependency relation string to a Label. Matching is
// case-insensitive; an unknown subtype falls back to its base relation.
func ParseLabel(rel string) Label {
	rel = strings.ToLower(strings.TrimSpace(rel))
	if l, ok := byName[rel]; ok {
		return l
	}
	if base, _, found := strings.Cut(rel, ":"); found {
		if l, ok := byName[base]; ok {
			return l
		}
	}
	return LabelUnknown
}

// SameLabel reports whether two relation strings are equal ignoring case.
func SameLabel(a, b string) bool {
	return strings.EqualFold(a, b)
}
