package proposition

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind classifies a proposition
type Kind int

const (
	// Predication: (verb, subject[, complement])
	Predication Kind = iota
	// Modification: (head, modifier[, ...])
	Modification
	// Connective: (coordinator or marker, ids...)
	Connective
	// Apposition: (noun, appositive)
	Apposition
	// What: WH-focus of a clause
	What
)

func (k Kind) String() string {
	switch k {
	case Predication:
		return "P"
	case Modification:
		return "M"
	case Connective:
		return "C"
	case Apposition:
		return "APPOS"
	case What:
		return "WHAT"
	default:
		return "unknown"
	}
}

// MarshalText renders the kind by its short name
func (k Kind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// UnmarshalText parses a short kind name
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// ParseKind converts a string to a Kind
func ParseKind(s string) (Kind, error) {
	switch strings.ToUpper(s) {
	case "P":
		return Predication, nil
	case "M":
		return Modification, nil
	case "C":
		return Connective, nil
	case "APPOS":
		return Apposition, nil
	case "WHAT":
		return What, nil
	default:
		return 0, fmt.Errorf("unknown proposition kind: %q", s)
	}
}

// Kinds lists every kind in declaration order.
func Kinds() []Kind {
	return []Kind{Predication, Modification, Connective, Apposition, What}
}

// Item is one element of a proposition's content: surface text, or a
// back-reference to another proposition of the same sentence.
type Item struct {
	text string
	ref  int
}

// Text returns a surface-string item.
func Text(s string) Item {
	return Item{text: s}
}

// Ref returns a back-reference item to proposition id.
func Ref(id int) Item {
	return Item{ref: id}
}

// Texts converts strings to items.
func Texts(ss ...string) []Item {
	items := make([]Item, len(ss))
	for i, s := range ss {
		items[i] = Text(s)
	}
	return items
}

// IsRef reports whether the item references another proposition.
func (i Item) IsRef() bool {
	return i.ref > 0
}

// RefID returns the referenced proposition id, or 0 for text items.
func (i Item) RefID() int {
	return i.ref
}

// Value returns the surface text of a text item.
func (i Item) Value() string {
	return i.text
}

func (i Item) String() string {
	if i.IsRef() {
		return strconv.Itoa(i.ref)
	}
	return i.text
}

// MarshalJSON renders text items as strings and references as numbers.
func (i Item) MarshalJSON() ([]byte, error) {
	if i.IsRef() {
		return []byte(strconv.Itoa(i.ref)), nil
	}
	return json.Marshal(i.text)
}

// Proposition is an immutable semantic unit extracted from a sentence
type Proposition struct {
	ID      int    `json:"id"`
	Content []Item `json:"content"`
	Kind    Kind   `json:"kind"`
}

func (p Proposition) String() string {
	parts := make([]string, len(p.Content))
	for i, item := range p.Content {
		parts[i] = item.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}
