package proposition

import (
	"encoding/json"
	"testing"
)

func TestStore_Emit(t *testing.T) {
	s := NewStore()

	if id := s.Emit(Texts("runs", "John"), Predication); id != 1 {
		t.Errorf("first Emit() = %d, want 1", id)
	}
	content := []Item{Text("and"), Ref(1)}
	if id := s.Emit(content, Connective); id != 2 {
		t.Errorf("second Emit() = %d, want 2", id)
	}

	// the store keeps its own copy of the content
	content[0] = Text("or")
	p, ok := s.Get(2)
	if !ok {
		t.Fatalf("Get(2) not found")
	}
	if got := p.Kind.String() + p.String(); got != "C(and, 1)" {
		t.Errorf("Get(2) = %s, want C(and, 1)", got)
	}

	if _, ok := s.Get(0); ok {
		t.Errorf("Get(0) should not be found")
	}
	if _, ok := s.Get(3); ok {
		t.Errorf("Get(3) should not be found")
	}

	s.Reset()
	if s.Len() != 0 {
		t.Errorf("Len() after Reset = %d, want 0", s.Len())
	}
	if id := s.Emit(Texts("x"), Modification); id != 1 {
		t.Errorf("Emit() after Reset = %d, want 1", id)
	}
}

func TestStore_AllIsCopy(t *testing.T) {
	s := NewStore()
	s.Emit(Texts("a"), Modification)

	all := s.All()
	all[0].ID = 42
	if p, _ := s.Get(1); p.ID != 1 {
		t.Errorf("All() must return a copy, store changed to %d", p.ID)
	}
}

func TestCountByKind(t *testing.T) {
	props := []Proposition{
		{Kind: Predication}, {Kind: Predication}, {Kind: Modification}, {Kind: What},
	}
	got := CountByKind(props)
	if got[Predication] != 2 || got[Modification] != 1 || got[What] != 1 || got[Connective] != 0 {
		t.Errorf("CountByKind() = %v", got)
	}
}

func TestParseKind(t *testing.T) {
	for _, k := range Kinds() {
		got, err := ParseKind(k.String())
		if err != nil || got != k {
			t.Errorf("ParseKind(%q) = %v, %v; want %v", k.String(), got, err, k)
		}
	}
	if got, err := ParseKind("appos"); err != nil || got != Apposition {
		t.Errorf("ParseKind(appos) = %v, %v", got, err)
	}
	if _, err := ParseKind("X"); err == nil {
		t.Errorf("ParseKind(X) should fail")
	}
}

func TestProposition_JSON(t *testing.T) {
	p := Proposition{
		ID:      3,
		Kind:    Connective,
		Content: []Item{Text(`say "hi"`), Ref(1), Ref(2)},
	}
	data, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	want := `{"id":3,"content":["say \"hi\"",1,2],"kind":"C"}`
	if string(data) != want {
		t.Errorf("Marshal() = %s, want %s", data, want)
	}

	var kind struct {
		Kind Kind `json:"kind"`
	}
	if err := json.Unmarshal([]byte(`{"kind":"WHAT"}`), &kind); err != nil || kind.Kind != What {
		t.Errorf("Unmarshal kind = %v, %v; want WHAT", kind.Kind, err)
	}
}

func TestItem(t *testing.T) {
	if Text("x").IsRef() {
		t.Errorf("Text item reported as ref")
	}
	r := Ref(4)
	if !r.IsRef() || r.RefID() != 4 || r.String() != "4" {
		t.Errorf("Ref(4) = %+v", r)
	}
	if Text("dog").Value() != "dog" {
		t.Errorf("Value() mismatch")
	}
}
