package catalog

import (
	"os"
	"path/filepath"
	"testing"
)

func validPrimitive(id string) Primitive {
	return Primitive{
		ID:             id,
		Tags:           []Tag{TagLineShape},
		BaseDifficulty: 1.0,
		Learnability:   0.8,
		Novelty:        0.2,
	}
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name string
		prim Primitive
	}{
		{"empty id", Primitive{Tags: []Tag{TagLineShape}, Learnability: 0.5}},
		{"negative difficulty", Primitive{ID: "x", Tags: []Tag{TagLineShape}, BaseDifficulty: -1}},
		{"learnability over 1", Primitive{ID: "x", Tags: []Tag{TagLineShape}, Learnability: 1.5}},
		{"novelty under 0", Primitive{ID: "x", Tags: []Tag{TagLineShape}, Novelty: -0.1}},
		{"no tags", Primitive{ID: "x", Learnability: 0.5}},
		{"unknown tag", Primitive{ID: "x", Tags: []Tag{"volcano"}, Learnability: 0.5}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := New()
			if err := c.Register(tc.prim); err == nil {
				t.Fatalf("expected registration error")
			}
		})
	}
}

func TestRegisterDuplicate(t *testing.T) {
	c := New()
	if err := c.Register(validPrimitive("a")); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := c.Register(validPrimitive("a")); err == nil {
		t.Fatal("expected duplicate id error")
	}
}

func TestFreezeRejectsRegistration(t *testing.T) {
	c := New()
	c.Freeze()
	if err := c.Register(validPrimitive("a")); err == nil {
		t.Fatal("expected frozen catalog to reject registration")
	}
}

func TestIndices(t *testing.T) {
	c := New()
	a := validPrimitive("a")
	b := validPrimitive("b")
	b.Tags = []Tag{TagAreaClear, TagComboOpportunity}
	b.BaseDifficulty = 2.5
	for _, p := range []Primitive{a, b} {
		if err := c.Register(p); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	if got := len(c.ByTag(TagLineShape)); got != 1 {
		t.Fatalf("expected 1 line_shape primitive, got %d", got)
	}
	if got := len(c.ByTag(TagComboOpportunity)); got != 1 {
		t.Fatalf("expected 1 combo primitive, got %d", got)
	}
	if got := len(c.ByBand(BandModerate)); got != 1 {
		t.Fatalf("expected 1 moderate-band primitive, got %d", got)
	}
	if got := len(c.ByBand(BandEasy)); got != 1 {
		t.Fatalf("expected 1 easy-band primitive, got %d", got)
	}
}

func TestMostLearnable(t *testing.T) {
	c := New()
	if _, err := c.MostLearnable(); err == nil {
		t.Fatal("expected error on empty catalog")
	}

	a := validPrimitive("a")
	a.Learnability = 0.4
	b := validPrimitive("b")
	b.Learnability = 0.9
	for _, p := range []Primitive{a, b} {
		if err := c.Register(p); err != nil {
			t.Fatalf("Register: %v", err)
		}
	}

	best, err := c.MostLearnable()
	if err != nil {
		t.Fatalf("MostLearnable: %v", err)
	}
	if best.ID != "b" {
		t.Fatalf("expected b, got %s", best.ID)
	}
}

func TestBuiltinInvariants(t *testing.T) {
	c := Builtin()
	if c.Len() == 0 {
		t.Fatal("builtin catalog is empty")
	}

	hasHighLearnability := false
	for _, p := range c.All() {
		if p.BaseDifficulty < 0 {
			t.Fatalf("%s: negative difficulty", p.ID)
		}
		if p.Learnability < 0 || p.Learnability > 1 {
			t.Fatalf("%s: learnability %.2f outside [0,1]", p.ID, p.Learnability)
		}
		if p.Novelty < 0 || p.Novelty > 1 {
			t.Fatalf("%s: novelty %.2f outside [0,1]", p.ID, p.Novelty)
		}
		if p.Learnability >= 0.7 {
			hasHighLearnability = true
		}
		// Prerequisites must reference registered primitives.
		for _, req := range p.Spawn.RequiredPrimitives {
			if _, ok := c.Get(req); !ok {
				t.Fatalf("%s: prerequisite %q not in catalog", p.ID, req)
			}
		}
	}
	if !hasHighLearnability {
		t.Fatal("builtin catalog needs at least one primitive with learnability >= 0.7")
	}
}

func TestPackRoundTrip(t *testing.T) {
	orig := Builtin()
	data, err := orig.MarshalPack()
	if err != nil {
		t.Fatalf("MarshalPack: %v", err)
	}

	path := filepath.Join(t.TempDir(), "pack.yaml")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	loaded := New()
	if err := loaded.LoadFile(path); err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if loaded.Len() != orig.Len() {
		t.Fatalf("expected %d primitives, got %d", orig.Len(), loaded.Len())
	}
	for _, want := range orig.All() {
		got, ok := loaded.Get(want.ID)
		if !ok {
			t.Fatalf("missing primitive %s after round trip", want.ID)
		}
		if got.BaseDifficulty != want.BaseDifficulty || got.Learnability != want.Learnability {
			t.Fatalf("%s: fields changed in round trip", want.ID)
		}
	}
}
