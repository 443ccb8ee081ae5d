package validator

import (
	"math"
	"testing"

	"github.com/danielpatrickdp/stagecraft/internal/catalog"
	"github.com/danielpatrickdp/stagecraft/internal/profile"
)

func buildCatalog(t *testing.T, prims ...catalog.Primitive) *catalog.Catalog {
	t.Helper()
	c := catalog.New()
	for _, p := range prims {
		if err := c.Register(p); err != nil {
			t.Fatalf("Register %s: %v", p.ID, err)
		}
	}
	c.Freeze()
	return c
}

func prim(id string, difficulty, learnability float64) catalog.Primitive {
	return catalog.Primitive{
		ID: id, Tags: []catalog.Tag{catalog.TagLineShape},
		BaseDifficulty: difficulty, Learnability: learnability,
	}
}

func TestEmptySelectionRepair(t *testing.T) {
	cat := buildCatalog(t,
		prim("low", 1.0, 0.3),
		prim("high", 1.0, 0.9),
	)
	v := NewValidator(cat, DefaultConfig())

	out, report, err := v.Validate(nil, nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(out) != 1 || out[0].ID != "high" {
		t.Fatalf("expected fallback to most learnable, got %v", out)
	}
	if !report.Repaired() {
		t.Fatal("expected a repair action to be reported")
	}
}

func TestEmptySelectionEmptyCatalog(t *testing.T) {
	cat := catalog.New()
	cat.Freeze()
	v := NewValidator(cat, DefaultConfig())

	if _, _, err := v.Validate(nil, nil); err == nil {
		t.Fatal("expected error for empty catalog with empty selection")
	}
}

func TestLearnabilityFloorSwap(t *testing.T) {
	// New-player floor is 0.7. Selection mean 0.45 triggers a swap of the
	// worst primitive for a strictly more learnable, comparable-cost one.
	cat := buildCatalog(t,
		prim("worst", 1.0, 0.2),
		prim("fine", 1.0, 0.7),
		prim("swap_in", 1.0, 0.9), // +0.7 learnability, same cost
	)
	v := NewValidator(cat, DefaultConfig())

	selection := []catalog.Primitive{mustGet(t, cat, "worst"), mustGet(t, cat, "fine")}
	out, report, err := v.Validate(selection, nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if !report.Repaired() {
		t.Fatal("expected repair report")
	}
	for _, p := range out {
		if p.ID == "worst" {
			t.Fatal("lowest-learnability primitive not swapped")
		}
	}
	if MeanLearnability(out) < 0.7 {
		t.Fatalf("mean learnability %.2f still below floor", MeanLearnability(out))
	}
}

func TestSwapRejectsExpensiveReplacement(t *testing.T) {
	// The only higher-learnability candidate costs 2x the replaced
	// primitive; the direct swap must not use it. The fallback path still
	// applies it only when it raises the mean.
	cat := buildCatalog(t,
		prim("worst", 1.0, 0.2),
		prim("pricey", 2.0, 0.9),
	)
	cfg := DefaultConfig()
	v := NewValidator(cat, cfg)

	selection := []catalog.Primitive{mustGet(t, cat, "worst")}
	out, _, err := v.Validate(selection, nil)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	// Fallback replaces with the most learnable since it raises the mean.
	if len(out) != 1 || out[0].ID != "pricey" {
		t.Fatalf("expected fallback swap to most learnable, got %v", out)
	}
}

func TestExperiencedFloorIsLower(t *testing.T) {
	cat := buildCatalog(t,
		prim("mid", 1.0, 0.4),
	)
	v := NewValidator(cat, DefaultConfig())

	p := profile.New("p1")
	selection := []catalog.Primitive{mustGet(t, cat, "mid")}
	out, report, err := v.Validate(selection, &p)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	// 0.4 >= 0.3 experienced floor: untouched.
	if report.Repaired() {
		t.Fatalf("expected no repair for experienced player, got %v", report.Actions)
	}
	if len(out) != 1 || out[0].ID != "mid" {
		t.Fatalf("selection changed: %v", out)
	}
}

func TestComplexityCeilingTrims(t *testing.T) {
	a := prim("a", 2.0, 0.9)
	b := prim("b", 2.0, 0.8)
	b.Tags = []catalog.Tag{catalog.TagAreaClear}
	c := prim("c", 2.0, 0.7)
	c.Tags = []catalog.Tag{catalog.TagObstacle}
	cat := buildCatalog(t, a, b, c)
	v := NewValidator(cat, DefaultConfig())

	p := profile.New("p1")
	p.MaxHandledComplexity = 4.0

	selection := []catalog.Primitive{a, b, c} // complexity 6 + 1.5 + 0.9 = 8.4
	out, report, err := v.Validate(selection, &p)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(out) >= 3 {
		t.Fatalf("expected trim below 3 primitives, got %d", len(out))
	}
	if len(out) < 1 {
		t.Fatal("trim dropped everything")
	}
	if Complexity(out) > 4.0 && len(out) > 1 {
		t.Fatalf("trimmed selection complexity %.2f still over ceiling", Complexity(out))
	}
	if !report.Repaired() {
		t.Fatal("expected trim to be reported")
	}
	// Trim keeps the most learnable first.
	if out[0].ID != "a" {
		t.Fatalf("expected most learnable kept first, got %s", out[0].ID)
	}
}

func TestComplexityKeepsAtLeastOne(t *testing.T) {
	heavy := prim("heavy", 50.0, 0.9)
	cat := buildCatalog(t, heavy)
	v := NewValidator(cat, DefaultConfig())

	p := profile.New("p1")
	p.MaxHandledComplexity = 1.0

	out, _, err := v.Validate([]catalog.Primitive{heavy}, &p)
	if err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if len(out) != 1 {
		t.Fatalf("expected the single over-ceiling primitive kept, got %d", len(out))
	}
}

func TestComplexityFormula(t *testing.T) {
	a := prim("a", 2.0, 0.9)                         // tags: line_shape
	b := prim("b", 1.0, 0.8)                         // tags: line_shape (shared)
	c := catalog.Primitive{ID: "c", Tags: []catalog.Tag{catalog.TagAreaClear, catalog.TagCascade}, BaseDifficulty: 1.5, Learnability: 0.5}

	got := Complexity([]catalog.Primitive{a, b, c})
	// difficulty 4.5 + 0.5*3 distinct tags + 0.3*3 primitives = 6.9
	want := 4.5 + 1.5 + 0.9
	if math.Abs(got-want) > 1e-9 {
		t.Fatalf("expected complexity %.2f, got %.2f", want, got)
	}
}

func TestMeanLearnability(t *testing.T) {
	if MeanLearnability(nil) != 0 {
		t.Fatal("expected 0 for empty selection")
	}
	got := MeanLearnability([]catalog.Primitive{prim("a", 1, 0.4), prim("b", 1, 0.8)})
	if math.Abs(got-0.6) > 1e-9 {
		t.Fatalf("expected 0.6, got %.3f", got)
	}
}

func mustGet(t *testing.T, c *catalog.Catalog, id string) catalog.Primitive {
	t.Helper()
	p, ok := c.Get(id)
	if !ok {
		t.Fatalf("primitive %s not in catalog", id)
	}
	return p
}
