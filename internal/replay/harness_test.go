package replay

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/danielpatrickdp/stagecraft/internal/catalog"
	"github.com/danielpatrickdp/stagecraft/internal/generator"
)

func baseFixture() Fixture {
	return Fixture{
		Description: "builtin catalog smoke run",
		Primitives:  catalog.Builtin().All(),
		Attempts: []FixtureAttempt{
			{Stage: 1, Seed: 1},
			{Stage: 12, Seed: 42},
			{Stage: 25, Seed: 7},
			{Stage: 55, Seed: 99},
		},
	}
}

func TestExportThenReplayAllMatch(t *testing.T) {
	data, err := ExportFixture(baseFixture(), generator.DefaultConfig())
	if err != nil {
		t.Fatalf("ExportFixture: %v", err)
	}

	path := filepath.Join(t.TempDir(), "fixture.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	f, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}

	results, summary, err := Replay(f, generator.DefaultConfig())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if summary.Total != 4 || summary.Mismatches != 0 {
		t.Fatalf("expected 4/4 matches, got %+v", summary)
	}
	for _, r := range results {
		if !r.Match {
			t.Fatalf("stage %d seed %d diverged: %s", r.Stage, r.Seed, r.Diff)
		}
	}
}

func TestMutatedExpectationMismatches(t *testing.T) {
	data, err := ExportFixture(baseFixture(), generator.DefaultConfig())
	if err != nil {
		t.Fatalf("ExportFixture: %v", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	f.Expected[1].PatternID = "stage-12-deadbeef"

	results, summary, err := Replay(f, generator.DefaultConfig())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if summary.Mismatches != 1 {
		t.Fatalf("expected exactly 1 mismatch, got %+v", summary)
	}
	if results[1].Match || results[1].Diff == "" {
		t.Fatalf("expected attempt 1 to report a diff, got %+v", results[1])
	}
}

func TestFixtureValidation(t *testing.T) {
	dir := t.TempDir()

	noPrims := filepath.Join(dir, "noprims.json")
	if err := os.WriteFile(noPrims, []byte(`{"attempts":[{"stage":1,"seed":1}]}`), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadFixture(noPrims); err == nil {
		t.Fatal("expected error for fixture without primitives")
	}

	noAttempts := filepath.Join(dir, "noattempts.json")
	blob, _ := json.Marshal(Fixture{Primitives: catalog.Builtin().All()})
	if err := os.WriteFile(noAttempts, blob, 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if _, err := LoadFixture(noAttempts); err == nil {
		t.Fatal("expected error for fixture without attempts")
	}

	if _, err := LoadFixture(filepath.Join(dir, "missing.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestAttemptsBeyondExpectedAreGenerated(t *testing.T) {
	f := baseFixture() // no Expected at all
	results, summary, err := Replay(f, generator.DefaultConfig())
	if err != nil {
		t.Fatalf("Replay: %v", err)
	}
	if summary.Total != 4 || summary.Mismatches != 0 {
		t.Fatalf("unexpected summary %+v", summary)
	}
	for _, r := range results {
		if len(r.Pattern.Primitives) == 0 {
			t.Fatalf("stage %d produced no pattern", r.Stage)
		}
	}
}
