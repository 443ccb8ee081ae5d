package replay

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/danielpatrickdp/stagecraft/internal/catalog"
	"github.com/danielpatrickdp/stagecraft/internal/generator"
	"github.com/danielpatrickdp/stagecraft/internal/profile"
)

// #region fixture-types

// Fixture is the top-level JSON structure for a generation replay run:
// a catalog snapshot, an optional profile snapshot, the stage/seed list,
// and the expected outputs.
type Fixture struct {
	Description string              `json:"description"`
	Primitives  []catalog.Primitive `json:"primitives"`
	Profile     *profile.Profile    `json:"profile"`
	Attempts    []FixtureAttempt    `json:"attempts"`
	Expected    []FixtureExpected   `json:"expected"`
}

// FixtureAttempt is one stage generation to replay.
type FixtureAttempt struct {
	Stage int   `json:"stage"`
	Seed  int64 `json:"seed"`
}

// FixtureExpected captures the expected pattern per attempt, in order.
type FixtureExpected struct {
	PatternID       string   `json:"pattern_id"`
	PrimitiveIDs    []string `json:"primitive_ids"`
	TotalDifficulty float64  `json:"total_difficulty"`
}

// #endregion fixture-types

// #region load

// LoadFixture reads and validates a fixture file.
func LoadFixture(path string) (Fixture, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Fixture{}, fmt.Errorf("replay: reading fixture: %w", err)
	}
	var f Fixture
	if err := json.Unmarshal(data, &f); err != nil {
		return Fixture{}, fmt.Errorf("replay: parsing fixture: %w", err)
	}
	if len(f.Primitives) == 0 {
		return Fixture{}, fmt.Errorf("replay: fixture has no primitives")
	}
	if len(f.Attempts) == 0 {
		return Fixture{}, fmt.Errorf("replay: fixture has no attempts")
	}
	return f, nil
}

// Catalog builds the frozen catalog described by the fixture.
func (f Fixture) Catalog() (*catalog.Catalog, error) {
	cat := catalog.New()
	for _, p := range f.Primitives {
		if err := cat.Register(p); err != nil {
			return nil, err
		}
	}
	cat.Freeze()
	return cat, nil
}

// #endregion load

// #region export

// ExportFixture serializes a fixture, filling Expected from actual
// generation so the file can serve as a regression baseline.
func ExportFixture(f Fixture, config generator.Config) ([]byte, error) {
	cat, err := f.Catalog()
	if err != nil {
		return nil, err
	}
	gen, err := generator.New(cat, config, nil)
	if err != nil {
		return nil, err
	}

	f.Expected = f.Expected[:0]
	for _, attempt := range f.Attempts {
		result, err := gen.Generate(attempt.Stage, f.Profile, attempt.Seed)
		if err != nil {
			return nil, fmt.Errorf("replay: export attempt stage %d: %w", attempt.Stage, err)
		}
		f.Expected = append(f.Expected, FixtureExpected{
			PatternID:       result.Pattern.ID,
			PrimitiveIDs:    result.Pattern.PrimitiveIDs(),
			TotalDifficulty: result.Pattern.TotalDifficulty,
		})
	}
	return json.MarshalIndent(f, "", "  ")
}

// #endregion export
