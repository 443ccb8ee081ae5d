package generator

import "github.com/danielpatrickdp/stagecraft/internal/catalog"

// #region stage-pattern

// StagePattern is the immutable output of one generation call. It is
// consumed by the external level-instantiation collaborator and never
// edited; regenerate instead.
type StagePattern struct {
	ID                    string              `json:"id"`
	StageNumber           int                 `json:"stage_number"`
	Primitives            []catalog.Primitive `json:"primitives"`
	TotalDifficulty       float64             `json:"total_difficulty"`
	TotalLearnability     float64             `json:"total_learnability"` // mean over primitives
	CombinationComplexity float64             `json:"combination_complexity"`
	Seed                  int64               `json:"seed"`
}

// PrimitiveIDs returns the ordered primitive IDs of the pattern.
func (sp StagePattern) PrimitiveIDs() []string {
	ids := make([]string, len(sp.Primitives))
	for i, p := range sp.Primitives {
		ids[i] = p.ID
	}
	return ids
}

// #endregion stage-pattern
