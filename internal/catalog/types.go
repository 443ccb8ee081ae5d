package catalog

// #region tags

// Tag classifies the mechanic a primitive contributes to a stage.
// The set is closed: catalog registration rejects unknown tags.
type Tag string

const (
	TagLineShape        Tag = "line_shape"
	TagAreaClear        Tag = "area_clear"
	TagGravityShift     Tag = "gravity_shift"
	TagTeleport         Tag = "teleport"
	TagTimingSensitive  Tag = "timing_sensitive"
	TagSpatialReasoning Tag = "spatial_reasoning"
	TagComboOpportunity Tag = "combo_opportunity"
	TagColorLock        Tag = "color_lock"
	TagObstacle         Tag = "obstacle"
	TagCascade          Tag = "cascade"
)

// KnownTags returns the closed tag set in registration order.
func KnownTags() []Tag {
	return []Tag{
		TagLineShape,
		TagAreaClear,
		TagGravityShift,
		TagTeleport,
		TagTimingSensitive,
		TagSpatialReasoning,
		TagComboOpportunity,
		TagColorLock,
		TagObstacle,
		TagCascade,
	}
}

// #endregion tags

// #region spawn-rules

// SpawnRules constrains where and with what a primitive may appear.
type SpawnRules struct {
	MinMoveCount      int      `yaml:"min_move_count" json:"min_move_count"`
	ForbiddenWithTags []Tag    `yaml:"forbidden_with_tags" json:"forbidden_with_tags"`
	RequiredPrimitives []string `yaml:"required_primitives" json:"required_primitives"`
	MaxSimultaneous   int      `yaml:"max_simultaneous" json:"max_simultaneous"`
}

// #endregion spawn-rules

// #region support-systems

// SupportSystems flags which assistance layers should accompany a primitive.
// The engine only decides attachment; rendering is the host's concern.
type SupportSystems struct {
	VisualTelegraph bool `yaml:"visual_telegraph" json:"visual_telegraph"`
	HintEnabled     bool `yaml:"hint_enabled" json:"hint_enabled"`
	PracticeMode    bool `yaml:"practice_mode" json:"practice_mode"`
}

// #endregion support-systems

// #region primitive

// Primitive is an atomic, reusable difficulty unit. Immutable once registered;
// the catalog owns the canonical copy.
type Primitive struct {
	ID             string             `yaml:"id" json:"id"`
	Tags           []Tag              `yaml:"tags" json:"tags"`
	BaseDifficulty float64            `yaml:"base_difficulty" json:"base_difficulty"`
	Learnability   float64            `yaml:"learnability" json:"learnability"`
	Novelty        float64            `yaml:"novelty" json:"novelty"`
	Params         map[string]string  `yaml:"params" json:"params"`
	Spawn          SpawnRules         `yaml:"spawn" json:"spawn"`
	Support        SupportSystems     `yaml:"support" json:"support"`
}

// HasTag reports whether the primitive carries the given tag.
func (p Primitive) HasTag(tag Tag) bool {
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// SharesTag reports whether two primitives have at least one tag in common.
func (p Primitive) SharesTag(other Primitive) bool {
	for _, t := range other.Tags {
		if p.HasTag(t) {
			return true
		}
	}
	return false
}

// #endregion primitive

// #region difficulty-band

// DifficultyBand buckets primitives by base difficulty for indexed lookups.
type DifficultyBand int

const (
	BandTrivial  DifficultyBand = iota // [0, 1)
	BandEasy                           // [1, 2)
	BandModerate                       // [2, 4)
	BandHard                           // [4, +inf)
)

// BandOf maps a base difficulty to its band.
func BandOf(difficulty float64) DifficultyBand {
	switch {
	case difficulty < 1:
		return BandTrivial
	case difficulty < 2:
		return BandEasy
	case difficulty < 4:
		return BandModerate
	default:
		return BandHard
	}
}

// #endregion difficulty-band
