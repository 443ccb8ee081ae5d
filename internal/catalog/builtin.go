package catalog

// #region builtin

// Builtin returns the default shipped catalog. Pack files layer on top of
// this set; the IDs below are stable and referenced by prerequisite rules.
func Builtin() *Catalog {
	c := New()
	for _, p := range builtinPrimitives() {
		// Builtin entries are validated in tests; a registration failure
		// here is a programming error.
		if err := c.Register(p); err != nil {
			panic(err)
		}
	}
	c.Freeze()
	return c
}

// BuiltinWithPack layers a YAML pack file over the builtin set and freezes
// the result. An empty path returns the plain builtin catalog.
func BuiltinWithPack(packPath string) (*Catalog, error) {
	if packPath == "" {
		return Builtin(), nil
	}
	c := New()
	for _, p := range builtinPrimitives() {
		if err := c.Register(p); err != nil {
			return nil, err
		}
	}
	if err := c.LoadFile(packPath); err != nil {
		return nil, err
	}
	c.Freeze()
	return c, nil
}

func builtinPrimitives() []Primitive {
	return []Primitive{
		{
			ID:             "line_horizontal_3",
			Tags:           []Tag{TagLineShape},
			BaseDifficulty: 0.8,
			Learnability:   0.95,
			Novelty:        0.05,
			Params:         map[string]string{"length": "3", "direction": "horizontal"},
			Spawn:          SpawnRules{MinMoveCount: 1, MaxSimultaneous: 3},
			Support:        SupportSystems{VisualTelegraph: true, HintEnabled: true},
		},
		{
			ID:             "line_vertical_4",
			Tags:           []Tag{TagLineShape},
			BaseDifficulty: 1.2,
			Learnability:   0.85,
			Novelty:        0.15,
			Params:         map[string]string{"length": "4", "direction": "vertical"},
			Spawn:          SpawnRules{MinMoveCount: 2, MaxSimultaneous: 3},
			Support:        SupportSystems{VisualTelegraph: true, HintEnabled: true},
		},
		{
			ID:             "square_clear_2x2",
			Tags:           []Tag{TagAreaClear},
			BaseDifficulty: 1.5,
			Learnability:   0.75,
			Novelty:        0.3,
			Params:         map[string]string{"width": "2", "height": "2"},
			Spawn:          SpawnRules{MinMoveCount: 3, MaxSimultaneous: 2},
			Support:        SupportSystems{VisualTelegraph: true, HintEnabled: true},
		},
		{
			ID:             "burst_radius_2",
			Tags:           []Tag{TagAreaClear, TagComboOpportunity},
			BaseDifficulty: 2.0,
			Learnability:   0.6,
			Novelty:        0.45,
			Params:         map[string]string{"radius": "2"},
			Spawn:          SpawnRules{MinMoveCount: 4, MaxSimultaneous: 2, RequiredPrimitives: []string{"square_clear_2x2"}},
			Support:        SupportSystems{VisualTelegraph: true},
		},
		{
			ID:             "gravity_flip",
			Tags:           []Tag{TagGravityShift},
			BaseDifficulty: 2.5,
			Learnability:   0.45,
			Novelty:        0.7,
			Params:         map[string]string{"axis": "vertical"},
			Spawn: SpawnRules{
				MinMoveCount:      6,
				ForbiddenWithTags: []Tag{TagTeleport},
				MaxSimultaneous:   1,
			},
			Support: SupportSystems{VisualTelegraph: true, HintEnabled: true, PracticeMode: true},
		},
		{
			ID:             "gravity_sideways",
			Tags:           []Tag{TagGravityShift, TagSpatialReasoning},
			BaseDifficulty: 3.0,
			Learnability:   0.35,
			Novelty:        0.8,
			Params:         map[string]string{"axis": "horizontal"},
			Spawn: SpawnRules{
				MinMoveCount:       8,
				ForbiddenWithTags:  []Tag{TagTeleport, TagTimingSensitive},
				RequiredPrimitives: []string{"gravity_flip"},
				MaxSimultaneous:    1,
			},
			Support: SupportSystems{VisualTelegraph: true, HintEnabled: true, PracticeMode: true},
		},
		{
			ID:             "portal_pair",
			Tags:           []Tag{TagTeleport, TagSpatialReasoning},
			BaseDifficulty: 2.8,
			Learnability:   0.4,
			Novelty:        0.85,
			Params:         map[string]string{"pairs": "1"},
			Spawn: SpawnRules{
				MinMoveCount:      7,
				ForbiddenWithTags: []Tag{TagGravityShift},
				MaxSimultaneous:   1,
			},
			Support: SupportSystems{VisualTelegraph: true, PracticeMode: true},
		},
		{
			ID:             "timed_clear",
			Tags:           []Tag{TagTimingSensitive},
			BaseDifficulty: 2.2,
			Learnability:   0.5,
			Novelty:        0.55,
			Params:         map[string]string{"window_seconds": "8"},
			Spawn: SpawnRules{
				MinMoveCount:      5,
				ForbiddenWithTags: []Tag{TagCascade},
				MaxSimultaneous:   1,
			},
			Support: SupportSystems{VisualTelegraph: true, HintEnabled: true},
		},
		{
			ID:             "color_lock_single",
			Tags:           []Tag{TagColorLock, TagObstacle},
			BaseDifficulty: 1.8,
			Learnability:   0.65,
			Novelty:        0.4,
			Params:         map[string]string{"colors": "1"},
			Spawn:          SpawnRules{MinMoveCount: 4, MaxSimultaneous: 2},
			Support:        SupportSystems{HintEnabled: true},
		},
		{
			ID:             "crate_obstacle",
			Tags:           []Tag{TagObstacle},
			BaseDifficulty: 1.0,
			Learnability:   0.8,
			Novelty:        0.2,
			Params:         map[string]string{"hits_to_clear": "2"},
			Spawn:          SpawnRules{MinMoveCount: 2, MaxSimultaneous: 3},
			Support:        SupportSystems{HintEnabled: true},
		},
		{
			ID:             "cascade_column",
			Tags:           []Tag{TagCascade, TagComboOpportunity},
			BaseDifficulty: 2.4,
			Learnability:   0.55,
			Novelty:        0.6,
			Params:         map[string]string{"columns": "1"},
			Spawn: SpawnRules{
				MinMoveCount:      5,
				ForbiddenWithTags: []Tag{TagTimingSensitive},
				MaxSimultaneous:   1,
			},
			Support: SupportSystems{VisualTelegraph: true},
		},
		{
			ID:             "combo_chain_3",
			Tags:           []Tag{TagComboOpportunity, TagSpatialReasoning},
			BaseDifficulty: 1.6,
			Learnability:   0.7,
			Novelty:        0.35,
			Params:         map[string]string{"chain_length": "3"},
			Spawn:          SpawnRules{MinMoveCount: 3, MaxSimultaneous: 2},
			Support:        SupportSystems{VisualTelegraph: true, HintEnabled: true},
		},
	}
}

// #endregion builtin
