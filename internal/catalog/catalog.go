package catalog

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// #region errors

// ErrEmptyCatalog is returned by queries that require at least one primitive.
var ErrEmptyCatalog = fmt.Errorf("catalog: no primitives registered")

// #endregion errors

// #region catalog-struct

// Catalog holds the registered primitive library plus tag and band indices.
// Build it once at startup; after Freeze it is read-only and safe to share
// across concurrent callers without locking.
type Catalog struct {
	byID   map[string]Primitive
	order  []string
	byTag  map[Tag][]string
	byBand map[DifficultyBand][]string
	frozen bool
}

// New returns an empty catalog ready for registration.
func New() *Catalog {
	return &Catalog{
		byID:   make(map[string]Primitive),
		byTag:  make(map[Tag][]string),
		byBand: make(map[DifficultyBand][]string),
	}
}

// #endregion catalog-struct

// #region register

// Register validates and adds a primitive. Registration order is preserved
// and used for deterministic iteration.
func (c *Catalog) Register(p Primitive) error {
	if c.frozen {
		return fmt.Errorf("catalog: register %q: catalog is frozen", p.ID)
	}
	if p.ID == "" {
		return fmt.Errorf("catalog: primitive has empty id")
	}
	if _, ok := c.byID[p.ID]; ok {
		return fmt.Errorf("catalog: duplicate primitive id %q", p.ID)
	}
	if p.BaseDifficulty < 0 {
		return fmt.Errorf("catalog: primitive %q: base difficulty %.3f is negative", p.ID, p.BaseDifficulty)
	}
	if p.Learnability < 0 || p.Learnability > 1 {
		return fmt.Errorf("catalog: primitive %q: learnability %.3f outside [0,1]", p.ID, p.Learnability)
	}
	if p.Novelty < 0 || p.Novelty > 1 {
		return fmt.Errorf("catalog: primitive %q: novelty %.3f outside [0,1]", p.ID, p.Novelty)
	}
	if len(p.Tags) == 0 {
		return fmt.Errorf("catalog: primitive %q has no tags", p.ID)
	}
	known := make(map[Tag]bool, len(KnownTags()))
	for _, t := range KnownTags() {
		known[t] = true
	}
	for _, t := range p.Tags {
		if !known[t] {
			return fmt.Errorf("catalog: primitive %q: unknown tag %q", p.ID, t)
		}
	}
	if p.Spawn.MaxSimultaneous < 0 {
		return fmt.Errorf("catalog: primitive %q: negative max simultaneous", p.ID)
	}

	c.byID[p.ID] = p
	c.order = append(c.order, p.ID)
	for _, t := range p.Tags {
		c.byTag[t] = append(c.byTag[t], p.ID)
	}
	band := BandOf(p.BaseDifficulty)
	c.byBand[band] = append(c.byBand[band], p.ID)
	return nil
}

// Freeze marks the catalog read-only. Further Register calls fail.
func (c *Catalog) Freeze() {
	c.frozen = true
}

// #endregion register

// #region queries

// Len returns the number of registered primitives.
func (c *Catalog) Len() int {
	return len(c.order)
}

// Get returns the primitive with the given id.
func (c *Catalog) Get(id string) (Primitive, bool) {
	p, ok := c.byID[id]
	return p, ok
}

// All returns every primitive in registration order.
func (c *Catalog) All() []Primitive {
	out := make([]Primitive, 0, len(c.order))
	for _, id := range c.order {
		out = append(out, c.byID[id])
	}
	return out
}

// ByTag returns primitives carrying the given tag, in registration order.
func (c *Catalog) ByTag(tag Tag) []Primitive {
	ids := c.byTag[tag]
	out := make([]Primitive, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.byID[id])
	}
	return out
}

// ByBand returns primitives in the given difficulty band, in registration order.
func (c *Catalog) ByBand(band DifficultyBand) []Primitive {
	ids := c.byBand[band]
	out := make([]Primitive, 0, len(ids))
	for _, id := range ids {
		out = append(out, c.byID[id])
	}
	return out
}

// MostLearnable returns the single primitive with the highest learnability.
// Ties break on registration order.
func (c *Catalog) MostLearnable() (Primitive, error) {
	if len(c.order) == 0 {
		return Primitive{}, ErrEmptyCatalog
	}
	best := c.byID[c.order[0]]
	for _, id := range c.order[1:] {
		if p := c.byID[id]; p.Learnability > best.Learnability {
			best = p
		}
	}
	return best, nil
}

// SortedByLearnability returns all primitives ordered by descending
// learnability, registration order breaking ties.
func (c *Catalog) SortedByLearnability() []Primitive {
	out := c.All()
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Learnability > out[j].Learnability
	})
	return out
}

// #endregion queries

// #region yaml-load

// primitivePack is the top-level YAML structure for a catalog file.
type primitivePack struct {
	Primitives []Primitive `yaml:"primitives"`
}

// LoadFile reads a YAML primitive pack and registers its contents.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("catalog: reading pack file: %w", err)
	}
	var pack primitivePack
	if err := yaml.Unmarshal(data, &pack); err != nil {
		return fmt.Errorf("catalog: parsing pack file: %w", err)
	}
	for _, p := range pack.Primitives {
		if err := c.Register(p); err != nil {
			return err
		}
	}
	return nil
}

// MarshalPack serializes the catalog to the YAML pack format.
func (c *Catalog) MarshalPack() ([]byte, error) {
	pack := primitivePack{Primitives: c.All()}
	data, err := yaml.Marshal(pack)
	if err != nil {
		return nil, fmt.Errorf("catalog: marshal pack: %w", err)
	}
	return data, nil
}

// #endregion yaml-load
