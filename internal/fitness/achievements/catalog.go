package achievements

import (
	_ "embed"
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"
)

//go:embed catalog.toml
var defaultCatalogTOML string

// Definition is the static description of one milestone.
type Definition struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Icon        string   `json:"icon"`
	Category    Category `json:"category"`
	Target      float64  `json:"target"`
	Points      int      `json:"points"`
	Rule        Rule     `json:"-"`
}

// Catalog is the ordered, immutable set of definitions.
type Catalog struct {
	Version     int
	definitions []Definition
	byID        map[string]int
}

type catalogFile struct {
	Version     int            `toml:"version"`
	Achievement []catalogEntry `toml:"achievement"`
}

type catalogEntry struct {
	ID          string  `toml:"id"`
	Title       string  `toml:"title"`
	Description string  `toml:"description"`
	Icon        string  `toml:"icon"`
	Category    string  `toml:"category"`
	Target      float64 `toml:"target"`
	Points      int     `toml:"points"`
	FromHour    int     `toml:"from_hour"`
	ToHour      int     `toml:"to_hour"`
}

// DefaultCatalog parses the embedded catalog. It panics on a broken catalog,
// which can only happen with a bad build.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalogTOML)
	if err != nil {
		panic(fmt.Errorf("embedded achievements catalog: %w", err))
	}
	return c
}

func ParseCatalog(data string) (*Catalog, error) {
	var f catalogFile
	if _, err := toml.Decode(data, &f); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if f.Version <= 0 {
		return nil, errors.New("catalog version missing")
	}

	c := &Catalog{
		Version:     f.Version,
		definitions: make([]Definition, 0, len(f.Achievement)),
		byID:        make(map[string]int, len(f.Achievement)),
	}

	for _, e := range f.Achievement {
		if e.ID == "" {
			return nil, errors.New("catalog entry without id")
		}
		if _, exists := c.byID[e.ID]; exists {
			return nil, fmt.Errorf("duplicate catalog id %q", e.ID)
		}
		if e.Points < 0 {
			return nil, fmt.Errorf("catalog entry %q: negative points", e.ID)
		}

		category, err := ParseCategory(e.Category)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", e.ID, err)
		}
		rule, err := newRule(category, e.Target, e.FromHour, e.ToHour)
		if err != nil {
			return nil, fmt.Errorf("catalog entry %q: %w", e.ID, err)
		}

		c.byID[e.ID] = len(c.definitions)
		c.definitions = append(c.definitions, Definition{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			Icon:        e.Icon,
			Category:    category,
			Target:      e.Target,
			Points:      e.Points,
			Rule:        rule,
		})
	}

	return c, nil
}

// Definitions returns a copy in catalog order.
func (c *Catalog) Definitions() []Definition {
	defs := make([]Definition, len(c.definitions))
	copy(defs, c.definitions)
	return defs
}

func (c *Catalog) Get(id string) (Definition, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Definition{}, false
	}
	return c.definitions[i], true
}

func (c *Catalog) IDs() []string {
	ids := make([]string, len(c.definitions))
	for i, d := range c.definitions {
		ids[i] = d.ID
	}
	return ids
}

func (c *Catalog) Len() int {
	return len(c.definitions)
}

func (c *Catalog) TotalPoints() int {
	total := 0
	for _, d := range c.definitions {
		total += d.Points
	}
	return total
}
