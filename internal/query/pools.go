package query

import (
	"embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Category names the generator depends on.
const (
	CategoryFood       = "food"
	CategoryAdjectives = "adjectives"
	CategoryCooking    = "cooking"
	CategoryTopics     = "topics"
	CategoryActions    = "actions"
)

//go:embed wordpools/default.yaml
var embeddedPools embed.FS

// Category is a named, ordered list of words.
type Category struct {
	Name  string   `yaml:"name" json:"name"`
	Words []string `yaml:"words" json:"words"`
}

// Pools holds the word categories queries are built from.
// The order of Categories is significant for seeded generation.
type Pools struct {
	Categories []Category `yaml:"categories" json:"categories"`
}

// Words returns the words of the named category, or nil if it does not exist.
func (p *Pools) Words(name string) []string {
	for _, c := range p.Categories {
		if c.Name == name {
			return c.Words
		}
	}
	return nil
}

// Names returns the category names in order.
func (p *Pools) Names() []string {
	names := make([]string, 0, len(p.Categories))
	for _, c := range p.Categories {
		names = append(names, c.Name)
	}
	return names
}

// Validate checks that every category has words and that the categories the
// phrase and sentence shapes rely on are present.
func (p *Pools) Validate() error {
	if len(p.Categories) == 0 {
		return fmt.Errorf("word pools define no categories")
	}
	seen := make(map[string]bool, len(p.Categories))
	for _, c := range p.Categories {
		if c.Name == "" {
			return fmt.Errorf("word pool category without a name")
		}
		if seen[c.Name] {
			return fmt.Errorf("duplicate word pool category: %s", c.Name)
		}
		seen[c.Name] = true
		if len(c.Words) == 0 {
			return fmt.Errorf("word pool category %q has no words", c.Name)
		}
	}
	for _, required := range []string{CategoryFood, CategoryAdjectives, CategoryActions} {
		if !seen[required] {
			return fmt.Errorf("missing required word pool category: %s", required)
		}
	}
	return nil
}

// DefaultPools returns the word pools embedded in the binary.
func DefaultPools() *Pools {
	data, err := embeddedPools.ReadFile("wordpools/default.yaml")
	if err != nil {
		panic(fmt.Sprintf("embedded word pools missing: %v", err))
	}
	pools, err := parsePools(data)
	if err != nil {
		panic(fmt.Sprintf("embedded word pools invalid: %v", err))
	}
	return pools
}

// LoadPools loads word pools from an external YAML file. An empty path
// returns the embedded defaults.
func LoadPools(path string) (*Pools, error) {
	if path == "" {
		return DefaultPools(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read word pools %s: %w", path, err)
	}
	pools, err := parsePools(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load word pools %s: %w", path, err)
	}
	return pools, nil
}

func parsePools(data []byte) (*Pools, error) {
	var pools Pools
	if err := yaml.Unmarshal(data, &pools); err != nil {
		return nil, fmt.Errorf("failed to parse word pools: %w", err)
	}
	if err := pools.Validate(); err != nil {
		return nil, err
	}
	return &pools, nil
}
