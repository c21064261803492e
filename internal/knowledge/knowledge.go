package knowledge

import (
	_ "embed"
	"fmt"
	"os"

	"gopkg.in/yaml.v2"
)

//go:embed reference.yaml
var embeddedBase []byte

// Tier is one reliability bucket of reference objects, from globally fixed
// manufacturing standards down to loose anthropometric fallbacks.
type Tier struct {
	Name        string                        `yaml:"name" json:"name"`
	Reliability string                        `yaml:"reliability" json:"reliability"`
	Objects     map[string]map[string]float64 `yaml:"objects" json:"objects"`
	Notes       string                        `yaml:"notes,omitempty" json:"notes,omitempty"`
}

// Base is the static table of known real-world object dimensions handed to
// the reasoning upstream. It is data, not logic: swapping the YAML file
// swaps the behavior without a code change.
type Base struct {
	Version string `yaml:"version" json:"version"`
	Tiers   []Tier `yaml:"tiers" json:"tiers"`
}

// Load reads the knowledge base from path, or falls back to the embedded
// default when path is empty. Tiers keep their file order, highest
// reliability first.
func Load(path string) (*Base, error) {
	data := embeddedBase
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read knowledge base: %v", err)
		}
		data = b
	}

	base := &Base{}
	if err := yaml.Unmarshal(data, base); err != nil {
		return nil, fmt.Errorf("unmarshal knowledge base: %v", err)
	}
	if len(base.Tiers) == 0 {
		return nil, fmt.Errorf("knowledge base has no tiers")
	}
	return base, nil
}
