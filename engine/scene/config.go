package scene

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"orrery/engine/linear"
	"orrery/engine/shade"
)

// bodyConfig is the YAML shape of one catalog entry.
type bodyConfig struct {
	Name     string     `yaml:"name"`
	Material string     `yaml:"material"`
	Scale    float32    `yaml:"scale"`
	Radius   float32    `yaml:"radius"`
	Rate     float32    `yaml:"rate"`
	Squash   float32    `yaml:"squash"`
	Tilt     [3]float32 `yaml:"tilt"`
	Spin     float32    `yaml:"spin"`
}

type systemConfig struct {
	Bodies []bodyConfig `yaml:"bodies"`
}

var materialsByName = map[string]shade.Material{
	"gaseous":   shade.Gaseous,
	"rocky":     shade.Rocky,
	"stellar":   shade.Stellar,
	"cheese":    shade.Cheese,
	"cat":       shade.Cat,
	"bubblegum": shade.Bubblegum,
	"icy":       shade.Icy,
	"giant":     shade.Giant,
}

// ParseSystem decodes a YAML body catalog. Unknown materials and
// non-positive scales are configuration errors, reported rather than
// rendered as garbage.
func ParseSystem(data []byte) ([]Body, error) {
	var cfg systemConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("scene: %w", err)
	}
	if len(cfg.Bodies) == 0 {
		return nil, fmt.Errorf("scene: no bodies defined")
	}
	bodies := make([]Body, 0, len(cfg.Bodies))
	for i, bc := range cfg.Bodies {
		mat, ok := materialsByName[bc.Material]
		if !ok {
			return nil, fmt.Errorf("scene: body %d (%q): unknown material %q", i, bc.Name, bc.Material)
		}
		if bc.Scale <= 0 {
			return nil, fmt.Errorf("scene: body %d (%q): scale must be positive", i, bc.Name)
		}
		squash := bc.Squash
		if squash == 0 {
			squash = 1
		}
		bodies = append(bodies, Body{
			Name:     bc.Name,
			Material: mat,
			Scale:    bc.Scale,
			Radius:   bc.Radius,
			Rate:     bc.Rate,
			Squash:   squash,
			Tilt:     linear.V3(bc.Tilt[0], bc.Tilt[1], bc.Tilt[2]),
			Spin:     bc.Spin,
		})
	}
	return bodies, nil
}

// LoadSystem reads a YAML catalog from disk.
func LoadSystem(path string) ([]Body, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return ParseSystem(data)
}
