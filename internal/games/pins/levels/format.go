package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-puzzles/internal/games/pins/physics"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for a custom pin level.
type YAMLLevel struct {
	ID    int        `yaml:"id"`
	Hint  string     `yaml:"hint,omitempty"`
	Goal  YAMLPoint  `yaml:"goal"`
	Pins  []YAMLPin  `yaml:"pins"`
	Balls []YAMLBall `yaml:"balls"`
}

// YAMLPoint is a position in level units.
type YAMLPoint struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// YAMLPin is a pin. IDs default to the 1-based position in the list.
type YAMLPin struct {
	ID        int     `yaml:"id,omitempty"`
	X         float64 `yaml:"x"`
	Y         float64 `yaml:"y"`
	BlockedBy []int   `yaml:"blockedBy,omitempty"`
}

// YAMLBall is a ball. Color defaults to treasure.
type YAMLBall struct {
	X     float64 `yaml:"x"`
	Y     float64 `yaml:"y"`
	Color string  `yaml:"color,omitempty"`
}

// ParseYAML decodes and validates one level.
func ParseYAML(data []byte) (*Level, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := yl.ToLevel()
	if err := Validate(level); err != nil {
		return nil, err
	}
	return level, nil
}

// ToLevel converts the YAML form into a level, applying defaults.
func (yl *YAMLLevel) ToLevel() *Level {
	level := &Level{
		ID:   yl.ID,
		Hint: yl.Hint,
		Goal: physics.Goal{X: yl.Goal.X, Y: yl.Goal.Y},
	}

	for i, p := range yl.Pins {
		id := p.ID
		if id == 0 {
			id = i + 1
		}
		level.Pins = append(level.Pins, physics.Pin{ID: id, X: p.X, Y: p.Y, BlockedBy: p.BlockedBy})
	}

	for _, b := range yl.Balls {
		color := physics.BallColor(b.Color)
		if color == "" {
			color = physics.Treasure
		}
		level.Balls = append(level.Balls, BallSpec{X: b.X, Y: b.Y, Color: color})
	}

	return level
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
