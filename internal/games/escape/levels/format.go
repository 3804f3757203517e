package levels

import (
	"fmt"

	"github.com/vovakirdan/tui-puzzles/internal/games/escape/puzzle"
	"gopkg.in/yaml.v3"
)

// YAMLLevel represents the YAML structure for an escape level file.
type YAMLLevel struct {
	ID            int             `yaml:"id"`
	Name          string          `yaml:"name"`
	NameEn        string          `yaml:"nameEn,omitempty"`
	Description   string          `yaml:"description,omitempty"`
	DescriptionEn string          `yaml:"descriptionEn,omitempty"`
	Difficulty    int             `yaml:"difficulty"`
	Width         int             `yaml:"width"`
	Height        int             `yaml:"height"`
	Player        YAMLPos         `yaml:"player"`
	Goal          YAMLPos         `yaml:"goal"`
	Obstacles     []YAMLObstacle  `yaml:"obstacles,omitempty"`
	Mechanisms    []YAMLMechanism `yaml:"mechanisms,omitempty"`
	Hints         []string        `yaml:"hints,omitempty"`
	TimeLimit     int             `yaml:"timeLimit,omitempty"`
	MoveLimit     int             `yaml:"moveLimit,omitempty"`
}

// YAMLPos is a grid cell.
type YAMLPos struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// YAMLObstacle is a wall or block. Missing extents default to 1.
type YAMLObstacle struct {
	Type   string `yaml:"type"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Width  int    `yaml:"width,omitempty"`
	Height int    `yaml:"height,omitempty"`
}

// YAMLMechanism is a slider, switch, gate or rotator.
type YAMLMechanism struct {
	ID        string `yaml:"id"`
	Type      string `yaml:"type"`
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Direction string `yaml:"direction,omitempty"`
	Length    int    `yaml:"length,omitempty"`
	Angle     int    `yaml:"angle,omitempty"`
	Active    bool   `yaml:"active,omitempty"`
	LinkedTo  string `yaml:"linkedTo,omitempty"`
}

// ParseYAML decodes and validates one level.
func ParseYAML(data []byte) (*puzzle.LevelConfig, error) {
	var yl YAMLLevel
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return nil, fmt.Errorf("yaml unmarshal: %w", err)
	}

	level := yl.ToLevel()
	if err := puzzle.ValidateLevel(level); err != nil {
		return nil, err
	}
	return level, nil
}

// ToLevel converts the YAML form into a level, applying defaults.
func (yl *YAMLLevel) ToLevel() *puzzle.LevelConfig {
	level := &puzzle.LevelConfig{
		ID:            yl.ID,
		Name:          yl.Name,
		NameEn:        yl.NameEn,
		Description:   yl.Description,
		DescriptionEn: yl.DescriptionEn,
		Difficulty:    yl.Difficulty,
		Width:         yl.Width,
		Height:        yl.Height,
		Player:        puzzle.P(yl.Player.X, yl.Player.Y),
		Goal:          puzzle.P(yl.Goal.X, yl.Goal.Y),
		Hints:         yl.Hints,
		TimeLimit:     yl.TimeLimit,
		MoveLimit:     yl.MoveLimit,
	}

	for _, o := range yl.Obstacles {
		kind := puzzle.ObstacleKind(o.Type)
		if kind == "" {
			kind = puzzle.ObstacleWall
		}
		level.Obstacles = append(level.Obstacles, puzzle.NewObstacle(kind, o.X, o.Y, o.Width, o.Height))
	}

	for _, m := range yl.Mechanisms {
		mech := puzzle.Mechanism{
			ID:        m.ID,
			Kind:      puzzle.MechanismKind(m.Type),
			X:         m.X,
			Y:         m.Y,
			Direction: puzzle.Direction(m.Direction),
			Length:    m.Length,
			Angle:     m.Angle,
			Active:    m.Active,
			LinkedTo:  m.LinkedTo,
		}
		if mech.Length <= 0 {
			mech.Length = 1
		}
		level.Mechanisms = append(level.Mechanisms, mech)
	}

	return level
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
