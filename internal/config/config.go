// Package config provides YAML-based game configuration loading and
// feel/rules presets for the puzzle platform.
package config

import (
	"fmt"

	"github.com/vovakirdan/tui-puzzles/internal/games/escape/puzzle"
	"github.com/vovakirdan/tui-puzzles/internal/games/pins/physics"
)

// PinsConfig contains all configuration for the pin-pulling game.
type PinsConfig struct {
	Physics PinsPhysics `yaml:"physics"`
	Support PinsSupport `yaml:"support"`
	Contact PinsContact `yaml:"contact"`
	Goal    PinsGoal    `yaml:"goal"`
	Ball    PinsBall    `yaml:"ball"`
	Bounds  PinsBounds  `yaml:"bounds"`
	Feel    PinsFeel    `yaml:"feel"`
}

// PinsPhysics defines the integration constants.
type PinsPhysics struct {
	Gravity           float64 `yaml:"gravity"`
	BounceDamping     float64 `yaml:"bounce_damping"`
	VelocityThreshold float64 `yaml:"velocity_threshold"`
	StallTicks        int     `yaml:"stall_ticks"` // 0 = wait for every ball to rest
}

// PinsSupport defines when a pin holds a ball up.
type PinsSupport struct {
	HalfWidth    float64 `yaml:"half_width"`
	MinOffset    float64 `yaml:"min_offset"`
	MaxOffset    float64 `yaml:"max_offset"`
	FallImpulse  float64 `yaml:"fall_impulse"`
	RestDistance float64 `yaml:"rest_distance"` // Distance to the floor at which a ball may rest
}

// PinsContact defines the pin collision response.
type PinsContact struct {
	Padding   float64 `yaml:"padding"`
	SideSlide float64 `yaml:"side_slide"`
	TopSlide  float64 `yaml:"top_slide"`
}

// PinsGoal defines the goal pocket.
type PinsGoal struct {
	Radius     float64 `yaml:"radius"` // Capture distance used by the judge
	HalfWidth  float64 `yaml:"half_width"`
	HalfHeight float64 `yaml:"half_height"`
	Damping    float64 `yaml:"damping"`
	SeatOffset float64 `yaml:"seat_offset"`
}

// PinsBall defines ball parameters.
type PinsBall struct {
	Radius float64 `yaml:"radius"`
}

// PinsBounds defines the play rectangle. A zero MaxY puts the floor at the
// bottom of the goal pocket.
type PinsBounds struct {
	MinX float64 `yaml:"min_x"`
	MinY float64 `yaml:"min_y"`
	MaxX float64 `yaml:"max_x"`
	MaxY float64 `yaml:"max_y"`
}

// PinsFeel selects the collision variant.
type PinsFeel struct {
	Variant string `yaml:"variant"` // "rich" or "simple"
}

// Params converts the configuration into engine parameters.
func (c PinsConfig) Params() physics.Params {
	return physics.Params{
		Variant:           physics.Variant(c.Feel.Variant),
		Gravity:           c.Physics.Gravity,
		BounceDamping:     c.Physics.BounceDamping,
		VelocityThreshold: c.Physics.VelocityThreshold,
		SupportHalfWidth:  c.Support.HalfWidth,
		SupportMinOffset:  c.Support.MinOffset,
		SupportMaxOffset:  c.Support.MaxOffset,
		FallImpulse:       c.Support.FallImpulse,
		PinPadding:        c.Contact.Padding,
		SideSlide:         c.Contact.SideSlide,
		TopSlide:          c.Contact.TopSlide,
		GoalHalfWidth:     c.Goal.HalfWidth,
		GoalHalfHeight:    c.Goal.HalfHeight,
		GoalDamping:       c.Goal.Damping,
		GoalSeatOffset:    c.Goal.SeatOffset,
		FloorRestDistance: c.Support.RestDistance,
	}
}

// WorldConfig returns the judging settings.
func (c PinsConfig) WorldConfig() physics.WorldConfig {
	return physics.WorldConfig{
		GoalRadius: c.Goal.Radius,
		StallTicks: c.Physics.StallTicks,
	}
}

// BoundsFor returns the play rectangle for a level with the given goal.
func (c PinsConfig) BoundsFor(goal physics.Goal) physics.Bounds {
	b := physics.Bounds{
		MinX: c.Bounds.MinX,
		MinY: c.Bounds.MinY,
		MaxX: c.Bounds.MaxX,
		MaxY: c.Bounds.MaxY,
	}
	if b.MaxY == 0 {
		b.MaxY = goal.Y + c.Goal.SeatOffset + c.Ball.Radius
	}
	return b
}

// Validate reports the first unusable setting.
func (c PinsConfig) Validate() error {
	if err := c.Params().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.Ball.Radius <= 0 {
		return fmt.Errorf("config: ball radius must be positive, got %v", c.Ball.Radius)
	}
	if c.Goal.Radius <= 0 {
		return fmt.Errorf("config: goal radius must be positive, got %v", c.Goal.Radius)
	}
	if c.Bounds.MaxX <= c.Bounds.MinX {
		return fmt.Errorf("config: bounds x range [%v,%v] is empty", c.Bounds.MinX, c.Bounds.MaxX)
	}
	return nil
}

// EscapeConfig contains all configuration for the escape game.
type EscapeConfig struct {
	Rules EscapeRules `yaml:"rules"`
}

// EscapeRules toggles the level limits and undo.
type EscapeRules struct {
	EnforceMoveLimit bool `yaml:"enforce_move_limit"`
	EnforceTimeLimit bool `yaml:"enforce_time_limit"`
	AllowUndo        bool `yaml:"allow_undo"`
	MaxUndo          int  `yaml:"max_undo"` // 0 = unlimited
}

// PuzzleRules converts the configuration into session rules.
func (c EscapeConfig) PuzzleRules() puzzle.Rules {
	return puzzle.Rules{
		EnforceMoveLimit: c.Rules.EnforceMoveLimit,
		EnforceTimeLimit: c.Rules.EnforceTimeLimit,
		AllowUndo:        c.Rules.AllowUndo,
		MaxUndo:          c.Rules.MaxUndo,
	}
}

// Validate reports the first unusable setting.
func (c EscapeConfig) Validate() error {
	if c.Rules.MaxUndo < 0 {
		return fmt.Errorf("config: max_undo must not be negative, got %d", c.Rules.MaxUndo)
	}
	return nil
}
