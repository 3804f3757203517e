package config

import (
	_ "embed"

	"github.com/vovakirdan/tui-puzzles/internal/games/escape/puzzle"
)

//go:embed defaults/pins.yaml
var defaultPinsYAML []byte

//go:embed defaults/escape.yaml
var defaultEscapeYAML []byte

// DefaultPinsConfig returns the default pin game configuration.
func DefaultPinsConfig() PinsConfig {
	return PinsConfig{
		Physics: PinsPhysics{
			Gravity:           0.3,
			BounceDamping:     0.6,
			VelocityThreshold: 0.1,
			StallTicks:        600,
		},
		Support: PinsSupport{
			HalfWidth:    12,
			MinOffset:    3,
			MaxOffset:    25,
			FallImpulse:  0.15,
			RestDistance: 10,
		},
		Contact: PinsContact{
			Padding:   2,
			SideSlide: 0.2,
			TopSlide:  0.1,
		},
		Goal: PinsGoal{
			Radius:     10,
			HalfWidth:  13,
			HalfHeight: 6,
			Damping:    0.8,
			SeatOffset: 3,
		},
		Ball:   PinsBall{Radius: 4},
		Bounds: PinsBounds{MaxX: 100},
		Feel:   PinsFeel{Variant: string(FeelRich)},
	}
}

// DefaultEscapeConfig returns the default escape configuration.
func DefaultEscapeConfig() EscapeConfig {
	r := puzzle.DefaultRules()
	return EscapeConfig{
		Rules: EscapeRules{
			EnforceMoveLimit: r.EnforceMoveLimit,
			EnforceTimeLimit: r.EnforceTimeLimit,
			AllowUndo:        r.AllowUndo,
			MaxUndo:          r.MaxUndo,
		},
	}
}

// GetDefaultYAML returns the embedded default YAML for a game.
func GetDefaultYAML(gameID string) []byte {
	switch gameID {
	case "pins":
		return defaultPinsYAML
	case "escape":
		return defaultEscapeYAML
	default:
		return nil
	}
}
