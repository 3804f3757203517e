package config

import "fmt"

// Preset represents a named tuning of a game.
type Preset string

const (
	// FeelRich selects the side/top contact response with goal settling.
	FeelRich Preset = "rich"
	// FeelSimple selects the uniform reflect-and-damp response.
	FeelSimple Preset = "simple"

	// RulesCasual ignores level limits and allows unlimited undo.
	RulesCasual Preset = "casual"
	// RulesStrict enforces move and time limits and allows three undos.
	RulesStrict Preset = "strict"
)

// ApplyPinsPreset modifies the pin config based on a feel preset.
func ApplyPinsPreset(cfg *PinsConfig, preset Preset) error {
	switch preset {
	case "":
	case FeelRich:
		def := DefaultPinsConfig()
		cfg.Feel.Variant = string(FeelRich)
		if cfg.Contact.SideSlide == 0 && cfg.Contact.TopSlide == 0 {
			cfg.Contact.SideSlide = def.Contact.SideSlide
			cfg.Contact.TopSlide = def.Contact.TopSlide
		}
		if cfg.Goal.Damping == 0 {
			cfg.Goal.Damping = def.Goal.Damping
		}
	case FeelSimple:
		cfg.Feel.Variant = string(FeelSimple)
		cfg.Contact.SideSlide = 0
		cfg.Contact.TopSlide = 0
		cfg.Goal.Damping = 0
	default:
		return fmt.Errorf("config: unknown pins preset %q", preset)
	}
	return nil
}

// ApplyEscapePreset modifies the escape config based on a rules preset.
func ApplyEscapePreset(cfg *EscapeConfig, preset Preset) error {
	switch preset {
	case "":
	case RulesCasual:
		cfg.Rules = EscapeRules{AllowUndo: true}
	case RulesStrict:
		cfg.Rules = EscapeRules{
			EnforceMoveLimit: true,
			EnforceTimeLimit: true,
			AllowUndo:        true,
			MaxUndo:          3,
		}
	default:
		return fmt.Errorf("config: unknown escape preset %q", preset)
	}
	return nil
}

// PresetsFor lists the presets a game accepts.
func PresetsFor(gameID string) []Preset {
	switch gameID {
	case "pins":
		return []Preset{FeelRich, FeelSimple}
	case "escape":
		return []Preset{RulesCasual, RulesStrict}
	default:
		return nil
	}
}
