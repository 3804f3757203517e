package puzzle

import "fmt"

// ValidationError contains details about a malformed level.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// ValidateLevel rejects level data the engine does not guard against at
// runtime. Run it once when a level is loaded.
func ValidateLevel(level *LevelConfig) error {
	if level.Width <= 0 || level.Height <= 0 {
		return ValidationError{
			Code:    "BAD_SIZE",
			Message: fmt.Sprintf("level %d: size %dx%d", level.ID, level.Width, level.Height),
		}
	}

	if err := validateEndpoint(level, "player", level.Player); err != nil {
		return err
	}
	if err := validateEndpoint(level, "goal", level.Goal); err != nil {
		return err
	}

	ids := make(map[string]bool, len(level.Mechanisms))
	for _, m := range level.Mechanisms {
		if m.ID == "" {
			return ValidationError{
				Code:    "MISSING_ID",
				Message: fmt.Sprintf("level %d: %s at %s has no id", level.ID, m.Kind, m.Anchor()),
			}
		}
		if ids[m.ID] {
			return ValidationError{
				Code:    "DUPLICATE_ID",
				Message: fmt.Sprintf("level %d: mechanism id %q used twice", level.ID, m.ID),
			}
		}
		ids[m.ID] = true
	}

	for _, m := range level.Mechanisms {
		if err := validateMechanism(level, m, ids); err != nil {
			return err
		}
	}

	return nil
}

func validateEndpoint(level *LevelConfig, name string, pos Position) error {
	if !IsInBounds(pos, level.Width, level.Height) {
		return ValidationError{
			Code:    "OUT_OF_BOUNDS",
			Message: fmt.Sprintf("level %d: %s %s outside %dx%d", level.ID, name, pos, level.Width, level.Height),
		}
	}
	for _, o := range level.Obstacles {
		if IsCollidingWithObstacle(pos, o) {
			return ValidationError{
				Code:    "BLOCKED_ENDPOINT",
				Message: fmt.Sprintf("level %d: %s %s is inside an obstacle", level.ID, name, pos),
			}
		}
	}
	return nil
}

func validateMechanism(level *LevelConfig, m Mechanism, ids map[string]bool) error {
	switch m.Kind {
	case KindSlider, KindGate:
		if m.Length < 1 {
			return ValidationError{
				Code:    "BAD_LENGTH",
				Message: fmt.Sprintf("level %d: %s %q has length %d", level.ID, m.Kind, m.ID, m.Length),
			}
		}
		if m.Direction != Horizontal && m.Direction != Vertical {
			return ValidationError{
				Code:    "BAD_DIRECTION",
				Message: fmt.Sprintf("level %d: %s %q has direction %q", level.ID, m.Kind, m.ID, m.Direction),
			}
		}
	case KindSwitch:
		if m.LinkedTo == "" {
			return ValidationError{
				Code:    "UNLINKED_SWITCH",
				Message: fmt.Sprintf("level %d: switch %q has no linkedTo", level.ID, m.ID),
			}
		}
		if !ids[m.LinkedTo] {
			return ValidationError{
				Code:    "DANGLING_LINK",
				Message: fmt.Sprintf("level %d: switch %q links to unknown %q", level.ID, m.ID, m.LinkedTo),
			}
		}
	case KindRotator:
	default:
		return ValidationError{
			Code:    "UNKNOWN_KIND",
			Message: fmt.Sprintf("level %d: mechanism %q has kind %q", level.ID, m.ID, m.Kind),
		}
	}

	for _, c := range m.Footprint() {
		if !IsInBounds(c, level.Width, level.Height) {
			return ValidationError{
				Code:    "OUT_OF_BOUNDS",
				Message: fmt.Sprintf("level %d: %s %q covers %s outside the grid", level.ID, m.Kind, m.ID, c),
			}
		}
	}
	return nil
}
