package physics

import "fmt"

// Variant selects the collision response.
type Variant string

const (
	// VariantRich splits pin contacts into side and top hits, adds sliding
	// impulses and settles balls inside the goal pocket.
	VariantRich Variant = "rich"
	// VariantSimple uses a single reflect-and-damp response and no goal
	// settling.
	VariantSimple Variant = "simple"
)

// Params holds every tuning constant of the engine.
type Params struct {
	Variant Variant

	Gravity           float64 // Added to VY every tick
	BounceDamping     float64 // Velocity factor after any bounce
	VelocityThreshold float64 // Below this on both axes a ball may rest

	SupportHalfWidth float64 // Max |ball.X - pin.X| for support
	SupportMinOffset float64 // pin.Y - ball.Y must exceed this
	SupportMaxOffset float64 // and stay below this
	FallImpulse      float64 // Max |VX| injected when a ball starts falling

	PinPadding float64 // Contact distance is Radius + PinPadding
	SideSlide  float64 // Sliding impulse after a side contact
	TopSlide   float64 // Sliding impulse after a top or bottom contact

	GoalHalfWidth  float64
	GoalHalfHeight float64
	GoalDamping    float64 // Extra per-tick damping inside the goal box
	GoalSeatOffset float64 // Settled balls below centre snap to goal.Y + this

	FloorRestDistance float64 // Balls this close to the floor may rest
}

// RichParams returns the canonical engine tuning.
func RichParams() Params {
	return Params{
		Variant:           VariantRich,
		Gravity:           0.3,
		BounceDamping:     0.6,
		VelocityThreshold: 0.1,
		SupportHalfWidth:  12,
		SupportMinOffset:  3,
		SupportMaxOffset:  25,
		FallImpulse:       0.15,
		PinPadding:        2,
		SideSlide:         0.2,
		TopSlide:          0.1,
		GoalHalfWidth:     13,
		GoalHalfHeight:    6,
		GoalDamping:       0.8,
		GoalSeatOffset:    3,
		FloorRestDistance: 10,
	}
}

// SimpleParams returns the uniform reflect-and-damp tuning.
// Slide and goal fields are zeroed since the simple path ignores them.
func SimpleParams() Params {
	p := RichParams()
	p.Variant = VariantSimple
	p.SideSlide = 0
	p.TopSlide = 0
	p.GoalDamping = 0
	return p
}

// Validate checks that the parameters describe a usable engine.
func (p Params) Validate() error {
	switch p.Variant {
	case VariantRich, VariantSimple:
	default:
		return fmt.Errorf("physics: unknown variant %q", p.Variant)
	}
	if p.Gravity <= 0 {
		return fmt.Errorf("physics: gravity must be positive, got %v", p.Gravity)
	}
	if p.BounceDamping < 0 || p.BounceDamping > 1 {
		return fmt.Errorf("physics: bounce damping must be in [0,1], got %v", p.BounceDamping)
	}
	if p.VelocityThreshold <= 0 {
		return fmt.Errorf("physics: velocity threshold must be positive, got %v", p.VelocityThreshold)
	}
	if p.SupportMinOffset >= p.SupportMaxOffset {
		return fmt.Errorf("physics: support offsets (%v, %v) are empty", p.SupportMinOffset, p.SupportMaxOffset)
	}
	if p.Variant == VariantRich && (p.GoalDamping <= 0 || p.GoalDamping >= 1) {
		return fmt.Errorf("physics: goal damping must be in (0,1), got %v", p.GoalDamping)
	}
	return nil
}
