package core

// RuntimeConfig contains configuration passed to games at initialization.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second
	Seed     int64 // RNG seed, 0 means the platform picks one
	Level    int   // Level to start on, 0 means the first
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Level:    1,
	}
}

// Outcome is the result of a level attempt.
type Outcome int

const (
	OutcomePlaying Outcome = iota
	OutcomeWon
	OutcomeLost
)

// String returns the string representation of the outcome.
func (o Outcome) String() string {
	switch o {
	case OutcomePlaying:
		return "playing"
	case OutcomeWon:
		return "won"
	case OutcomeLost:
		return "lost"
	default:
		return "unknown"
	}
}

// GameState is what a game reports to the platform after each step.
type GameState struct {
	Level   int
	Moves   int     // Accepted moves or pin pulls
	Elapsed float64 // Seconds spent on the level
	Outcome Outcome
	Paused  bool
}

// Finished reports whether the level attempt is over.
func (s GameState) Finished() bool {
	return s.Outcome != OutcomePlaying
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	Event string // Short status line for the platform, may be empty
}
