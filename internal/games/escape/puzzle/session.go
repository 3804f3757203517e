package puzzle

// Session-level rejection reasons, in addition to the IsValidMove reasons.
const (
	ReasonFinished     = "finished"
	ReasonSliderStuck  = "slider_stuck"
	ReasonNoMovement   = "no_movement"
	ReasonStillBlocked = "still_blocked"
)

// Interaction actions.
const (
	ActionPush   = "push"
	ActionToggle = "toggle"
)

// Rules controls which optional level limits a session enforces.
type Rules struct {
	EnforceMoveLimit bool
	EnforceTimeLimit bool
	AllowUndo        bool
	MaxUndo          int // 0 = unlimited
}

// DefaultRules enforces the move limit and allows unlimited undo.
func DefaultRules() Rules {
	return Rules{
		EnforceMoveLimit: true,
		AllowUndo:        true,
	}
}

// MoveOutcome describes what a Session.Move did.
type MoveOutcome struct {
	Accepted   bool
	Reason     string // Rejection reason when not accepted
	PushReason string // TryPushSlider diagnostic when Reason is slider_stuck
	Pushed     string // ID of the slider pushed, if any
	Toggled    string // ID of the switch triggered, if any
	Completed  bool
	Failed     bool
}

type snapshot struct {
	player     Position
	mechanisms []Mechanism
	moves      int
	history    int
	states     map[string]any
}

// Session owns the mutable play state of one level and applies the move
// contract: classify the destination, push sliders, trigger switches,
// re-check and commit.
type Session struct {
	level      *LevelConfig
	rules      Rules
	mechanisms []Mechanism
	state      GameState
	undo       []snapshot
	tick       uint64
}

// NewSession starts a session on the level.
func NewSession(level *LevelConfig, rules Rules) *Session {
	s := &Session{level: level, rules: rules}
	s.Restart()
	return s
}

// Restart discards all progress and returns to the level's initial layout.
func (s *Session) Restart() {
	s.mechanisms = s.level.CloneMechanisms()
	s.state = InitializeGameState(s.level)
	s.undo = nil
	s.tick = 0
}

// Level returns the level being played.
func (s *Session) Level() *LevelConfig {
	return s.level
}

// State returns the current game state.
func (s *Session) State() GameState {
	return s.state
}

// Mechanisms returns a copy of the current mechanism layout.
func (s *Session) Mechanisms() []Mechanism {
	out := make([]Mechanism, len(s.mechanisms))
	copy(out, s.mechanisms)
	return out
}

// MovesLeft returns the remaining moves, or -1 when the level has no limit.
func (s *Session) MovesLeft() int {
	if s.level.MoveLimit <= 0 {
		return -1
	}
	return max(s.level.MoveLimit-s.state.Moves, 0)
}

// Finished reports whether the level is completed or failed.
func (s *Session) Finished() bool {
	return s.state.Completed || s.state.Failed
}

// Move attempts to move the player by (dx, dy).
func (s *Session) Move(dx, dy int) MoveOutcome {
	if s.Finished() {
		return s.reject(ReasonFinished)
	}
	if dx == 0 && dy == 0 {
		return s.reject(ReasonNoMovement)
	}

	from := s.state.PlayerPosition
	to := from.Add(dx, dy)
	mechanisms := s.mechanisms
	out := MoveOutcome{}

	occ := NewOccupancyIndex(s.level, mechanisms).Classify(to)
	switch occ.Kind {
	case Blocked:
		return s.reject(occ.Reason)

	case PushRequired:
		i := FindMechanism(mechanisms, occ.MechanismID)
		if i < 0 {
			return s.reject(ReasonStillBlocked)
		}
		res := TryPushSlider(from, to, mechanisms[i], s.level, mechanisms)
		if !res.Success {
			o := s.reject(ReasonSliderStuck)
			o.PushReason = res.Reason
			return o
		}
		pushed := make([]Mechanism, len(mechanisms))
		copy(pushed, mechanisms)
		pushed[i].X = res.NewSliderPos.X
		pushed[i].Y = res.NewSliderPos.Y

		// The player's own destination must be clear in the new layout.
		if check := IsValidMove(from, to, s.level, pushed); !check.Valid {
			return s.reject(check.Reason)
		}
		if again := NewOccupancyIndex(s.level, pushed).Classify(to); again.Kind == Blocked || again.Kind == PushRequired {
			return s.reject(ReasonStillBlocked)
		}
		mechanisms = pushed
		out.Pushed = occ.MechanismID

	case Interactable:
		out.Toggled = occ.MechanismID
	}

	s.pushUndo()

	record := MoveRecord{From: from, To: to, Tick: s.tick}
	if out.Pushed != "" {
		record.Interaction = &Interaction{MechanismID: out.Pushed, Action: ActionPush}
	}
	if out.Toggled != "" {
		if i := FindMechanism(mechanisms, out.Toggled); i >= 0 {
			sw := mechanisms[i]
			mechanisms = TriggerSwitch(sw, mechanisms)
			s.recordToggle(mechanisms, sw)
		}
		record.Interaction = &Interaction{MechanismID: out.Toggled, Action: ActionToggle}
	}

	s.mechanisms = mechanisms
	s.state.PlayerPosition = to
	s.state.Moves++
	s.state.MoveHistory = append(s.state.MoveHistory, record)

	if HasReachedGoal(to, s.level.Goal) {
		s.state.Completed = true
	} else if s.rules.EnforceMoveLimit && s.level.MoveLimit > 0 && s.state.Moves >= s.level.MoveLimit {
		s.state.Failed = true
	}

	out.Accepted = true
	out.Completed = s.state.Completed
	out.Failed = s.state.Failed
	return out
}

// recordToggle stores the post-toggle states of a switch and its link.
func (s *Session) recordToggle(mechanisms []Mechanism, sw Mechanism) {
	states := make(map[string]any, len(s.state.MechanismStates)+2)
	for k, v := range s.state.MechanismStates {
		states[k] = v
	}
	for _, id := range []string{sw.ID, sw.LinkedTo} {
		if i := FindMechanism(mechanisms, id); i >= 0 {
			states[id] = mechanisms[i].Active
		}
	}
	s.state.MechanismStates = states
}

func (s *Session) reject(reason string) MoveOutcome {
	return MoveOutcome{
		Reason:    reason,
		Completed: s.state.Completed,
		Failed:    s.state.Failed,
	}
}

func (s *Session) pushUndo() {
	if !s.rules.AllowUndo {
		return
	}
	s.undo = append(s.undo, snapshot{
		player:     s.state.PlayerPosition,
		mechanisms: s.mechanisms,
		moves:      s.state.Moves,
		history:    len(s.state.MoveHistory),
		states:     s.state.MechanismStates,
	})
	if s.rules.MaxUndo > 0 && len(s.undo) > s.rules.MaxUndo {
		s.undo = s.undo[len(s.undo)-s.rules.MaxUndo:]
	}
}

// CanUndo reports whether there is a move to take back.
func (s *Session) CanUndo() bool {
	return s.rules.AllowUndo && len(s.undo) > 0
}

// Undo reverts the last accepted move, including any push or toggle.
// Returns false when there is nothing to undo.
func (s *Session) Undo() bool {
	if !s.CanUndo() {
		return false
	}
	snap := s.undo[len(s.undo)-1]
	s.undo = s.undo[:len(s.undo)-1]

	s.mechanisms = snap.mechanisms
	s.state.PlayerPosition = snap.player
	s.state.Moves = snap.moves
	s.state.MoveHistory = s.state.MoveHistory[:snap.history]
	s.state.MechanismStates = snap.states
	s.state.Completed = false
	s.state.Failed = false
	return true
}

// Tick advances the session clock by the given number of seconds.
// It fails the level when an enforced time limit runs out.
func (s *Session) Tick(seconds float64) {
	s.tick++
	if s.Finished() {
		return
	}
	s.state.TimeElapsed += seconds
	if s.rules.EnforceTimeLimit && s.level.TimeLimit > 0 &&
		s.state.TimeElapsed >= float64(s.level.TimeLimit) {
		s.state.Failed = true
	}
}
