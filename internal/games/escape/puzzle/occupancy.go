package puzzle

// OccupancyKind classifies a destination cell.
type OccupancyKind int

const (
	Free         OccupancyKind = iota // Nothing in the way
	Blocked                           // Bounds, obstacle or closed gate
	PushRequired                      // A slider occupies the cell
	Interactable                      // A switch occupies the cell
)

// String returns the string representation of the kind.
func (k OccupancyKind) String() string {
	switch k {
	case Free:
		return "free"
	case Blocked:
		return "blocked"
	case PushRequired:
		return "push_required"
	case Interactable:
		return "interactable"
	default:
		return "unknown"
	}
}

// Occupancy is the classification of one cell.
type Occupancy struct {
	Kind        OccupancyKind
	Reason      string // Set when Kind is Blocked
	MechanismID string // Set for PushRequired and Interactable
}

type cellEntry struct {
	kind   OccupancyKind
	reason string
	id     string
}

// OccupancyIndex merges obstacles, closed gates, sliders and switches into a
// single per-cell lookup. It is a snapshot: rebuild it after any change to
// the mechanism list.
type OccupancyIndex struct {
	width  int
	height int
	cells  map[Position]cellEntry
}

// NewOccupancyIndex builds an index for the level and mechanism layout.
// Precedence per cell follows IsValidMove: obstacles win over gates, gates
// over sliders and switches.
func NewOccupancyIndex(level *LevelConfig, mechanisms []Mechanism) *OccupancyIndex {
	idx := &OccupancyIndex{
		width:  level.Width,
		height: level.Height,
		cells:  make(map[Position]cellEntry),
	}

	// Lowest precedence first; later writes override.
	for _, m := range mechanisms {
		switch m.Kind {
		case KindSwitch:
			idx.put(m.Anchor(), cellEntry{kind: Interactable, id: m.ID})
		case KindSlider:
			for _, c := range m.Footprint() {
				idx.put(c, cellEntry{kind: PushRequired, id: m.ID})
			}
		}
	}
	for _, m := range mechanisms {
		if m.Kind == KindGate && m.Active {
			for _, c := range m.Footprint() {
				idx.put(c, cellEntry{kind: Blocked, reason: ReasonGateClosed, id: m.ID})
			}
		}
	}
	for _, o := range level.Obstacles {
		w, h := max(o.Width, 1), max(o.Height, 1)
		for y := o.Y; y < o.Y+h; y++ {
			for x := o.X; x < o.X+w; x++ {
				idx.put(P(x, y), cellEntry{kind: Blocked, reason: ReasonObstacle})
			}
		}
	}

	return idx
}

func (idx *OccupancyIndex) put(pos Position, e cellEntry) {
	idx.cells[pos] = e
}

// Classify returns the occupancy of pos.
func (idx *OccupancyIndex) Classify(pos Position) Occupancy {
	if !IsInBounds(pos, idx.width, idx.height) {
		return Occupancy{Kind: Blocked, Reason: ReasonOutOfBounds}
	}
	e, ok := idx.cells[pos]
	if !ok {
		return Occupancy{Kind: Free}
	}
	occ := Occupancy{Kind: e.kind, Reason: e.reason}
	if e.kind == PushRequired || e.kind == Interactable {
		occ.MechanismID = e.id
	}
	return occ
}

// Classify is a one-shot helper that builds an index and classifies pos.
func Classify(pos Position, level *LevelConfig, mechanisms []Mechanism) Occupancy {
	return NewOccupancyIndex(level, mechanisms).Classify(pos)
}
