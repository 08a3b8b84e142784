package transition

// State is the outcome of a single insertion or validation step.
type State uint8

const (
	// StateInvalid means an insertion ran out of attempts before reaching a verdict.
	StateInvalid State = iota
	StateOK
	StateCollided
	StateAdjusted
	StateSlid
)

// String ...
func (s State) String() string {
	switch s {
	case StateOK:
		return "ok"
	case StateCollided:
		return "collided"
	case StateAdjusted:
		return "adjusted"
	case StateSlid:
		return "slid"
	default:
		return "invalid"
	}
}

// InsertType describes how strictly a candidate position is tested against cell geometry.
type InsertType uint8

const (
	// InsertTransition is used while moving an object between two positions.
	InsertTransition InsertType = iota
	// InsertPlacement is used while searching for a free spot around a fixed target.
	InsertPlacement
	// InsertInitialPlacement only establishes which cells a target position belongs to.
	InsertInitialPlacement
)

// ObjectState holds the movement flags of the object being moved.
type ObjectState uint16

const (
	OnWalkable ObjectState = 1 << iota
	FreeRotate
	EdgeSlide
	InContact
	IsViewer
	PathClipped
	Gravity
)

// Has reports whether every flag in f is set.
func (s ObjectState) Has(f ObjectState) bool {
	return s&f == f
}
