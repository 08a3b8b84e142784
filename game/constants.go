package game

const (
	// Epsilon is the tolerance used for plane contact, offset length and penetration checks.
	Epsilon = float32(0.0002)
	// LandingZ is the minimum normal Z of a plane an object is allowed to land on.
	LandingZ = float32(0.0871557)
	// FloorZ is the default minimum normal Z of a walkable plane.
	FloorZ = float32(0.66417414)
	// DefaultStepDownHeight is used by ground-following and step-ups of objects that are not on a
	// walkable surface.
	DefaultStepDownHeight = float32(0.04)

	// MaxTransitionDepth is the maximum amount of nested transitions that may be in flight at once.
	MaxTransitionDepth = 10
	// MaxSpheres is the maximum amount of bounding spheres a path may carry.
	MaxSpheres = 2

	InsertAttempts     = 3
	StepDownAttempts   = 5
	CheckWalkableTries = 1
	RevalidateAttempts = 1

	PlacementSearchDistance = float32(4.0)
	SmallSphereRadius       = float32(0.125)
	MinSearchRadius         = float32(0.48)

	// MaxViewerSteps is the upper bound on sub-steps a viewer controlled object may take.
	MaxViewerSteps = 1000
	// StationaryFallLimit is the amount of consecutive stationary falling ticks before a synthetic
	// contact plane is installed.
	StationaryFallLimit = 3
)
