package transition

import "github.com/go-gl/mathgl/mgl32"

// ObjectInfo is the movement state of the object a transition moves.
type ObjectInfo struct {
	Object Object
	State  ObjectState

	StepUpHeight   float32
	StepDownHeight float32
	// StepDown is set for objects that are settled onto the ground after a placement. Such objects
	// skip ground-following during transitions.
	StepDown bool
	// WalkableZ is the minimum normal Z of a plane the object can stand on.
	WalkableZ float32
}

// GetWalkableZ ...
func (o *ObjectInfo) GetWalkableZ() float32 {
	return o.WalkableZ
}

// IsValidWalkable reports whether the object can stand on a plane with the given normal.
func (o *ObjectInfo) IsValidWalkable(normal mgl32.Vec3) bool {
	return normal.Z() >= o.WalkableZ
}

// StopVelocity zeroes the velocity of the moving object.
func (o *ObjectInfo) StopVelocity() {
	if o.Object != nil {
		o.Object.StopVelocity()
	}
}
