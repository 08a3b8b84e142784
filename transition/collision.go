package transition

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

// Contact is a plane touching a path's spheres along with the cell it is expressed in.
type Contact struct {
	Plane   game.Plane
	CellID  uint32
	IsWater bool
}

// CollisionInfo is the collision state of a transition.
type CollisionInfo struct {
	ContactPlaneValid   bool
	ContactPlane        game.Plane
	ContactPlaneCellID  uint32
	ContactPlaneIsWater bool

	// The last known contact plane survives failed steps so that contact can be reinstated.
	LastKnownContactPlaneValid   bool
	LastKnownContactPlane        game.Plane
	LastKnownContactPlaneCellID  uint32
	LastKnownContactPlaneIsWater bool

	SlidingNormalValid bool
	SlidingNormal      mgl32.Vec3

	CollisionNormalValid bool
	CollisionNormal      mgl32.Vec3

	// FramesStationaryFall counts consecutive steps an object under gravity spent without moving.
	FramesStationaryFall    int
	CollidedWithEnvironment bool
}

// Init clears all collision state.
func (c *CollisionInfo) Init() {
	*c = CollisionInfo{}
}

// SetContactPlane makes plane the active contact plane.
func (c *CollisionInfo) SetContactPlane(plane game.Plane, cellID uint32, isWater bool) {
	c.ContactPlaneValid = true
	c.ContactPlane = plane
	c.ContactPlaneCellID = cellID
	c.ContactPlaneIsWater = isWater
}

// ClearContactPlane invalidates the active contact plane.
func (c *CollisionInfo) ClearContactPlane() {
	c.ContactPlaneValid = false
	c.ContactPlaneIsWater = false
}

// SetCollisionNormal records normal as the collision normal. Normals too short to normalize are
// stored as zero.
func (c *CollisionInfo) SetCollisionNormal(normal mgl32.Vec3) {
	c.CollisionNormalValid = true
	c.CollisionNormal = normal
	if game.NormalizeCheckSmall(&c.CollisionNormal) {
		c.CollisionNormal = mgl32.Vec3{}
	}
}

// SetSlidingNormal records the horizontal part of normal as the sliding normal.
func (c *CollisionInfo) SetSlidingNormal(normal mgl32.Vec3) {
	c.SlidingNormalValid = true
	c.SlidingNormal = mgl32.Vec3{normal.X(), normal.Y(), 0}
	if game.NormalizeCheckSmall(&c.SlidingNormal) {
		c.SlidingNormal = mgl32.Vec3{}
	}
}

func (c *CollisionInfo) contact() *Contact {
	if !c.ContactPlaneValid {
		return nil
	}
	return &Contact{Plane: c.ContactPlane, CellID: c.ContactPlaneCellID, IsWater: c.ContactPlaneIsWater}
}

func (c *CollisionInfo) lastKnownContact() *Contact {
	if !c.LastKnownContactPlaneValid {
		return nil
	}
	return &Contact{Plane: c.LastKnownContactPlane, CellID: c.LastKnownContactPlaneCellID, IsWater: c.LastKnownContactPlaneIsWater}
}
