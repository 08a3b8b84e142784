package transition

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/settings"
)

// Transition is a single in-flight resolution of the next valid position of one object. It is
// acquired from a Pool and owned exclusively by the caller until it is released.
type Transition struct {
	ObjectInfo ObjectInfo
	Path       SpherePath
	Collision  CollisionInfo
	CellArray  CellList

	level int
	pool  *Pool
}

// reset clears the transition so that it can be reused by the next acquisition.
func (t *Transition) reset() {
	t.ObjectInfo = ObjectInfo{}
	t.Path = SpherePath{land: t.pool.land}
	t.Collision = CollisionInfo{}
	t.CellArray = CellList{}
}

// Level returns the depth at which the transition was acquired.
func (t *Transition) Level() int {
	return t.level
}

// Pool returns the pool the transition was acquired from, which nested resolutions acquire their own
// transitions from.
func (t *Transition) Pool() *Pool {
	return t.pool
}

func (t *Transition) settings() *settings.Settings {
	return &t.pool.settings
}

func (t *Transition) debugf(format string, args ...any) {
	if t.pool.debugf != nil {
		t.pool.debugf(format, args...)
	}
}

// InitObject sets the object that is moved and its movement state.
func (t *Transition) InitObject(obj Object, state ObjectState) {
	t.ObjectInfo.Object = obj
	t.ObjectInfo.State = state
	t.ObjectInfo.WalkableZ = t.settings().Physics.FloorZ
}

// InitSphere sets the bounding spheres of the moved object.
func (t *Transition) InitSphere(spheres []Sphere, scale float32) {
	t.Path.InitSphere(spheres, scale)
}

// InitPath sets the start and end of the motion. A nil begin position requests a placement at end.
func (t *Transition) InitPath(cell Cell, begin *Position, end Position) {
	t.Path.InitPath(cell, begin, end)
}

// InitContactPlane seeds both the active and the last known contact plane.
func (t *Transition) InitContactPlane(c Contact) {
	t.InitLastKnownContactPlane(c)
	t.Collision.SetContactPlane(c.Plane, c.CellID, c.IsWater)
}

// InitLastKnownContactPlane seeds the contact plane that is reinstated when a step fails.
func (t *Transition) InitLastKnownContactPlane(c Contact) {
	t.Collision.LastKnownContactPlaneValid = true
	t.Collision.LastKnownContactPlane = c.Plane
	t.Collision.LastKnownContactPlaneCellID = c.CellID
	t.Collision.LastKnownContactPlaneIsWater = c.IsWater
}

// InitSlidingNormal seeds the sliding normal with the horizontal part of normal.
func (t *Transition) InitSlidingNormal(normal mgl32.Vec3) {
	t.Collision.SetSlidingNormal(normal)
}

// InitStationaryFall seeds the stationary fall counter carried over from the previous tick.
func (t *Transition) InitStationaryFall(frames int) {
	t.Collision.FramesStationaryFall = frames
}

// FindValidPosition resolves the path, moving between its begin and end positions or placing the
// object at its end position depending on the insert type.
func (t *Transition) FindValidPosition() bool {
	if t.Path.InsertType == InsertTransition {
		return t.FindTransitionalPosition()
	}
	return t.FindPlacementPosition()
}

// BuildCellArray refreshes the list of cells the candidate spheres intersect.
func (t *Transition) BuildCellArray() CellList {
	t.Path.CellArrayValid = true
	t.Path.HitsInteriorCell = false
	t.CellArray = t.pool.cells.FindCellList(&t.Path)
	t.Path.HitsInteriorCell = t.CellArray.HitsInteriorCell
	return t.CellArray
}
