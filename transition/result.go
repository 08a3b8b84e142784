package transition

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/oerror"
)

// Mode defines how a request is resolved.
type Mode uint8

const (
	// ModeTransition moves the object from its begin position towards its end position.
	ModeTransition Mode = iota
	// ModePlacement places the object at its end position, such as when it spawns or teleports.
	ModePlacement
)

// Request describes the motion of one object for one tick.
type Request struct {
	Object Object
	State  ObjectState

	StepUpHeight   float32
	StepDownHeight float32
	StepDown       bool
	// WalkableZ overrides the walkable normal Z of the object if non-zero.
	WalkableZ float32

	Spheres []Sphere
	// Scale scales the spheres. Zero is treated as one.
	Scale float32

	Mode Mode
	// Cell is the cell of Begin in ModeTransition and of End in ModePlacement.
	Cell  Cell
	Begin Position
	End   Position
	// AllowSliding lets a placement search around End when End itself is blocked.
	AllowSliding bool

	// The fields below carry the collision state of the previous tick over.
	ContactPlane          *Contact
	LastKnownContactPlane *Contact
	SlidingNormal         *mgl32.Vec3
	StationaryFall        int
}

// Result is the outcome of resolving a Request.
type Result struct {
	// OK is true if the motion or placement succeeded. Position and Cell hold the last confirmed
	// position either way.
	OK       bool
	Position Position
	Cell     Cell
	State    ObjectState

	ContactPlane          *Contact
	LastKnownContactPlane *Contact
	CollisionNormal       *mgl32.Vec3
	SlidingNormal         *mgl32.Vec3

	StationaryFall          int
	CollidedWithEnvironment bool
}

// Resolve acquires a transition, resolves req with it and releases it again. It returns
// oerror.ErrDepthExceeded if the pool is exhausted, in which case the object cannot move this tick.
func (p *Pool) Resolve(req Request) (Result, error) {
	if req.Object == nil {
		return Result{}, oerror.ErrNilObject
	}
	if req.Cell == nil {
		return Result{}, oerror.ErrNoCell
	}
	if len(req.Spheres) == 0 {
		return Result{}, oerror.ErrNoSpheres
	}
	t := p.Acquire()
	if t == nil {
		return Result{}, oerror.ErrDepthExceeded
	}
	defer p.Release(t)

	t.Seed(req)
	ok := t.FindValidPosition()
	return t.Result(ok), nil
}

// Seed initialises a freshly acquired transition from req.
func (t *Transition) Seed(req Request) {
	t.InitObject(req.Object, req.State)
	t.ObjectInfo.StepUpHeight = req.StepUpHeight
	t.ObjectInfo.StepDownHeight = req.StepDownHeight
	t.ObjectInfo.StepDown = req.StepDown
	if req.WalkableZ != 0 {
		t.ObjectInfo.WalkableZ = req.WalkableZ
	}

	scale := req.Scale
	if scale == 0 {
		scale = 1
	}
	t.InitSphere(req.Spheres, scale)

	if req.Mode == ModePlacement {
		t.InitPath(req.Cell, nil, req.End)
		t.Path.PlacementAllowsSliding = req.AllowSliding
	} else {
		begin := req.Begin
		t.InitPath(req.Cell, &begin, req.End)
	}

	if req.LastKnownContactPlane != nil {
		t.InitLastKnownContactPlane(*req.LastKnownContactPlane)
	}
	if req.ContactPlane != nil {
		t.InitContactPlane(*req.ContactPlane)
	}
	if req.SlidingNormal != nil {
		t.InitSlidingNormal(*req.SlidingNormal)
	}
	t.InitStationaryFall(req.StationaryFall)
}

// Result reads the outcome of the transition back.
func (t *Transition) Result(ok bool) Result {
	c := &t.Collision
	res := Result{
		OK:                      ok,
		Position:                t.Path.CurPos,
		Cell:                    t.Path.CurCell,
		State:                   t.ObjectInfo.State,
		ContactPlane:            c.contact(),
		LastKnownContactPlane:   c.lastKnownContact(),
		StationaryFall:          c.FramesStationaryFall,
		CollidedWithEnvironment: c.CollidedWithEnvironment,
	}
	if c.CollisionNormalValid {
		n := c.CollisionNormal
		res.CollisionNormal = &n
	}
	if c.SlidingNormalValid {
		n := c.SlidingNormal
		res.SlidingNormal = &n
	}
	return res
}
