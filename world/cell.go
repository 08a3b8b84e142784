package world

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
	"github.com/oomph-ac/motion/transition"
)

// Cell is one square cell of a World. All of its boxes are stored relative to its origin.
type Cell struct {
	id     uint32
	world  *World
	solids []cube.BBox
}

// ID ...
func (c *Cell) ID() uint32 {
	return c.id
}

// Solids returns the boxes of the cell, relative to its origin.
func (c *Cell) Solids() []cube.BBox {
	c.world.RLock()
	s := c.solids
	c.world.RUnlock()
	return s
}

// FindCollisions tests the candidate spheres of t against the boxes of the cell.
func (c *Cell) FindCollisions(t *transition.Transition) transition.State {
	p := &t.Path
	if p.NumSphere == 0 || p.InsertType == transition.InsertInitialPlacement {
		return transition.StateOK
	}

	q := query{
		cell:   c,
		t:      t,
		solids: c.Solids(),
		offset: c.world.BlockOffset(p.CheckPos.CellID, c.id),
	}
	switch {
	case p.CheckWalkable:
		return q.probeWalkable()
	case p.StepDown:
		return q.stepSphereDown()
	case p.InsertType == transition.InsertPlacement:
		return q.placeSphere()
	}
	return q.collideSphere()
}

// query is a single collision test of a transition against a cell.
type query struct {
	cell   *Cell
	t      *transition.Transition
	solids []cube.BBox
	// offset converts candidate positions into the cell: local = candidate - offset.
	offset mgl32.Vec3
}

func (q query) sphere(i int) (mgl32.Vec3, float32) {
	s := q.t.Path.GlobalSphere[i]
	return s.Center.Sub(q.offset), s.Radius
}

// penetration returns the deepest overlap between a candidate sphere and the boxes of the cell.
func (q query) penetration() (box cube.BBox, normal mgl32.Vec3, depth float32, found bool) {
	for i := 0; i < q.t.Path.NumSphere; i++ {
		centre, radius := q.sphere(i)
		for _, b := range q.solids {
			n, d := game.SpherePenetration(b, centre, radius)
			if d > game.Epsilon && (!found || d > depth) {
				box, normal, depth, found = b, n, d, true
			}
		}
	}
	return
}

// rest records the top face of b as the surface the path stands on.
func (q query) rest(b cube.BBox) {
	top := b.Max().Z()
	q.t.Collision.SetContactPlane(game.NewPlane(mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 0, top}), q.cell.id, false)
	q.t.Path.SetWalkable(ledge{box: b}, q.cell.id)
}

// touch looks for a top face the first sphere rests on without sinking into it.
func (q query) touch() {
	centre, radius := q.sphere(0)
	bottom := centre.Z() - radius
	for _, b := range q.solids {
		if !game.FootprintContains(b, centre) {
			continue
		}
		if top := b.Max().Z(); bottom >= top-game.Epsilon && bottom <= top+game.Epsilon {
			q.rest(b)
			return
		}
	}
}

func (q query) collideSphere() transition.State {
	t, p := q.t, &q.t.Path
	b, n, depth, ok := q.penetration()
	if !ok {
		q.touch()
		return transition.StateOK
	}

	if n.Z() >= t.ObjectInfo.GetWalkableZ() {
		p.AddOffsetToCheckPos(n.Mul(depth))
		if n.Z() >= 1-game.Epsilon {
			q.rest(b)
		} else {
			centre, _ := q.sphere(0)
			t.Collision.SetContactPlane(game.NewPlane(n, game.ClosestPoint(b, centre)), q.cell.id, false)
		}
		return transition.StateAdjusted
	}

	if n.Z() > -game.Epsilon && t.ObjectInfo.State.Has(transition.OnWalkable) && !p.StepUp {
		if t.StepUp(n) {
			return transition.StateOK
		}
		return t.StepUpSlide()
	}
	return t.SlideSphere(n, p.GlobalCurrCenter[0])
}

// stepSphereDown lifts the first sphere onto the highest top face within step reach of its bottom.
// While stepping up the sphere only has to overlap the face, otherwise its centre must be above it.
func (q query) stepSphereDown() transition.State {
	p := &q.t.Path
	centre, radius := q.sphere(0)
	bottom := centre.Z() - radius

	var (
		best  cube.BBox
		found bool
	)
	for _, b := range q.solids {
		if p.StepUp {
			if closest := game.ClosestPoint(b, centre); closest.Sub(centre).Vec2().Len() >= radius {
				continue
			}
		} else if !game.FootprintContains(b, centre) {
			continue
		}
		top := b.Max().Z()
		if top < bottom-game.Epsilon || top > bottom+p.StepDownAmt+game.Epsilon {
			continue
		}
		if !found || top > best.Max().Z() {
			best, found = b, true
		}
	}

	state := transition.StateOK
	if found {
		if lift := best.Max().Z() - bottom; lift > game.Epsilon || lift < -game.Epsilon {
			p.AddOffsetToCheckPos(mgl32.Vec3{0, 0, lift})
			state = transition.StateAdjusted
		}
	}
	if _, _, _, blocked := q.penetration(); blocked {
		return transition.StateCollided
	}
	if found {
		q.rest(best)
	}
	return state
}

// placeSphere rejects candidate positions that sink into a box.
func (q query) placeSphere() transition.State {
	if _, _, _, blocked := q.penetration(); blocked {
		return transition.StateCollided
	}
	q.touch()
	return transition.StateOK
}

// probeWalkable reports a collision as soon as the lowered sphere reaches walkable ground.
func (q query) probeWalkable() transition.State {
	allowance := q.t.Path.WalkableAllowance
	for i := 0; i < q.t.Path.NumSphere; i++ {
		centre, radius := q.sphere(i)
		for _, b := range q.solids {
			if n, d := game.SpherePenetration(b, centre, radius); d > -game.Epsilon && n.Z() >= allowance {
				return transition.StateCollided
			}
		}
	}
	return transition.StateOK
}

// ledge is the top face of a box, acting as the walkable surface of a path.
type ledge struct {
	box cube.BBox
}

// Supports ...
func (l ledge) Supports(centre mgl32.Vec3, radius float32) bool {
	if !game.FootprintContains(l.box, centre) {
		return false
	}
	bottom, top := centre.Z()-radius, l.box.Max().Z()
	return bottom >= top-game.Epsilon && bottom <= top+radius
}

// CrossedEdge returns the outward normal of the side of the face that centre has moved the furthest
// past.
func (l ledge) CrossedEdge(centre mgl32.Vec3) (mgl32.Vec3, bool) {
	if game.FootprintContains(l.box, centre) {
		return mgl32.Vec3{}, false
	}
	min, max := l.box.Min(), l.box.Max()
	sides := [4]struct {
		n mgl32.Vec3
		d float32
	}{
		{mgl32.Vec3{1, 0, 0}, centre.X() - max.X()},
		{mgl32.Vec3{-1, 0, 0}, min.X() - centre.X()},
		{mgl32.Vec3{0, 1, 0}, centre.Y() - max.Y()},
		{mgl32.Vec3{0, -1, 0}, min.Y() - centre.Y()},
	}
	best := sides[0]
	for _, s := range sides[1:] {
		if s.d > best.d {
			best = s
		}
	}
	return best.n, true
}
