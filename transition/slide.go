package transition

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

// SlideSphere slides the first candidate sphere along an obstruction with the given normal, relative
// to currCenter, the centre of the sphere at the current position. A zero normal moves the candidate
// halfway back towards currCenter.
func (t *Transition) SlideSphere(normal, currCenter mgl32.Vec3) State {
	p, c := &t.Path, &t.Collision
	if normal == (mgl32.Vec3{}) {
		p.AddOffsetToCheckPos(currCenter.Sub(p.GlobalSphere[0].Center).Mul(0.5))
		return StateAdjusted
	}
	c.SetCollisionNormal(normal)

	contact := c.LastKnownContactPlane
	if c.ContactPlaneValid {
		contact = c.ContactPlane
	}
	epsilon := t.settings().Physics.Epsilon
	blockOffset := p.landscape().BlockOffset(p.CurPos.CellID, p.CheckPos.CellID)
	displacement := p.GlobalSphere[0].Center.Sub(currCenter).Add(blockOffset)

	direction := normal.Cross(contact.Normal)
	if lenSq := direction.LenSqr(); lenSq >= epsilon {
		// Keep only the motion along the crease of the obstruction and the contact plane.
		offset := direction.Mul(direction.Dot(displacement) / lenSq)
		if offset.LenSqr() < epsilon {
			return StateCollided
		}
		p.AddOffsetToCheckPos(offset.Sub(displacement))
		return StateSlid
	}
	if normal.Dot(contact.Normal) >= 0 {
		p.AddOffsetToCheckPos(normal.Mul(-normal.Dot(displacement)))
		return StateSlid
	}
	p.AddOffsetToCheckPos(displacement.Mul(-1))
	return StateOK
}

// StepUpSlide slides along the obstruction a failed step up was attempted against.
func (t *Transition) StepUpSlide() State {
	t.Collision.ClearContactPlane()
	t.Path.StepUp = false
	return t.SlideSphere(t.Path.StepUpNormal, t.Path.GlobalCurrCenter[0])
}

// PrecipiceSlide slides along the edge of the recorded walkable surface that the candidate position
// has moved past.
func (t *Transition) PrecipiceSlide() State {
	p := &t.Path
	walkable := p.Walkable
	p.Walkable = nil
	if walkable == nil {
		return StateCollided
	}
	normal, ok := walkable.CrossedEdge(p.toWalkable(p.GlobalSphere[0].Center))
	if !ok {
		return StateCollided
	}
	p.StepUp = false

	// The edge normal must oppose the motion so that the slide keeps the object on the surface.
	if normal.Dot(p.displacement()) > 0 {
		normal = normal.Mul(-1)
	}
	return t.SlideSphere(normal, p.GlobalCurrCenter[0])
}

// CliffSlide moves the candidate position sideways along the crease between plane and the last known
// contact plane, recording the horizontal slide direction as the collision normal.
func (t *Transition) CliffSlide(plane game.Plane) State {
	p, c := &t.Path, &t.Collision
	crease := plane.Normal.Cross(c.LastKnownContactPlane.Normal)
	normal := mgl32.Vec3{-crease.Y(), crease.X(), 0}
	if game.NormalizeCheckSmall(&normal) {
		return StateAdjusted
	}

	angle := normal.Dot(p.displacement())
	if angle <= 0 {
		p.AddOffsetToCheckPos(normal.Mul(angle))
		c.SetCollisionNormal(normal)
	} else {
		p.AddOffsetToCheckPos(normal.Mul(-angle))
		c.SetCollisionNormal(normal.Mul(angle))
	}
	return StateAdjusted
}
