package transition

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

// AdjustOffset constrains offset to the active sliding normal and contact plane. Without either the
// offset is returned unchanged.
func (t *Transition) AdjustOffset(offset mgl32.Vec3) mgl32.Vec3 {
	c := &t.Collision
	if c.SlidingNormalValid {
		angle := offset.Dot(c.SlidingNormal)
		offset = offset.Sub(c.SlidingNormal.Mul(angle))
		if angle >= 0 {
			// Moving away from the obstruction, the normal no longer applies to the next step.
			c.SlidingNormalValid = false
		}
	}
	if !c.ContactPlaneValid {
		return offset
	}

	if c.SlidingNormalValid {
		edge := c.ContactPlane.Normal.Cross(c.SlidingNormal)
		if !game.NormalizeCheckSmall(&edge) {
			offset = edge.Mul(edge.Dot(offset))
		} else {
			offset = mgl32.Vec3{}
		}
	} else if c.ContactPlane.Normal.Dot(offset) <= 0 {
		offset = c.ContactPlane.SnapToPlane(offset)
	}

	if c.ContactPlaneCellID == 0 || c.ContactPlaneIsWater || c.ContactPlaneCellID == t.Path.CheckPos.CellID {
		return offset
	}

	// The plane belongs to another cell: make sure the sphere is not recorded as sinking below it.
	sphere := t.Path.GlobalSphere[0]
	blockOffset := t.Path.landscape().BlockOffset(t.Path.CheckPos.CellID, c.ContactPlaneCellID)
	dist := c.ContactPlane.Distance(sphere.Center.Sub(blockOffset))
	if dist >= sphere.Radius-t.settings().Physics.Epsilon {
		return offset
	}
	if zDist := (sphere.Radius - dist) / c.ContactPlane.Normal.Z(); sphere.Radius > math32.Abs(zDist) {
		offset[2] += zDist
	}
	return offset
}

// CalcNumSteps splits the motion between the begin and end positions into sub-steps no longer than
// the radius of the first sphere. Viewer controlled objects always take a whole amount of
// radius-length steps followed by a final step covering the remainder.
func (t *Transition) CalcNumSteps() (offset, offsetPerStep mgl32.Vec3, numSteps int) {
	p := &t.Path
	if !p.HasBegin {
		return mgl32.Vec3{}, mgl32.Vec3{}, 1
	}
	offset = t.positionOffset(p.BeginPos, p.EndPos)
	dist := offset.Len()
	step := dist / p.LocalSphere[0].Radius

	if !t.ObjectInfo.State.Has(IsViewer) {
		switch {
		case step > 1:
			numSteps = int(math32.Ceil(step))
			offsetPerStep = offset.Mul(1 / float32(numSteps))
		case offset != (mgl32.Vec3{}):
			offsetPerStep, numSteps = offset, 1
		}
		return offset, offsetPerStep, numSteps
	}

	if dist < t.settings().Physics.Epsilon {
		return offset, mgl32.Vec3{}, 0
	}
	return offset, offset.Mul(1 / step), int(math32.Floor(step)) + 1
}

// positionOffset returns the displacement from a to b.
func (t *Transition) positionOffset(a, b Position) mgl32.Vec3 {
	return t.Path.landscape().BlockOffset(a.CellID, b.CellID).Add(b.Frame.Origin).Sub(a.Frame.Origin)
}
