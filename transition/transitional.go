package transition

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

// FindTransitionalPosition moves the object from the begin towards the end position of the path in
// sub-steps, committing every step that is accepted. It returns true if the last step taken was
// accepted.
func (t *Transition) FindTransitionalPosition() bool {
	p, c := &t.Path, &t.Collision
	if p.BeginCell == nil {
		return false
	}
	s := t.settings()
	viewer := t.ObjectInfo.State.Has(IsViewer)
	freeRotate := t.ObjectInfo.State.Has(FreeRotate)

	offset, offsetPerStep, numSteps := t.CalcNumSteps()
	if viewer && numSteps > game.MaxViewerSteps {
		t.debugf("viewer motion of %.2f needs %d steps", offset.Len(), numSteps)
		return false
	}
	if freeRotate {
		p.CurPos.Frame.Orientation = p.EndPos.Frame.Orientation
	}
	p.SetCheckPos(p.CurPos, p.CurCell)

	if numSteps <= 0 {
		if !freeRotate {
			p.CurPos.Frame.Orientation = p.EndPos.Frame.Orientation
		}
		t.BuildCellArray()
		return true
	}

	state := StateOK
	for step := 0; step < numSteps; step++ {
		if viewer && step == numSteps-1 {
			if l := offset.Len(); l > s.Physics.Epsilon {
				// The final viewer step covers whatever the whole-radius steps left over.
				offsetPerStep = offset.Mul((l - p.LocalSphere[0].Radius*float32(numSteps-1)) / l)
			}
		}
		p.GlobalOffset = t.AdjustOffset(offsetPerStep)
		if !viewer && p.GlobalOffset.LenSqr() < s.Physics.Epsilon*s.Physics.Epsilon {
			return step != 0 && state == StateOK
		}
		if !freeRotate {
			delta := float32(step+1) / float32(numSteps)
			p.CheckPos.Frame.Orientation = interpolate(p.BeginPos.Frame, p.EndPos.Frame, delta)
		}

		c.SlidingNormalValid = false
		c.ClearContactPlane()

		if p.InsertType != InsertTransition {
			state = t.ValidatePlacementTransition(t.TransitionalInsert(s.Attempts.Insert))
			if state == StateOK {
				return true
			}
			if !p.PlacementAllowsSliding {
				return false
			}
			p.AddOffsetToCheckPos(p.GlobalOffset)
		} else {
			p.AddOffsetToCheckPos(p.GlobalOffset)
			state = t.ValidateTransition(t.TransitionalInsert(s.Attempts.Insert))
			if c.FramesStationaryFall > 0 {
				break
			}
		}
		if c.CollisionNormalValid && t.ObjectInfo.State.Has(PathClipped) {
			break
		}
	}
	return state == StateOK
}

// interpolate returns the orientation a fraction delta of the way from a to b.
func interpolate(a, b Frame, delta float32) mgl32.Quat {
	return mgl32.QuatNlerp(a.rotation(), b.rotation(), delta)
}
