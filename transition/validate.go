package transition

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/game"
)

// SetCurrentCheckPos commits the candidate position as the current position.
func (t *Transition) SetCurrentCheckPos() {
	p := &t.Path
	p.CurPos = p.CheckPos
	p.CurCell = p.CheckCell
	p.CacheGlobalCurrCenter()
	p.SetCheckPos(p.CurPos, p.CurCell)
}

// ValidatePlacement commits an accepted placement. Adjusted positions are inserted once more if
// adjust is true.
func (t *Transition) ValidatePlacement(state State, adjust bool) State {
	p := &t.Path
	if p.CheckCell == nil {
		return StateCollided
	}
	switch state {
	case StateOK:
		p.CurPos = p.CheckPos
		p.CurCell = p.CheckCell
		p.CacheGlobalCurrCenter()
	case StateAdjusted, StateSlid:
		if adjust {
			return t.ValidatePlacement(t.PlacementInsert(), false)
		}
	}
	return state
}

// ValidatePlacementTransition commits an accepted placement candidate. Rejected candidates clear the
// collision state when the placement may slide, so that the next candidate starts fresh.
func (t *Transition) ValidatePlacementTransition(state State) State {
	p := &t.Path
	if p.CheckCell == nil {
		return StateCollided
	}
	switch state {
	case StateOK:
		p.CurPos = p.CheckPos
		p.CurCell = p.CheckCell
		p.CacheGlobalCurrCenter()
	case StateCollided, StateAdjusted, StateSlid:
		if p.PlacementAllowsSliding {
			t.Collision.Init()
		}
	}
	return state
}

// ValidateTransition accepts or rejects the candidate position of a transitional step and carries
// the contact state over to the next step.
func (t *Transition) ValidateTransition(state State) State {
	p, c := &t.Path, &t.Collision
	epsilon := t.settings().Physics.Epsilon

	// redo is set only when a stalled step falls back on the last known contact plane. Starting it
	// out set would count every committed step of a falling object as resting.
	redo := false
	if state != StateOK || p.CheckPos.Equal(p.CurPos) {
		switch state {
		case StateOK:
			t.SetCurrentCheckPos()
		case StateInvalid:
		default:
			if c.LastKnownContactPlaneValid {
				t.ObjectInfo.StopVelocity()
				center := p.GlobalCurrCenter[0].Sub(p.landscape().BlockOffset(p.CurPos.CellID, c.LastKnownContactPlaneCellID))
				if dist := c.LastKnownContactPlane.Distance(center); p.GlobalSphere[0].Radius+epsilon > math32.Abs(dist) {
					c.SetContactPlane(c.LastKnownContactPlane, c.LastKnownContactPlaneCellID, c.LastKnownContactPlaneIsWater)
					if t.ObjectInfo.State.Has(OnWalkable) {
						redo = true
					}
				}
			}
			if !c.CollisionNormalValid {
				c.SetCollisionNormal(mgl32.Vec3{0, 0, 1})
			}
			p.SetCheckPos(p.CurPos, p.CurCell)
			t.BuildCellArray()
			state = StateOK
		}
	} else {
		t.SetCurrentCheckPos()
	}

	if c.CollisionNormalValid {
		c.SetSlidingNormal(c.CollisionNormal)
	}

	if !t.ObjectInfo.State.Has(IsViewer) && t.ObjectInfo.State.Has(Gravity) {
		t.updateStationaryFall(redo)
	}

	c.LastKnownContactPlaneValid = c.ContactPlaneValid
	if !c.ContactPlaneValid {
		t.ObjectInfo.State &^= InContact | OnWalkable
		return state
	}
	c.LastKnownContactPlane = c.ContactPlane
	c.LastKnownContactPlaneCellID = c.ContactPlaneCellID
	c.LastKnownContactPlaneIsWater = c.ContactPlaneIsWater

	t.ObjectInfo.State |= InContact
	if t.ObjectInfo.IsValidWalkable(c.ContactPlane.Normal) {
		t.ObjectInfo.State |= OnWalkable
	} else {
		t.ObjectInfo.State &^= OnWalkable
	}
	return state
}

// updateStationaryFall advances the stationary fall counter. An object under gravity that keeps
// resting without fresh contact for long enough gets a flat contact plane under its first sphere.
func (t *Transition) updateStationaryFall(redo bool) {
	p, c := &t.Path, &t.Collision
	switch {
	case !redo:
		// Committed moves never count as resting, so only consecutive stalls reach the limit.
		c.FramesStationaryFall = 0
	case c.FramesStationaryFall == 0:
		c.FramesStationaryFall = 1
	case c.FramesStationaryFall == 1:
		c.FramesStationaryFall = 2
	default:
		c.FramesStationaryFall = game.StationaryFallLimit

		up := mgl32.Vec3{0, 0, 1}
		sphere := p.GlobalSphere[0]
		c.SetContactPlane(game.Plane{Normal: up, D: sphere.Radius - sphere.Center.Z()}, p.CheckPos.CellID, false)
		if !t.ObjectInfo.State.Has(InContact) {
			c.SetCollisionNormal(up)
			c.CollidedWithEnvironment = true
		}
		t.debugf("installed stationary fall contact plane at z=%.4f", sphere.Center.Z()-sphere.Radius)
	}
}
