package transition

import "github.com/go-gl/mathgl/mgl32"

// StepDown lowers the candidate position by height, unless a step up is in progress, and accepts
// the result if it rests on a plane with a normal Z of at least zVal.
func (t *Transition) StepDown(height, zVal float32) bool {
	p := &t.Path
	p.NegPolyHit = false
	p.StepDown = true
	p.StepDownAmt = height
	p.WalkInterp = 1

	if !p.StepUp {
		p.CellArrayValid = false
		p.CheckPos.Frame.Origin[2] -= height
		p.CacheGlobalSphere()
	}

	state := t.TransitionalInsert(t.settings().Attempts.StepDown)
	p.StepDown = false

	c := &t.Collision
	if state != StateOK || !c.ContactPlaneValid || c.ContactPlane.Normal.Z() < zVal {
		t.debugf("step down of %.4f failed (%v)", height, state)
		return false
	}
	if t.ObjectInfo.State.Has(EdgeSlide) && !p.StepUp && !t.CheckWalkable(zVal) {
		return false
	}

	// Make sure the landing spot does not leave the object embedded in geometry.
	p.Backup = p.InsertType
	p.InsertType = InsertPlacement
	state = t.TransitionalInsert(t.settings().Attempts.Revalidate)
	p.InsertType = p.Backup
	return state == StateOK
}

// StepUp tries to climb the obstruction with the given normal, restoring the candidate position if
// there is nothing to land on.
func (t *Transition) StepUp(normal mgl32.Vec3) bool {
	p := &t.Path
	t.Collision.ClearContactPlane()
	p.StepUp = true
	p.StepUpNormal = normal

	height := t.settings().Physics.DefaultStepDownHeight
	zVal := t.settings().Physics.LandingZ
	if t.ObjectInfo.State.Has(OnWalkable) {
		zVal = t.ObjectInfo.GetWalkableZ()
		height = t.ObjectInfo.StepUpHeight
	}
	p.WalkableAllowance = zVal
	p.SaveCheckPos()

	ok := t.StepDown(height, zVal)
	p.StepUp = false
	p.Walkable = nil
	if !ok {
		p.RestoreCheckPos()
	}
	return ok
}

// CheckWalkable reports whether walkable ground with a normal Z of at least zCheck lies within
// step-down reach of the candidate position. Objects that are not on a walkable surface always pass.
func (t *Transition) CheckWalkable(zCheck float32) bool {
	p := &t.Path
	if !t.ObjectInfo.State.Has(OnWalkable) || p.CheckWalkables() {
		return true
	}
	pos, cell := p.CheckPos, p.CheckCell

	height := t.ObjectInfo.StepDownHeight
	p.WalkableAllowance = zCheck
	p.CheckWalkable = true

	radius := p.GlobalSphere[0].Radius
	if p.NumSphere < 2 && height > radius*2 {
		height = radius * 0.5
	}
	if height > radius*2 {
		height *= 0.5
	}
	p.AddOffsetToCheckPos(mgl32.Vec3{0, 0, -height})

	state := t.TransitionalInsert(t.settings().Attempts.CheckWalkable)

	p.CheckWalkable = false
	p.SetCheckPos(pos, cell)
	return state != StateOK
}
