package transition

// InsertIntoCell runs the collision test of cell up to attempts times, stopping at the first
// definite verdict. Running out of attempts while the cell keeps adjusting the candidate position is
// treated as success.
func (t *Transition) InsertIntoCell(cell Cell, attempts int) State {
	if cell == nil {
		return StateCollided
	}
	for i := 0; i < attempts; i++ {
		switch state := cell.FindCollisions(t); state {
		case StateOK, StateCollided:
			return state
		case StateSlid:
			t.Collision.ClearContactPlane()
		}
	}
	return StateOK
}

// CheckOtherCells tests every other cell the candidate spheres intersect and moves the candidate
// position into the cell it has entered.
func (t *Transition) CheckOtherCells(curr Cell) State {
	p := &t.Path
	list := t.BuildCellArray()

	for _, cell := range list.Cells {
		if cell == nil || (curr != nil && cell.ID() == curr.ID()) {
			continue
		}
		switch state := cell.FindCollisions(t); state {
		case StateSlid:
			t.Collision.ClearContactPlane()
			return state
		case StateCollided, StateAdjusted:
			return state
		}
	}

	entered := list.Entered()
	p.CheckCell = entered
	if entered != nil {
		p.AdjustCheckPos(entered.ID())
		return StateOK
	}
	if p.StepDown {
		return StateCollided
	}

	pos, cell, ok := p.landscape().AdjustToOutside(p.CheckPos)
	if !ok || cell == nil {
		return StateCollided
	}
	p.SetCheckPos(pos, cell)
	p.CellArrayValid = true
	return StateOK
}

// PlacementInsert inserts the candidate position into its cell and every cell it overlaps.
func (t *Transition) PlacementInsert() State {
	cell := t.Path.CheckCell
	if cell == nil {
		return StateCollided
	}
	state := t.InsertIntoCell(cell, t.settings().Attempts.Insert)
	if state == StateOK {
		state = t.CheckOtherCells(cell)
	}
	return state
}

// TransitionalInsert inserts the candidate position into the cells it overlaps, applying collision
// responses until the position is accepted, rejected or attempts runs out. An attempt budget that is
// not positive yields StateInvalid.
func (t *Transition) TransitionalInsert(attempts int) State {
	p := &t.Path
	if p.CheckCell == nil {
		return StateOK
	}
	if attempts <= 0 {
		return StateInvalid
	}

	state := StateInvalid
	for i := 0; i < attempts; i++ {
		state = t.InsertIntoCell(p.CheckCell, attempts)
		switch state {
		case StateOK:
			state = t.CheckOtherCells(p.CheckCell)
			if state != StateOK {
				p.NegPolyHit = false
			}
			if state == StateCollided {
				return state
			}
		case StateCollided:
			return state
		case StateAdjusted:
			p.NegPolyHit = false
		case StateSlid:
			t.Collision.ClearContactPlane()
			p.NegPolyHit = false
		}

		if state != StateOK {
			continue
		}
		if p.Collide {
			return t.landOnCollide(attempts)
		}
		if p.NegPolyHit && !p.StepDown && !p.StepUp {
			state = t.slideOffNegPoly()
			continue
		}

		if t.Collision.ContactPlaneValid || !t.ObjectInfo.State.Has(InContact) || p.StepDown || p.CheckWalkable ||
			p.CheckCell == nil || t.ObjectInfo.StepDown {
			return StateOK
		}
		var done bool
		if done, state = t.followGround(); done {
			return state
		}
	}
	return state
}

// slideOffNegPoly responds to a hit against the back of a polygon.
func (t *Transition) slideOffNegPoly() State {
	p := &t.Path
	p.NegPolyHit = false
	if !p.NegStepUp {
		return t.SlideSphere(p.NegCollisionNormal, p.GlobalCurrCenter[0])
	}
	if t.StepUp(p.NegCollisionNormal) {
		return StateOK
	}
	return t.StepUpSlide()
}

// followGround keeps an object that was in contact with the ground on it after a step that lost
// contact, falling back to an edge slide when no ground is within reach.
func (t *Transition) followGround() (bool, State) {
	p := &t.Path
	zVal := t.settings().Physics.LandingZ
	stepDownHeight := t.settings().Physics.DefaultStepDownHeight
	if t.ObjectInfo.State.Has(OnWalkable) {
		zVal = t.ObjectInfo.GetWalkableZ()
		stepDownHeight = t.ObjectInfo.StepDownHeight
	}
	p.WalkableAllowance = zVal
	p.SaveCheckPos()

	radsum := p.GlobalSphere[0].Radius * 2
	if p.NumSphere < 2 && radsum < stepDownHeight {
		stepDownHeight = p.GlobalSphere[0].Radius * 0.5
	}
	if radsum < stepDownHeight {
		stepDownHeight *= 0.5
		if t.StepDown(stepDownHeight, zVal) || t.StepDown(stepDownHeight, zVal) {
			p.Walkable = nil
			return true, StateOK
		}
	}
	if t.StepDown(stepDownHeight, zVal) {
		p.Walkable = nil
		return true, StateOK
	}
	return t.EdgeSlide(stepDownHeight, zVal)
}

// landOnCollide handles a collision a cell asked to verify: the candidate position is kept if it is
// on walkable ground and can be placed, otherwise the position saved by the cell is restored.
func (t *Transition) landOnCollide(attempts int) State {
	p, c := &t.Path, &t.Collision
	p.Collide = false

	reset := true
	state := StateOK
	if c.ContactPlaneValid && t.CheckWalkable(t.settings().Physics.LandingZ) {
		p.Backup = p.InsertType
		p.InsertType = InsertPlacement
		state = t.TransitionalInsert(attempts)
		p.InsertType = p.Backup
		if state == StateOK {
			reset = false
		}
		state = StateOK
	}
	p.Walkable = nil
	if !reset {
		return state
	}

	p.RestoreCheckPos()
	c.ClearContactPlane()
	if c.LastKnownContactPlaneValid {
		c.LastKnownContactPlaneValid = false
		t.ObjectInfo.StopVelocity()
	} else {
		c.SetCollisionNormal(p.StepUpNormal)
	}
	return StateCollided
}
