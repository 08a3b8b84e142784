package transition

// edgeSlideCase is the situation an object that lost contact with the ground after a step is in.
type edgeSlideCase uint8

const (
	// edgeSlideAccept: the object is not on a walkable surface, or does not edge slide.
	edgeSlideAccept edgeSlideCase = iota
	// edgeSlideCliff: the step landed on a plane too steep to walk on.
	edgeSlideCliff
	// edgeSlidePrecipice: a walkable surface the object stood on is known.
	edgeSlidePrecipice
	// edgeSlideContact: the step still touches a walkable plane.
	edgeSlideContact
	// edgeSlideFallback: nothing is known about the ground.
	edgeSlideFallback
)

// String ...
func (e edgeSlideCase) String() string {
	switch e {
	case edgeSlideAccept:
		return "accept"
	case edgeSlideCliff:
		return "cliff"
	case edgeSlidePrecipice:
		return "precipice"
	case edgeSlideContact:
		return "contact"
	default:
		return "fallback"
	}
}

// classifyEdgeSlide determines which edge slide case the transition is in.
func (t *Transition) classifyEdgeSlide(zVal float32) edgeSlideCase {
	switch c := &t.Collision; {
	case !t.ObjectInfo.State.Has(OnWalkable) || !t.ObjectInfo.State.Has(EdgeSlide):
		return edgeSlideAccept
	case c.ContactPlaneValid && c.ContactPlane.Normal.Z() < zVal:
		return edgeSlideCliff
	case t.Path.Walkable != nil:
		return edgeSlidePrecipice
	case c.ContactPlaneValid:
		return edgeSlideContact
	default:
		return edgeSlideFallback
	}
}

// EdgeSlide keeps an object that walked off the ground after a failed step-down from walking off
// ledges it is not allowed to drop from.
func (t *Transition) EdgeSlide(stepDownHeight, zVal float32) (bool, State) {
	kind := t.classifyEdgeSlide(zVal)
	t.debugf("edge slide: %v", kind)
	switch kind {
	case edgeSlideCliff:
		return t.slideOffCliff()
	case edgeSlidePrecipice:
		return t.slideAlongPrecipice()
	case edgeSlideFallback:
		return t.findEdge(stepDownHeight, zVal)
	default:
		return t.acceptEdge()
	}
}

// resetEdge drops the contact found by the step-down and returns to the position before it.
func (t *Transition) resetEdge(unwalkable, validCell bool) {
	if validCell {
		t.Path.CellArrayValid = true
	}
	if unwalkable {
		t.Path.Walkable = nil
	}
	t.Collision.ClearContactPlane()
	t.Path.RestoreCheckPos()
}

// acceptEdge keeps the candidate from before the step-down.
func (t *Transition) acceptEdge() (bool, State) {
	t.resetEdge(true, true)
	return true, StateOK
}

func (t *Transition) slideOffCliff() (bool, State) {
	plane := t.Collision.ContactPlane
	t.resetEdge(true, false)
	return false, t.CliffSlide(plane)
}

func (t *Transition) slideAlongPrecipice() (bool, State) {
	t.resetEdge(false, false)
	state := t.PrecipiceSlide()
	return state == StateCollided, state
}

func (t *Transition) findEdge(stepDownHeight, zVal float32) (bool, State) {
	p := &t.Path
	// Look for the ledge from the current position, then return to the candidate position.
	p.AddOffsetToCheckPos(p.displacement().Mul(-1))
	t.StepDown(stepDownHeight, zVal)
	t.Collision.ClearContactPlane()
	p.RestoreCheckPos()

	if p.Walkable != nil {
		state := t.PrecipiceSlide()
		return state == StateCollided, state
	}
	p.CellArrayValid = true
	return true, StateCollided
}
