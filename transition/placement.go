package transition

import (
	"github.com/chewxy/math32"
	"github.com/oomph-ac/motion/game"
)

// FindPlacementPosition places the object at the end position of the path, searching around it if
// the placement allows sliding, and settles it onto the ground if the object steps down. The current
// position is left untouched if no placement is found.
func (t *Transition) FindPlacementPosition() bool {
	p := &t.Path
	curPos, curCell := p.CurPos, p.CurCell
	if !t.findPlacementPosition() {
		p.CurPos, p.CurCell = curPos, curCell
		p.CacheGlobalCurrCenter()
		return false
	}
	return true
}

func (t *Transition) findPlacementPosition() bool {
	p := &t.Path
	s := t.settings()
	p.SetCheckPos(p.CurPos, p.CurCell)
	p.InsertType = InsertInitialPlacement

	state := StateCollided
	if p.CheckCell != nil {
		state = t.InsertIntoCell(p.CheckCell, s.Attempts.Insert)
		if state == StateOK {
			state = t.CheckOtherCells(p.CheckCell)
		}
	}
	if t.ValidatePlacement(state, true) != StateOK {
		return false
	}

	p.InsertType = InsertPlacement
	if !t.FindPlacementPos() {
		return false
	}
	if !t.ObjectInfo.StepDown {
		return t.ValidatePlacement(StateOK, true) == StateOK
	}

	landingZ := s.Physics.LandingZ
	p.WalkableAllowance = landingZ
	p.SaveCheckPos()
	p.Backup = p.InsertType
	p.InsertType = InsertTransition

	radius := p.GlobalSphere[0].Radius
	height := t.ObjectInfo.StepDownHeight
	if p.NumSphere < 2 && radius*2 < height {
		height = radius * 0.5
	}

	var settled bool
	if height < radius*2 {
		settled = t.StepDown(height, landingZ)
	} else {
		// Objects that are thin compared to their step height settle in two half steps.
		height *= 0.5
		settled = t.StepDown(height, landingZ) || t.StepDown(height, landingZ)
	}
	if !settled {
		p.RestoreCheckPos()
		t.Collision.ClearContactPlane()
	}

	p.InsertType = p.Backup
	p.Walkable = nil
	return t.ValidatePlacement(StateOK, true) == StateOK
}

// FindPlacementPos inserts the candidate at the current position, and if that fails and sliding
// is allowed, spirals outwards in rings of increasing radius and sample count until a free spot is
// found.
func (t *Transition) FindPlacementPos() bool {
	p, c := &t.Path, &t.Collision
	s := t.settings()
	p.SetCheckPos(p.CurPos, p.CurCell)

	c.SlidingNormalValid = false
	c.ClearContactPlane()
	if t.ValidatePlacementTransition(t.TransitionalInsert(s.Attempts.Insert)) == StateOK {
		return true
	}
	if !p.PlacementAllowsSliding {
		return false
	}

	searchDist := s.Placement.SearchDistance
	searchRad := searchDist
	radius := p.LocalSphere[0].Radius

	small := false
	if radius < s.Placement.SmallSphereRadius {
		small = true
		searchRad = searchDist * 0.5
	} else if radius < s.Placement.MinSearchRadius {
		radius = s.Placement.MinSearchRadius
	}

	step := searchDist / radius
	if small {
		step *= 0.5
	}
	if step <= 1 {
		return false
	}

	numSteps := int(math32.Ceil(step))
	distPerStep := searchRad / float32(numSteps)
	radiansPerStep := math32.Pi * distPerStep / radius

	var totalDist, totalRad float32
	for i := 0; i < numSteps; i++ {
		totalDist += distPerStep
		totalRad += radiansPerStep

		samples := int(math32.Ceil(totalRad))
		angle := 360 / float32(samples)
		for j := 0; j < samples; j++ {
			p.SetCheckPos(p.CurPos, p.CurCell)
			p.GlobalOffset = t.AdjustOffset(game.HeadingVector(angle * float32(j)).Mul(totalDist))
			if p.GlobalOffset.Len() < s.Physics.Epsilon {
				continue
			}
			p.AddOffsetToCheckPos(p.GlobalOffset)

			c.SlidingNormalValid = false
			c.ClearContactPlane()
			if t.ValidatePlacementTransition(t.TransitionalInsert(s.Attempts.Insert)) == StateOK {
				return true
			}
		}
	}
	t.debugf("placement search of %.2f around %v exhausted", searchRad, p.CurPos.Frame.Origin)
	return false
}
