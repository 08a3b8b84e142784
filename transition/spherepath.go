package transition

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/motion/assert"
	"github.com/oomph-ac/motion/game"
)

// SpherePath is the positional state of a transition: where the object starts and ends, where it
// currently is and which candidate position is under test.
type SpherePath struct {
	NumSphere        int
	LocalSphere      [game.MaxSpheres]Sphere
	GlobalSphere     [game.MaxSpheres]Sphere
	GlobalCurrCenter [game.MaxSpheres]mgl32.Vec3

	HasBegin  bool
	BeginPos  Position
	BeginCell Cell
	EndPos    Position

	CurPos  Position
	CurCell Cell

	// CheckPos is the candidate position currently under test.
	CheckPos  Position
	CheckCell Cell

	BackupCheckPos Position
	BackupCell     Cell

	InsertType InsertType
	Backup     InsertType

	GlobalOffset mgl32.Vec3

	StepUp       bool
	StepUpNormal mgl32.Vec3
	StepDown     bool
	StepDownAmt  float32
	WalkInterp   float32

	NegPolyHit         bool
	NegStepUp          bool
	NegCollisionNormal mgl32.Vec3

	Collide bool

	CellArrayValid   bool
	HitsInteriorCell bool

	// CheckWalkable is set while probing for walkable ground below the candidate position.
	CheckWalkable     bool
	WalkableAllowance float32
	Walkable          Walkable
	WalkableCellID    uint32

	PlacementAllowsSliding bool

	land Landscape
}

// InitSphere sets the local bounding spheres of the path, scaled by scale.
func (p *SpherePath) InitSphere(spheres []Sphere, scale float32) {
	assert.IsTrue(len(spheres) <= game.MaxSpheres, game.ErrorInternalTooManySpheres, game.MaxSpheres, len(spheres))
	p.NumSphere = len(spheres)
	for i, s := range spheres {
		p.LocalSphere[i] = Sphere{Center: s.Center.Mul(scale), Radius: s.Radius * scale}
	}
}

// InitPath sets the begin and end positions of the path. A nil begin position starts a placement at
// end.
func (p *SpherePath) InitPath(cell Cell, begin *Position, end Position) {
	p.BeginCell = cell
	p.EndPos = end
	p.CurCell = cell
	if begin != nil {
		p.HasBegin = true
		p.BeginPos = *begin
		p.CurPos = *begin
		p.InsertType = InsertTransition
	} else {
		p.HasBegin = false
		p.CurPos = end
		p.InsertType = InsertPlacement
	}
	p.CacheGlobalCurrCenter()
}

// CacheGlobalCurrCenter updates the centres of the spheres at the current position.
func (p *SpherePath) CacheGlobalCurrCenter() {
	for i := 0; i < p.NumSphere; i++ {
		p.GlobalCurrCenter[i] = p.CurPos.Frame.LocalToGlobal(p.LocalSphere[i].Center)
	}
}

// CacheGlobalSphere updates the spheres at the candidate position.
func (p *SpherePath) CacheGlobalSphere() {
	for i := 0; i < p.NumSphere; i++ {
		p.GlobalSphere[i] = Sphere{
			Center: p.CheckPos.Frame.LocalToGlobal(p.LocalSphere[i].Center),
			Radius: p.LocalSphere[i].Radius,
		}
	}
}

// SetCheckPos makes pos in cell the candidate position.
func (p *SpherePath) SetCheckPos(pos Position, cell Cell) {
	p.CheckPos = pos
	p.CheckCell = cell
	p.CellArrayValid = false
	p.CacheGlobalSphere()
}

// AddOffsetToCheckPos moves the candidate position by offset.
func (p *SpherePath) AddOffsetToCheckPos(offset mgl32.Vec3) {
	p.CellArrayValid = false
	p.CheckPos.Frame.Origin = p.CheckPos.Frame.Origin.Add(offset)
	p.CacheGlobalSphere()
}

// AdjustCheckPos re-expresses the candidate position in the cell with the given ID.
func (p *SpherePath) AdjustCheckPos(cellID uint32) {
	if cellID == p.CheckPos.CellID {
		return
	}
	offset := p.landscape().BlockOffset(p.CheckPos.CellID, cellID)
	p.CheckPos.Frame.Origin = p.CheckPos.Frame.Origin.Sub(offset)
	p.CheckPos.CellID = cellID
	p.CacheGlobalSphere()
}

// SaveCheckPos stores the candidate position so that it can be restored later.
func (p *SpherePath) SaveCheckPos() {
	p.BackupCell = p.CheckCell
	p.BackupCheckPos = p.CheckPos
}

// RestoreCheckPos makes the saved position the candidate position again.
func (p *SpherePath) RestoreCheckPos() {
	p.SetCheckPos(p.BackupCheckPos, p.BackupCell)
}

// SetCollide asks the transition to verify that normal leads onto walkable ground, going back to the
// current candidate position if it does not.
func (p *SpherePath) SetCollide(normal mgl32.Vec3) {
	p.Collide = true
	p.BackupCell = p.CheckCell
	p.BackupCheckPos = p.CheckPos
	p.StepUpNormal = normal
	p.WalkInterp = 1
}

// SetNegPolyHit records a hit against the back of a polygon.
func (p *SpherePath) SetNegPolyHit(stepUp bool, normal mgl32.Vec3) {
	p.NegPolyHit = true
	p.NegStepUp = stepUp
	p.NegCollisionNormal = normal.Mul(-1)
}

// SetWalkable records the walkable surface, expressed in the cell with the given ID, that the path
// rests on.
func (p *SpherePath) SetWalkable(w Walkable, cellID uint32) {
	p.Walkable = w
	p.WalkableCellID = cellID
}

// CheckWalkables reports whether the recorded walkable still holds up the first candidate sphere.
func (p *SpherePath) CheckWalkables() bool {
	if p.Walkable == nil {
		return false
	}
	return p.Walkable.Supports(p.toWalkable(p.GlobalSphere[0].Center), p.GlobalSphere[0].Radius)
}

// toWalkable converts a point in the candidate cell into the cell of the recorded walkable.
func (p *SpherePath) toWalkable(v mgl32.Vec3) mgl32.Vec3 {
	return v.Sub(p.landscape().BlockOffset(p.CheckPos.CellID, p.WalkableCellID))
}

// displacement returns the movement of the first sphere from the current to the candidate position.
func (p *SpherePath) displacement() mgl32.Vec3 {
	offset := p.landscape().BlockOffset(p.CurPos.CellID, p.CheckPos.CellID)
	return p.GlobalSphere[0].Center.Sub(p.GlobalCurrCenter[0]).Add(offset)
}

func (p *SpherePath) landscape() Landscape {
	if p.land == nil {
		return flatLandscape{}
	}
	return p.land
}
