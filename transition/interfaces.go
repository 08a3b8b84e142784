package transition

import "github.com/go-gl/mathgl/mgl32"

// Cell is a spatial partition unit that scopes collision queries and coordinate frames.
type Cell interface {
	// ID returns the non-zero identifier of the cell.
	ID() uint32
	// FindCollisions tests the candidate spheres of the transition's path against the geometry of
	// the cell. It may move the candidate position and update the collision state as a side effect.
	FindCollisions(t *Transition) State
}

// CellList is the ordered list of cells a path's candidate spheres intersect.
type CellList struct {
	Cells []Cell
	// HitsInteriorCell is true if any of the cells is an interior cell.
	HitsInteriorCell bool
}

// Entered returns the cell that contains the candidate position, or nil if there is none.
func (l CellList) Entered() Cell {
	if len(l.Cells) == 0 {
		return nil
	}
	return l.Cells[0]
}

// CellFinder bridges the cell adjacency graph.
type CellFinder interface {
	// FindCellList returns the cells intersected by the candidate spheres of path, with the cell
	// containing the candidate position first.
	FindCellList(path *SpherePath) CellList
}

// Landscape bridges outdoor coordinate utilities.
type Landscape interface {
	// BlockOffset returns the origin of cell to minus the origin of cell from. A point p expressed in
	// from becomes p minus the block offset when expressed in to.
	BlockOffset(from, to uint32) mgl32.Vec3
	// AdjustToOutside moves a position that is not inside of any known cell into the outdoor cell
	// that contains it.
	AdjustToOutside(pos Position) (Position, Cell, bool)
}

// Object is the entity being moved.
type Object interface {
	// StopVelocity zeroes the velocity of the object.
	StopVelocity()
}

// Walkable is a walkable surface a cell recorded while the path rested on it.
type Walkable interface {
	// Supports reports whether a sphere centred at center, expressed in the walkable's cell, is
	// held up by the surface.
	Supports(center mgl32.Vec3, radius float32) bool
	// CrossedEdge returns the horizontal normal of the surface edge that center has moved past.
	CrossedEdge(center mgl32.Vec3) (mgl32.Vec3, bool)
}

// flatLandscape is the landscape used when none is provided: every cell shares one origin and
// nothing exists outside of the known cells.
type flatLandscape struct{}

func (flatLandscape) BlockOffset(uint32, uint32) mgl32.Vec3 { return mgl32.Vec3{} }

func (flatLandscape) AdjustToOutside(pos Position) (Position, Cell, bool) { return pos, nil, false }

// checkCellFinder is the finder used when none is provided: the candidate cell is the only cell.
type checkCellFinder struct{}

func (checkCellFinder) FindCellList(path *SpherePath) CellList {
	if path.CheckCell == nil {
		return CellList{}
	}
	return CellList{Cells: []Cell{path.CheckCell}}
}
