package transition

import "github.com/go-gl/mathgl/mgl32"

// Frame is an origin and an orientation relative to the origin of a cell.
type Frame struct {
	Origin      mgl32.Vec3
	Orientation mgl32.Quat
}

// rotation returns the orientation of the frame, treating the zero quaternion as the identity.
func (f Frame) rotation() mgl32.Quat {
	if f.Orientation.W == 0 && f.Orientation.V == (mgl32.Vec3{}) {
		return mgl32.QuatIdent()
	}
	return f.Orientation
}

// LocalToGlobal transforms a point local to the frame into cell coordinates.
func (f Frame) LocalToGlobal(v mgl32.Vec3) mgl32.Vec3 {
	return f.rotation().Rotate(v).Add(f.Origin)
}

// LocalToGlobalVec rotates a direction local to the frame into cell coordinates.
func (f Frame) LocalToGlobalVec(v mgl32.Vec3) mgl32.Vec3 {
	return f.rotation().Rotate(v)
}

// Position is a frame in a specific cell.
type Position struct {
	CellID uint32
	Frame  Frame
}

// NewPosition returns an unrotated position at origin inside of the cell with the given ID.
func NewPosition(cellID uint32, origin mgl32.Vec3) Position {
	return Position{CellID: cellID, Frame: Frame{Origin: origin, Orientation: mgl32.QuatIdent()}}
}

// Equal reports whether both positions share a cell, an origin and an orientation.
func (p Position) Equal(o Position) bool {
	return p.CellID == o.CellID && p.Frame.Origin == o.Frame.Origin && p.Frame.rotation() == o.Frame.rotation()
}

// Sphere is a bounding sphere.
type Sphere struct {
	Center mgl32.Vec3
	Radius float32
}
